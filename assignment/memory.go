// assignment/memory.go
package assignment

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/models"
)

// MemoryRepository is a mutex-guarded in-memory Repository with the same
// per-operation atomicity as the mongo one. It backs the test suites and is
// handy for local development without a database.
type MemoryRepository struct {
	mu           sync.Mutex
	workstations map[primitive.ObjectID]models.Workstation
	assets       map[primitive.ObjectID]models.Asset
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		workstations: make(map[primitive.ObjectID]models.Workstation),
		assets:       make(map[primitive.ObjectID]models.Asset),
	}
}

// SeedAsset inserts an asset record directly, bypassing the Store. Test
// setup only.
func (r *MemoryRepository) SeedAsset(asset models.Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[asset.ID] = asset
}

// SeedWorkstation inserts a workstation record directly. Test setup only.
func (r *MemoryRepository) SeedWorkstation(ws models.Workstation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workstations[ws.ID] = ws
}

func (r *MemoryRepository) GetWorkstation(ctx context.Context, id primitive.ObjectID) (*models.Workstation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.workstations[id]; ok {
		copied := ws
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetWorkstationByDisplayName(ctx context.Context, name string) (*models.Workstation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ws := range r.workstations {
		if ws.DisplayName == name {
			copied := ws
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) ListWorkstations(ctx context.Context) ([]models.Workstation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stations := make([]models.Workstation, 0, len(r.workstations))
	for _, ws := range r.workstations {
		stations = append(stations, ws)
	}
	sort.Slice(stations, func(i, j int) bool {
		return stations[i].DisplayName < stations[j].DisplayName
	})
	return stations, nil
}

func (r *MemoryRepository) FindWorkstationByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*models.Workstation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ws := range r.workstations {
		if ws.EmployeeID != nil && *ws.EmployeeID == employeeID {
			copied := ws
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) CreateWorkstation(ctx context.Context, ws *models.Workstation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws.ID.IsZero() {
		ws.ID = primitive.NewObjectID()
	}
	r.workstations[ws.ID] = *ws
	return nil
}

func (r *MemoryRepository) SetWorkstationEmployee(ctx context.Context, id primitive.ObjectID, employeeID *primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workstations[id]
	if !ok {
		return nil
	}
	if employeeID == nil {
		ws.EmployeeID = nil
	} else {
		copied := *employeeID
		ws.EmployeeID = &copied
	}
	r.workstations[id] = ws
	return nil
}

func (r *MemoryRepository) SetWorkstationEquipment(ctx context.Context, id primitive.ObjectID, isEquipment bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workstations[id]
	if !ok {
		return nil
	}
	ws.IsEquipment = isEquipment
	r.workstations[id] = ws
	return nil
}

func (r *MemoryRepository) GetAsset(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if asset, ok := r.assets[id]; ok {
		copied := asset
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) ListAssetsForWorkstation(ctx context.Context, workstationID primitive.ObjectID) ([]models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var assets []models.Asset
	for _, asset := range r.assets {
		if asset.WorkstationID != nil && *asset.WorkstationID == workstationID {
			assets = append(assets, asset)
		}
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

func (r *MemoryRepository) CountAssetsForWorkstation(ctx context.Context, workstationID primitive.ObjectID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, asset := range r.assets {
		if asset.WorkstationID != nil && *asset.WorkstationID == workstationID {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) AssignAssets(ctx context.Context, assetIDs []primitive.ObjectID, workstationID primitive.ObjectID, status models.AssetStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range assetIDs {
		asset, ok := r.assets[id]
		if !ok {
			continue
		}
		target := workstationID
		asset.WorkstationID = &target
		asset.Status = status
		r.assets[id] = asset
	}
	return nil
}

func (r *MemoryRepository) ClearAssetWorkstation(ctx context.Context, assetIDs []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range assetIDs {
		asset, ok := r.assets[id]
		if !ok {
			continue
		}
		asset.WorkstationID = nil
		r.assets[id] = asset
	}
	return nil
}
