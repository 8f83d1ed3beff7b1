package assignment

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/models"
)

// recordingNotifier captures change notifications for assertions.
type recordingNotifier struct {
	mu      sync.Mutex
	changed []primitive.ObjectID
}

func (n *recordingNotifier) AssignmentChanged(workstationID primitive.ObjectID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, workstationID)
}

func (n *recordingNotifier) notified(workstationID primitive.ObjectID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, id := range n.changed {
		if id == workstationID {
			return true
		}
	}
	return false
}

func newTestStore() (*Store, *MemoryRepository, *recordingNotifier) {
	repo := NewMemoryRepository()
	notifier := &recordingNotifier{}
	return NewStore(repo, notifier), repo, notifier
}

func seedWorkstation(repo *MemoryRepository, label string, employeeID *primitive.ObjectID) models.Workstation {
	ws := models.Workstation{
		ID:          primitive.NewObjectID(),
		DisplayName: label,
		EmployeeID:  employeeID,
	}
	repo.SeedWorkstation(ws)
	return ws
}

func seedAsset(repo *MemoryRepository, name string, workstationID *primitive.ObjectID, status models.AssetStatus) models.Asset {
	asset := models.Asset{
		ID:            primitive.NewObjectID(),
		Name:          name,
		WorkstationID: workstationID,
		Status:        status,
	}
	repo.SeedAsset(asset)
	return asset
}
