// assignment/repository.go
package assignment

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/models"
)

// Repository is the record-level persistence behind the Store. Each call is
// atomic with respect to its own records; the Repository provides no
// cross-operation isolation. Lookups return (nil, nil) when the record does
// not exist — the Store turns that into NotFoundError where it matters.
type Repository interface {
	GetWorkstation(ctx context.Context, id primitive.ObjectID) (*models.Workstation, error)
	GetWorkstationByDisplayName(ctx context.Context, name string) (*models.Workstation, error)
	// ListWorkstations returns all workstations ordered by display name so
	// the fuzzy tiers of the identifier resolution chain are deterministic.
	ListWorkstations(ctx context.Context) ([]models.Workstation, error)
	FindWorkstationByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*models.Workstation, error)
	CreateWorkstation(ctx context.Context, ws *models.Workstation) error
	SetWorkstationEmployee(ctx context.Context, id primitive.ObjectID, employeeID *primitive.ObjectID) error
	SetWorkstationEquipment(ctx context.Context, id primitive.ObjectID, isEquipment bool) error

	GetAsset(ctx context.Context, id primitive.ObjectID) (*models.Asset, error)
	ListAssetsForWorkstation(ctx context.Context, workstationID primitive.ObjectID) ([]models.Asset, error)
	CountAssetsForWorkstation(ctx context.Context, workstationID primitive.ObjectID) (int, error)
	// AssignAssets points every listed asset at the workstation and stamps
	// the new status in one write.
	AssignAssets(ctx context.Context, assetIDs []primitive.ObjectID, workstationID primitive.ObjectID, status models.AssetStatus) error
	// ClearAssetWorkstation nulls the workstation reference and leaves the
	// asset status untouched.
	ClearAssetWorkstation(ctx context.Context, assetIDs []primitive.ObjectID) error
}
