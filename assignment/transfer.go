// assignment/transfer.go
package assignment

import (
	"context"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/models"
)

// TransferKind selects which bindings a transfer mutates.
type TransferKind string

const (
	TransferAssets   TransferKind = "assets"
	TransferEmployee TransferKind = "employee"
	TransferBoth     TransferKind = "both"
)

// TransferState is the per-transfer state machine. A transfer moves
// Validating → Executing → Committed, or to Failed from either.
type TransferState string

const (
	StateValidating TransferState = "validating"
	StateExecuting  TransferState = "executing"
	StateCommitted  TransferState = "committed"
	StateFailed     TransferState = "failed"
)

// Step names recorded in the transfer result and in PartialFailureError.
const (
	StepUnbindEmployee = "unbind-employee"
	StepBindEmployee   = "bind-employee"
	StepBindAssets     = "bind-assets"
)

// TransferRequest describes one user-facing transfer action.
type TransferRequest struct {
	Kind        TransferKind
	Source      *primitive.ObjectID // required for employee and both
	Destination WorkstationRef
	EmployeeID  *primitive.ObjectID
	AssetIDs    []primitive.ObjectID
	AssetStatus models.AssetStatus
	// Confirmed acknowledges the occupancy warning: without it a transfer
	// into an occupied destination stops with ConflictError before any
	// mutation.
	Confirmed bool
}

// TransferResult reports what a transfer did. Steps lists the store calls
// that committed, in order.
type TransferResult struct {
	TransferID    string              `json:"transferId"`
	State         TransferState       `json:"state"`
	Steps         []string            `json:"steps"`
	WorkstationID primitive.ObjectID  `json:"workstationId"`
	EvictedID     *primitive.ObjectID `json:"evictedEmployeeId,omitempty"`
}

// Orchestrator executes transfers as a sequence of store calls. The steps
// are individually atomic but there is no transaction around them: a step
// failing mid-sequence leaves the earlier steps committed, and the result
// is surfaced as PartialFailureError instead of being rolled back.
type Orchestrator struct {
	store    *Store
	resolver *Resolver
}

func NewOrchestrator(store *Store, resolver *Resolver) *Orchestrator {
	return &Orchestrator{store: store, resolver: resolver}
}

// Execute runs one transfer. Employee steps run before asset steps on a
// "both" transfer, so that when the confirmation gate stops the move no
// asset has been touched yet.
func (o *Orchestrator) Execute(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	result := &TransferResult{
		TransferID: uuid.NewString(),
		State:      StateValidating,
	}

	if err := o.validate(req); err != nil {
		result.State = StateFailed
		return result, err
	}

	dest, err := o.resolveDestination(ctx, req.Destination)
	if err != nil {
		result.State = StateFailed
		return result, err
	}

	moveEmployee := req.Kind == TransferEmployee || req.Kind == TransferBoth
	if moveEmployee {
		if err := o.checkEmployeeMove(ctx, req, dest, result); err != nil {
			result.State = StateFailed
			return result, err
		}
	}

	result.State = StateExecuting

	runStep := func(name string, fn func() (*models.Workstation, error)) error {
		ws, err := fn()
		if err != nil {
			result.State = StateFailed
			if len(result.Steps) == 0 {
				return err
			}
			pf := &PartialFailureError{
				TransferID: result.TransferID,
				Completed:  append([]string(nil), result.Steps...),
				FailedStep: name,
				Err:        err,
			}
			log.Printf("PARTIAL FAILURE: %v", pf)
			return pf
		}
		result.Steps = append(result.Steps, name)
		if ws != nil {
			result.WorkstationID = ws.ID
		}
		return nil
	}

	if moveEmployee {
		err := runStep(StepUnbindEmployee, func() (*models.Workstation, error) {
			return nil, o.store.UnbindEmployee(ctx, *req.Source)
		})
		if err != nil {
			return result, err
		}
		err = runStep(StepBindEmployee, func() (*models.Workstation, error) {
			return o.store.BindEmployee(ctx, req.Destination, *req.EmployeeID, true)
		})
		if err != nil {
			return result, err
		}
	}

	if req.Kind == TransferAssets || req.Kind == TransferBoth {
		err := runStep(StepBindAssets, func() (*models.Workstation, error) {
			return o.store.BindAssets(ctx, req.Destination, req.AssetIDs, req.AssetStatus)
		})
		if err != nil {
			return result, err
		}
	}

	result.State = StateCommitted
	return result, nil
}

func (o *Orchestrator) validate(req TransferRequest) error {
	if req.Destination.ID == nil && req.Destination.Label == "" {
		return &ValidationError{Message: "destination workstation is required"}
	}

	switch req.Kind {
	case TransferAssets:
		if len(req.AssetIDs) == 0 {
			return &ValidationError{Message: "at least one asset is required"}
		}
		if !req.AssetStatus.Valid() {
			return &ValidationError{Message: "a valid asset status is required"}
		}
	case TransferEmployee:
		return o.validateEmployeeMove(req)
	case TransferBoth:
		if len(req.AssetIDs) == 0 {
			return &ValidationError{Message: "at least one asset is required"}
		}
		if !req.AssetStatus.Valid() {
			return &ValidationError{Message: "a valid asset status is required"}
		}
		return o.validateEmployeeMove(req)
	default:
		return &ValidationError{Message: "unknown transfer kind"}
	}
	return nil
}

func (o *Orchestrator) validateEmployeeMove(req TransferRequest) error {
	if req.EmployeeID == nil || req.EmployeeID.IsZero() {
		return &ValidationError{Message: "employee id is required"}
	}
	if req.Source == nil || req.Source.IsZero() {
		return &ValidationError{Message: "source workstation is required"}
	}
	if req.Destination.ID != nil && *req.Destination.ID == *req.Source {
		return &ValidationError{Message: "destination must differ from source"}
	}
	return nil
}

// resolveDestination resolves the ref without creating anything. A label
// that matches nothing is fine — the bind steps create the workstation —
// but an unknown id is a hard NotFoundError.
func (o *Orchestrator) resolveDestination(ctx context.Context, ref WorkstationRef) (*models.Workstation, error) {
	if ref.ID != nil {
		return o.store.GetWorkstation(ctx, *ref.ID)
	}
	return o.store.ResolveWorkstation(ctx, ref.Label)
}

// checkEmployeeMove verifies the source actually holds the employee, then
// gates on destination occupancy. The eviction warning must be confirmed
// before anything mutates.
func (o *Orchestrator) checkEmployeeMove(ctx context.Context, req TransferRequest, dest *models.Workstation, result *TransferResult) error {
	source, err := o.store.GetWorkstation(ctx, *req.Source)
	if err != nil {
		return err
	}
	if source.EmployeeID == nil || *source.EmployeeID != *req.EmployeeID {
		return &ValidationError{Message: "employee is not seated at the source workstation"}
	}

	if dest == nil {
		return nil
	}
	if req.Destination.ID == nil && dest.ID == *req.Source {
		return &ValidationError{Message: "destination must differ from source"}
	}

	occ, err := o.resolver.CheckWorkstationOccupancy(ctx, dest.ID)
	if err != nil {
		return err
	}
	if occ.Occupied && *occ.ByEmployeeID != *req.EmployeeID {
		if !req.Confirmed {
			return &ConflictError{
				Message:       "destination workstation is occupied; confirm to evict the current occupant",
				EmployeeID:    *req.EmployeeID,
				WorkstationID: dest.ID,
				OccupantID:    occ.ByEmployeeID,
			}
		}
		result.EvictedID = occ.ByEmployeeID
	}
	return nil
}
