// assignment/resolver.go
package assignment

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/models"
)

// PlanKind is the Conflict Resolver's decision for a proposed
// employee-to-workstation binding.
type PlanKind string

const (
	// PlanDirectAssign: the employee is seated nowhere; bind directly.
	PlanDirectAssign PlanKind = "direct-assign"
	// PlanAlreadyInPlace: the employee already sits at the target; no-op,
	// reported as success.
	PlanAlreadyInPlace PlanKind = "already-in-place"
	// PlanRequiresConfirmation: the employee sits at a different
	// workstation. The caller must obtain explicit user confirmation, then
	// unbind the current workstation and bind the target, in that order.
	PlanRequiresConfirmation PlanKind = "requires-confirmation"
)

// PlacementPlan carries the decision plus, for the confirmation case, the
// workstation currently holding the employee.
type PlacementPlan struct {
	Kind    PlanKind            `json:"kind"`
	Current *models.Workstation `json:"current,omitempty"`
}

// Occupancy reports whether a destination already has an occupant that a
// move would evict.
type Occupancy struct {
	Occupied     bool                `json:"occupied"`
	ByEmployeeID *primitive.ObjectID `json:"byEmployeeId,omitempty"`
}

// Resolver answers the check-before-bind questions. Its scans and the
// subsequent store writes are not isolated from each other: two sessions
// acting on the same employee can race, and the last write wins.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// CheckEmployeePlacement scans for a workstation already holding the
// employee and plans the binding accordingly.
func (r *Resolver) CheckEmployeePlacement(ctx context.Context, employeeID, targetWorkstationID primitive.ObjectID) (PlacementPlan, error) {
	if employeeID.IsZero() {
		return PlacementPlan{}, &ValidationError{Message: "employee id is required"}
	}

	current, err := r.repo.FindWorkstationByEmployee(ctx, employeeID)
	if err != nil {
		return PlacementPlan{}, err
	}
	if current == nil {
		return PlacementPlan{Kind: PlanDirectAssign}, nil
	}
	if current.ID == targetWorkstationID {
		return PlacementPlan{Kind: PlanAlreadyInPlace, Current: current}, nil
	}
	return PlacementPlan{Kind: PlanRequiresConfirmation, Current: current}, nil
}

// CheckWorkstationOccupancy reports the destination's current occupant so
// the caller can warn that a move will evict them. A workstation id that
// resolves to nothing counts as unoccupied: the bind will create it empty.
func (r *Resolver) CheckWorkstationOccupancy(ctx context.Context, workstationID primitive.ObjectID) (Occupancy, error) {
	ws, err := r.repo.GetWorkstation(ctx, workstationID)
	if err != nil {
		return Occupancy{}, err
	}
	if ws == nil || !ws.Occupied() {
		return Occupancy{}, nil
	}
	return Occupancy{Occupied: true, ByEmployeeID: ws.EmployeeID}, nil
}
