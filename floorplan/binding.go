// floorplan/binding.go

// Package floorplan maps floor-plan element identifiers to workstation
// records and derives the color each element should paint. The SVG itself
// is an external collaborator: it exposes stable element ids and accepts
// color and click bindings, nothing more.
package floorplan

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/assignment"
	"floortrack/models"
)

// StatusColors is the paint applied per derived status.
var StatusColors = map[assignment.Status]string{
	assignment.StatusUnassigned: "#9ca3af",
	assignment.StatusIncomplete: "#f59e0b",
	assignment.StatusComplete:   "#22c55e",
	assignment.StatusEquipment:  "#3b82f6",
}

// ElementBinding is what the rendering layer needs for one element.
type ElementBinding struct {
	ElementID     string              `json:"elementId"`
	Status        assignment.Status   `json:"status"`
	Color         string              `json:"color"`
	WorkstationID *primitive.ObjectID `json:"workstationId,omitempty"`
	DisplayName   string              `json:"displayName,omitempty"`
	EmployeeID    *primitive.ObjectID `json:"employeeId,omitempty"`
	AssetCount    int                 `json:"assetCount"`
}

// ClickAction tells the UI what to do with a clicked element.
type ClickAction string

const (
	// ClickRouteEmployee: the element is an occupied workstation; route to
	// the occupant's detail view.
	ClickRouteEmployee ClickAction = "route-employee"
	// ClickOpenAssignment: the element is a known but unoccupied
	// workstation; open the assignment UI.
	ClickOpenAssignment ClickAction = "open-assignment"
	// ClickCreateWorkstation: no workstation matches the element; the
	// assignment UI should create one using the element id as the label.
	ClickCreateWorkstation ClickAction = "create-workstation"
)

// ClickResult resolves a floor-plan click.
type ClickResult struct {
	Action      ClickAction         `json:"action"`
	Workstation *models.Workstation `json:"workstation,omitempty"`
	EmployeeID  *primitive.ObjectID `json:"employeeId,omitempty"`
	Label       string              `json:"label,omitempty"`
}

// Binder builds element views off the assignment store. It holds no state
// of its own, so rebuilding the view after a change notification is always
// safe and idempotent.
type Binder struct {
	store      *assignment.Store
	classifier *assignment.Classifier
}

func NewBinder(store *assignment.Store, classifier *assignment.Classifier) *Binder {
	return &Binder{store: store, classifier: classifier}
}

// BuildView maps each element identifier to its binding. Identifiers that
// resolve to no workstation paint as unassigned with no record attached.
func (b *Binder) BuildView(ctx context.Context, elementIDs []string) ([]ElementBinding, error) {
	bindings := make([]ElementBinding, 0, len(elementIDs))
	for _, elementID := range elementIDs {
		ws, err := b.store.ResolveWorkstation(ctx, elementID)
		if err != nil {
			return nil, err
		}
		if ws == nil {
			bindings = append(bindings, ElementBinding{
				ElementID: elementID,
				Status:    assignment.StatusUnassigned,
				Color:     StatusColors[assignment.StatusUnassigned],
			})
			continue
		}

		binding, err := b.bindingFor(ctx, elementID, ws)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}

// BuildFullView returns a binding for every known workstation, keyed by its
// display name. Used when the floor plan reports no element inventory.
func (b *Binder) BuildFullView(ctx context.Context) ([]ElementBinding, error) {
	stations, err := b.store.ListWorkstations(ctx)
	if err != nil {
		return nil, err
	}
	bindings := make([]ElementBinding, 0, len(stations))
	for i := range stations {
		binding, err := b.bindingFor(ctx, stations[i].DisplayName, &stations[i])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}

// ResolveClick turns a clicked element id into a UI action.
func (b *Binder) ResolveClick(ctx context.Context, elementID string) (ClickResult, error) {
	ws, err := b.store.ResolveWorkstation(ctx, elementID)
	if err != nil {
		return ClickResult{}, err
	}
	if ws == nil {
		return ClickResult{Action: ClickCreateWorkstation, Label: elementID}, nil
	}
	if ws.Occupied() {
		return ClickResult{Action: ClickRouteEmployee, Workstation: ws, EmployeeID: ws.EmployeeID}, nil
	}
	return ClickResult{Action: ClickOpenAssignment, Workstation: ws}, nil
}

func (b *Binder) bindingFor(ctx context.Context, elementID string, ws *models.Workstation) (ElementBinding, error) {
	count, err := b.store.AssetCount(ctx, ws.ID)
	if err != nil {
		return ElementBinding{}, err
	}
	status := b.classifier.Classify(*ws, count)
	id := ws.ID
	return ElementBinding{
		ElementID:     elementID,
		Status:        status,
		Color:         StatusColors[status],
		WorkstationID: &id,
		DisplayName:   ws.DisplayName,
		EmployeeID:    ws.EmployeeID,
		AssetCount:    count,
	}, nil
}
