// assignment/store.go
package assignment

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/models"
)

// Notifier receives the workstation id of every committed mutation. The
// websocket hub implements it so floor-map clients repaint; repainting is
// idempotent, so duplicate notifications are harmless.
type Notifier interface {
	AssignmentChanged(workstationID primitive.ObjectID)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(workstationID primitive.ObjectID)

func (f NotifierFunc) AssignmentChanged(workstationID primitive.ObjectID) {
	f(workstationID)
}

// WorkstationRef identifies a workstation either by its record id or by a
// floor-plan label. Labels go through the resolution chain and may name a
// workstation that does not exist yet.
type WorkstationRef struct {
	ID    *primitive.ObjectID
	Label string
}

func RefByID(id primitive.ObjectID) WorkstationRef {
	return WorkstationRef{ID: &id}
}

func RefByLabel(label string) WorkstationRef {
	return WorkstationRef{Label: label}
}

// labelPrefixes are stripped during normalized-label matching. Floor plans
// exported from different tools label the same desk "WS-012", "DESK 12" or
// "ST012"; the fuzzy tiers of ResolveWorkstation reconcile them.
var labelPrefixes = []string{"WS", "DESK", "STN", "ST", "PC", "SEAT"}

// Store is the single source of truth for workstation↔employee and
// asset↔workstation bindings. All mutations flow through it so the two
// directions of the assignment relation stay mutually consistent.
type Store struct {
	repo     Repository
	notifier Notifier
}

func NewStore(repo Repository, notifier Notifier) *Store {
	if notifier == nil {
		notifier = NotifierFunc(func(primitive.ObjectID) {})
	}
	return &Store{repo: repo, notifier: notifier}
}

// Repo exposes the underlying repository for read-only collaborators.
func (s *Store) Repo() Repository {
	return s.repo
}

// GetWorkstation returns the workstation or NotFoundError.
func (s *Store) GetWorkstation(ctx context.Context, id primitive.ObjectID) (*models.Workstation, error) {
	ws, err := s.repo.GetWorkstation(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, &NotFoundError{Kind: "workstation", Ref: id.Hex()}
	}
	return ws, nil
}

func (s *Store) ListWorkstations(ctx context.Context) ([]models.Workstation, error) {
	return s.repo.ListWorkstations(ctx)
}

func (s *Store) GetAssetsForWorkstation(ctx context.Context, id primitive.ObjectID) ([]models.Asset, error) {
	return s.repo.ListAssetsForWorkstation(ctx, id)
}

func (s *Store) AssetCount(ctx context.Context, id primitive.ObjectID) (int, error) {
	return s.repo.CountAssetsForWorkstation(ctx, id)
}

// ResolveWorkstation maps a floor-plan identifier to a workstation record.
// Resolution order: exact record id → exact display name → normalized label
// → numeric suffix (trailing digits, leading zeros ignored). First match
// wins; (nil, nil) means no workstation matches and the caller may create
// one.
func (s *Store) ResolveWorkstation(ctx context.Context, identifier string) (*models.Workstation, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, &ValidationError{Message: "workstation identifier is required"}
	}

	if id, err := primitive.ObjectIDFromHex(identifier); err == nil {
		ws, err := s.repo.GetWorkstation(ctx, id)
		if err != nil || ws != nil {
			return ws, err
		}
	}

	ws, err := s.repo.GetWorkstationByDisplayName(ctx, identifier)
	if err != nil || ws != nil {
		return ws, err
	}

	stations, err := s.repo.ListWorkstations(ctx)
	if err != nil {
		return nil, err
	}

	normalized := normalizeLabel(identifier)
	if normalized != "" {
		for i := range stations {
			if normalizeLabel(stations[i].DisplayName) == normalized {
				return &stations[i], nil
			}
		}
	}

	suffix := numericSuffix(identifier)
	if suffix != "" {
		for i := range stations {
			if numericSuffix(stations[i].DisplayName) == suffix {
				return &stations[i], nil
			}
		}
	}

	return nil, nil
}

// resolveOrCreate resolves the ref, creating a new workstation from the
// label when nothing matches. A ref that carries only an id never creates.
func (s *Store) resolveOrCreate(ctx context.Context, ref WorkstationRef) (*models.Workstation, error) {
	if ref.ID != nil {
		return s.GetWorkstation(ctx, *ref.ID)
	}

	ws, err := s.ResolveWorkstation(ctx, ref.Label)
	if err != nil {
		return nil, err
	}
	if ws != nil {
		return ws, nil
	}

	created := &models.Workstation{DisplayName: strings.TrimSpace(ref.Label)}
	if err := s.repo.CreateWorkstation(ctx, created); err != nil {
		return nil, fmt.Errorf("create workstation %q: %w", ref.Label, err)
	}
	return created, nil
}

// BindEmployee seats an employee at the workstation, creating the record
// from the floor-plan label if needed.
//
// If the employee is already seated at a different workstation the call
// fails with ConflictError unless override is set: the Conflict Resolver
// must have driven the confirmation flow first. Binding into a workstation
// occupied by a different employee replaces the occupant — the caller is
// responsible for warning about the eviction beforehand. Binding the same
// employee to the same workstation twice is a no-op.
//
// The override path is two writes: unseat the old workstation, then seat
// the new one. If the second write fails after the first committed, the
// employee ends up unassigned everywhere. That partial state is reported,
// not repaired — re-binding the original seat could itself race with a
// concurrent change.
func (s *Store) BindEmployee(ctx context.Context, ref WorkstationRef, employeeID primitive.ObjectID, override bool) (*models.Workstation, error) {
	if employeeID.IsZero() {
		return nil, &ValidationError{Message: "employee id is required"}
	}

	ws, err := s.resolveOrCreate(ctx, ref)
	if err != nil {
		return nil, err
	}

	if ws.EmployeeID != nil && *ws.EmployeeID == employeeID {
		return ws, nil
	}

	current, err := s.repo.FindWorkstationByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.ID != ws.ID && !override {
		return nil, &ConflictError{
			Message:       fmt.Sprintf("employee is already assigned to workstation %q", current.DisplayName),
			EmployeeID:    employeeID,
			WorkstationID: current.ID,
		}
	}
	if current != nil && current.ID != ws.ID && override {
		// Explicit unseat of the old workstation keeps the one-seat
		// invariant observable between the two writes.
		if err := s.repo.SetWorkstationEmployee(ctx, current.ID, nil); err != nil {
			return nil, err
		}
		s.notifier.AssignmentChanged(current.ID)
	}

	if err := s.repo.SetWorkstationEmployee(ctx, ws.ID, &employeeID); err != nil {
		return nil, err
	}
	ws.EmployeeID = &employeeID
	s.notifier.AssignmentChanged(ws.ID)
	return ws, nil
}

// SetEquipment flips the shared-infrastructure flag. Equipment stations
// keep their occupant and assets; only the derived status changes.
func (s *Store) SetEquipment(ctx context.Context, workstationID primitive.ObjectID, isEquipment bool) error {
	if _, err := s.GetWorkstation(ctx, workstationID); err != nil {
		return err
	}
	if err := s.repo.SetWorkstationEquipment(ctx, workstationID, isEquipment); err != nil {
		return err
	}
	s.notifier.AssignmentChanged(workstationID)
	return nil
}

// UnbindEmployee clears the workstation's occupant. Assets are untouched.
func (s *Store) UnbindEmployee(ctx context.Context, workstationID primitive.ObjectID) error {
	ws, err := s.GetWorkstation(ctx, workstationID)
	if err != nil {
		return err
	}
	if !ws.Occupied() {
		return nil
	}
	if err := s.repo.SetWorkstationEmployee(ctx, workstationID, nil); err != nil {
		return err
	}
	s.notifier.AssignmentChanged(workstationID)
	return nil
}

// BindAssets points every listed asset at the workstation and stamps the
// chosen status. The list is treated as a set. Assets already bound
// elsewhere are silently moved — unlike employees, asset placement never
// requires confirmation — and the workstations they leave get their own
// change notification.
func (s *Store) BindAssets(ctx context.Context, ref WorkstationRef, assetIDs []primitive.ObjectID, status models.AssetStatus) (*models.Workstation, error) {
	assetIDs = dedupe(assetIDs)
	if len(assetIDs) == 0 {
		return nil, &ValidationError{Message: "at least one asset is required"}
	}
	if !status.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown asset status %q", status)}
	}

	ws, err := s.resolveOrCreate(ctx, ref)
	if err != nil {
		return nil, err
	}

	vacated := make(map[primitive.ObjectID]bool)
	for _, id := range assetIDs {
		asset, err := s.repo.GetAsset(ctx, id)
		if err != nil {
			return nil, err
		}
		if asset == nil {
			return nil, &NotFoundError{Kind: "asset", Ref: id.Hex()}
		}
		if asset.WorkstationID != nil && *asset.WorkstationID != ws.ID {
			vacated[*asset.WorkstationID] = true
		}
	}

	if err := s.repo.AssignAssets(ctx, assetIDs, ws.ID, status); err != nil {
		return nil, err
	}

	for id := range vacated {
		s.notifier.AssignmentChanged(id)
	}
	s.notifier.AssignmentChanged(ws.ID)
	return ws, nil
}

// UnassignAssets returns the listed assets to storage. The asset status is
// deliberately left as-is: unassigning does not reset condition.
func (s *Store) UnassignAssets(ctx context.Context, assetIDs []primitive.ObjectID) error {
	assetIDs = dedupe(assetIDs)
	if len(assetIDs) == 0 {
		return &ValidationError{Message: "at least one asset is required"}
	}

	vacated := make(map[primitive.ObjectID]bool)
	for _, id := range assetIDs {
		asset, err := s.repo.GetAsset(ctx, id)
		if err != nil {
			return err
		}
		if asset == nil {
			return &NotFoundError{Kind: "asset", Ref: id.Hex()}
		}
		if asset.WorkstationID != nil {
			vacated[*asset.WorkstationID] = true
		}
	}

	if err := s.repo.ClearAssetWorkstation(ctx, assetIDs); err != nil {
		return err
	}

	for id := range vacated {
		s.notifier.AssignmentChanged(id)
	}
	return nil
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// normalizeLabel uppercases, drops separators, strips one known prefix and
// ignores leading zeros, so "ws-012", "WS012" and "DESK 12" all come out
// as "12".
func normalizeLabel(label string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(label) {
		switch r {
		case '-', '_', '.', ' ', '#':
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	for _, prefix := range labelPrefixes {
		if strings.HasPrefix(out, prefix) && len(out) > len(prefix) {
			out = out[len(prefix):]
			break
		}
	}
	return trimZeros(out)
}

func trimZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}

// numericSuffix returns the trailing digit run with leading zeros removed,
// or "" when the label does not end in digits.
func numericSuffix(label string) string {
	end := len(label)
	start := end
	for start > 0 && label[start-1] >= '0' && label[start-1] <= '9' {
		start--
	}
	if start == end {
		return ""
	}
	return trimZeros(label[start:end])
}
