package assignment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/models"
)

func TestBindEmployee_CreatesWorkstationFromLabel(t *testing.T) {
	store, repo, notifier := newTestStore()
	employee := primitive.NewObjectID()

	ws, err := store.BindEmployee(context.Background(), RefByLabel("WS-101"), employee, false)
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, "WS-101", ws.DisplayName)
	require.NotNil(t, ws.EmployeeID)
	assert.Equal(t, employee, *ws.EmployeeID)
	assert.True(t, notifier.notified(ws.ID))

	stored, err := repo.GetWorkstation(context.Background(), ws.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, employee, *stored.EmployeeID)
}

func TestBindEmployee_Idempotent(t *testing.T) {
	store, repo, _ := newTestStore()
	employee := primitive.NewObjectID()
	ws := seedWorkstation(repo, "WS-1", nil)

	first, err := store.BindEmployee(context.Background(), RefByID(ws.ID), employee, false)
	require.NoError(t, err)
	second, err := store.BindEmployee(context.Background(), RefByID(ws.ID), employee, false)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	// Exactly one seat for the employee across all workstations.
	stations, err := repo.ListWorkstations(context.Background())
	require.NoError(t, err)
	seats := 0
	for _, s := range stations {
		if s.EmployeeID != nil && *s.EmployeeID == employee {
			seats++
		}
	}
	assert.Equal(t, 1, seats)
}

func TestBindEmployee_ConflictWithoutOverride(t *testing.T) {
	store, repo, _ := newTestStore()
	employee := primitive.NewObjectID()
	current := seedWorkstation(repo, "WS-1", &employee)
	target := seedWorkstation(repo, "WS-2", nil)

	_, err := store.BindEmployee(context.Background(), RefByID(target.ID), employee, false)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, current.ID, conflict.WorkstationID)
	assert.Equal(t, employee, conflict.EmployeeID)

	// Nothing moved.
	stored, _ := repo.GetWorkstation(context.Background(), target.ID)
	assert.Nil(t, stored.EmployeeID)
}

func TestBindEmployee_OverrideMovesSeat(t *testing.T) {
	store, repo, notifier := newTestStore()
	employee := primitive.NewObjectID()
	source := seedWorkstation(repo, "WS-1", &employee)
	target := seedWorkstation(repo, "WS-2", nil)

	_, err := store.BindEmployee(context.Background(), RefByID(target.ID), employee, true)
	require.NoError(t, err)

	oldWS, _ := repo.GetWorkstation(context.Background(), source.ID)
	newWS, _ := repo.GetWorkstation(context.Background(), target.ID)
	assert.Nil(t, oldWS.EmployeeID)
	require.NotNil(t, newWS.EmployeeID)
	assert.Equal(t, employee, *newWS.EmployeeID)

	// Both stations repaint.
	assert.True(t, notifier.notified(source.ID))
	assert.True(t, notifier.notified(target.ID))
}

func TestBindEmployee_ReplacesOccupant(t *testing.T) {
	store, repo, _ := newTestStore()
	sitting := primitive.NewObjectID()
	incoming := primitive.NewObjectID()
	ws := seedWorkstation(repo, "WS-1", &sitting)

	_, err := store.BindEmployee(context.Background(), RefByID(ws.ID), incoming, false)
	require.NoError(t, err)

	stored, _ := repo.GetWorkstation(context.Background(), ws.ID)
	require.NotNil(t, stored.EmployeeID)
	assert.Equal(t, incoming, *stored.EmployeeID)

	// The evicted employee is seated nowhere.
	displaced, err := repo.FindWorkstationByEmployee(context.Background(), sitting)
	require.NoError(t, err)
	assert.Nil(t, displaced)
}

func TestBindAssets_SetsPlacementAndStatus(t *testing.T) {
	store, repo, _ := newTestStore()
	employee := primitive.NewObjectID()
	ws := seedWorkstation(repo, "WS-1", &employee)
	a1 := seedAsset(repo, "laptop", nil, models.StatusReadyToDeploy)
	a2 := seedAsset(repo, "monitor", nil, models.StatusReadyToDeploy)

	_, err := store.BindAssets(context.Background(), RefByID(ws.ID), []primitive.ObjectID{a1.ID, a2.ID}, models.StatusOnsite)
	require.NoError(t, err)

	for _, id := range []primitive.ObjectID{a1.ID, a2.ID} {
		asset, err := repo.GetAsset(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, asset.WorkstationID)
		assert.Equal(t, ws.ID, *asset.WorkstationID)
		assert.Equal(t, models.StatusOnsite, asset.Status)
	}

	// Occupied workstation with assets now classifies complete.
	classifier := NewClassifier(nil, nil)
	count, _ := repo.CountAssetsForWorkstation(context.Background(), ws.ID)
	stored, _ := repo.GetWorkstation(context.Background(), ws.ID)
	assert.Equal(t, StatusComplete, classifier.Classify(*stored, count))
}

func TestBindAssets_MovesBoundAssetsWithoutConfirmation(t *testing.T) {
	store, repo, notifier := newTestStore()
	origin := seedWorkstation(repo, "WS-1", nil)
	target := seedWorkstation(repo, "WS-2", nil)
	asset := seedAsset(repo, "dock", &origin.ID, models.StatusOnsite)

	// No conflict error and no confirmation gate for assets.
	_, err := store.BindAssets(context.Background(), RefByID(target.ID), []primitive.ObjectID{asset.ID}, models.StatusTemporarilyDeployed)
	require.NoError(t, err)

	moved, _ := repo.GetAsset(context.Background(), asset.ID)
	assert.Equal(t, target.ID, *moved.WorkstationID)
	assert.Equal(t, models.StatusTemporarilyDeployed, moved.Status)

	// The vacated workstation repaints too.
	assert.True(t, notifier.notified(origin.ID))
	assert.True(t, notifier.notified(target.ID))
}

func TestBindAssets_DuplicatesTreatedAsSet(t *testing.T) {
	store, repo, _ := newTestStore()
	ws := seedWorkstation(repo, "WS-1", nil)
	asset := seedAsset(repo, "laptop", nil, models.StatusReadyToDeploy)

	_, err := store.BindAssets(context.Background(), RefByID(ws.ID),
		[]primitive.ObjectID{asset.ID, asset.ID, asset.ID}, models.StatusOnsite)
	require.NoError(t, err)

	count, _ := repo.CountAssetsForWorkstation(context.Background(), ws.ID)
	assert.Equal(t, 1, count)
}

func TestBindAssets_UnknownAsset(t *testing.T) {
	store, repo, _ := newTestStore()
	ws := seedWorkstation(repo, "WS-1", nil)

	_, err := store.BindAssets(context.Background(), RefByID(ws.ID),
		[]primitive.ObjectID{primitive.NewObjectID()}, models.StatusOnsite)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "asset", notFound.Kind)
}

func TestBindAssets_InvalidStatus(t *testing.T) {
	store, repo, _ := newTestStore()
	ws := seedWorkstation(repo, "WS-1", nil)
	asset := seedAsset(repo, "laptop", nil, models.StatusReadyToDeploy)

	_, err := store.BindAssets(context.Background(), RefByID(ws.ID),
		[]primitive.ObjectID{asset.ID}, models.AssetStatus("lost"))
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUnassignAssets_KeepsStatus(t *testing.T) {
	store, repo, _ := newTestStore()
	ws := seedWorkstation(repo, "WS-1", nil)
	asset := seedAsset(repo, "laptop", &ws.ID, models.StatusDefective)

	err := store.UnassignAssets(context.Background(), []primitive.ObjectID{asset.ID})
	require.NoError(t, err)

	stored, _ := repo.GetAsset(context.Background(), asset.ID)
	assert.Nil(t, stored.WorkstationID)
	assert.Equal(t, models.StatusDefective, stored.Status)
}

func TestUnbindEmployee_LeavesAssets(t *testing.T) {
	store, repo, _ := newTestStore()
	employee := primitive.NewObjectID()
	ws := seedWorkstation(repo, "WS-1", &employee)
	asset := seedAsset(repo, "laptop", &ws.ID, models.StatusOnsite)

	require.NoError(t, store.UnbindEmployee(context.Background(), ws.ID))

	stored, _ := repo.GetWorkstation(context.Background(), ws.ID)
	assert.Nil(t, stored.EmployeeID)
	kept, _ := repo.GetAsset(context.Background(), asset.ID)
	assert.Equal(t, ws.ID, *kept.WorkstationID)
}

func TestUnbindEmployee_UnknownWorkstation(t *testing.T) {
	store, _, _ := newTestStore()

	err := store.UnbindEmployee(context.Background(), primitive.NewObjectID())
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSetEquipment_FlagDrivesClassification(t *testing.T) {
	store, repo, notifier := newTestStore()
	employee := primitive.NewObjectID()
	ws := seedWorkstation(repo, "WS-1", &employee)
	seedAsset(repo, "switch", &ws.ID, models.StatusOnsite)

	require.NoError(t, store.SetEquipment(context.Background(), ws.ID, true))
	assert.True(t, notifier.notified(ws.ID))

	classifier := NewClassifier(nil, nil)
	stored, _ := repo.GetWorkstation(context.Background(), ws.ID)
	count, _ := repo.CountAssetsForWorkstation(context.Background(), ws.ID)
	// Occupied and equipped, but equipment wins.
	assert.Equal(t, StatusEquipment, classifier.Classify(*stored, count))

	// Occupant and assets survived the flag flip.
	require.NotNil(t, stored.EmployeeID)
	assert.Equal(t, employee, *stored.EmployeeID)
	assert.Equal(t, 1, count)
}

func TestResolveWorkstation_Chain(t *testing.T) {
	store, repo, _ := newTestStore()
	byID := seedWorkstation(repo, "Reception", nil)
	byName := seedWorkstation(repo, "WS-012", nil)
	suffixOnly := seedWorkstation(repo, "Annex 33", nil)

	ctx := context.Background()

	// Tier 1: exact record id.
	ws, err := store.ResolveWorkstation(ctx, byID.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, byID.ID, ws.ID)

	// Tier 2: exact display name.
	ws, err = store.ResolveWorkstation(ctx, "WS-012")
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, byName.ID, ws.ID)

	// Tier 3: normalized label (prefix and separators stripped, zeros
	// ignored, case-insensitive).
	for _, label := range []string{"ws_012", "DESK 12", "WS12"} {
		ws, err = store.ResolveWorkstation(ctx, label)
		require.NoError(t, err)
		require.NotNil(t, ws, "label %q should resolve", label)
		assert.Equal(t, byName.ID, ws.ID, "label %q", label)
	}

	// Tier 4: trailing digits match, leading zeros ignored.
	ws, err = store.ResolveWorkstation(ctx, "Zone-B-033")
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, suffixOnly.ID, ws.ID)

	// No tier matches: nil, nil — caller decides whether to create.
	ws, err = store.ResolveWorkstation(ctx, "Cafeteria")
	require.NoError(t, err)
	assert.Nil(t, ws)
}

func TestAssetWorkstationReferenceInvariant(t *testing.T) {
	store, repo, _ := newTestStore()
	asset := seedAsset(repo, "laptop", nil, models.StatusReadyToDeploy)

	// Binding to an unknown label creates the workstation first, so the
	// asset's foreign key always lands on an existing record.
	ws, err := store.BindAssets(context.Background(), RefByLabel("WS-500"),
		[]primitive.ObjectID{asset.ID}, models.StatusOnsite)
	require.NoError(t, err)

	stored, _ := repo.GetAsset(context.Background(), asset.ID)
	require.NotNil(t, stored.WorkstationID)
	referenced, err := repo.GetWorkstation(context.Background(), *stored.WorkstationID)
	require.NoError(t, err)
	require.NotNil(t, referenced)
	assert.Equal(t, ws.ID, referenced.ID)
}

// TestPlacementScanRace_KnownGap documents the accepted limitation: the
// scan inside BindEmployee and the write that follows are not isolated, so
// two sessions that both observe an unseated employee can seat them twice.
// Each record write is atomic but the outcome is last-write-wins; nothing
// in the store detects the double seat after the fact.
func TestPlacementScanRace_KnownGap(t *testing.T) {
	_, repo, _ := newTestStore()
	employee := primitive.NewObjectID()
	w1 := seedWorkstation(repo, "WS-1", nil)
	w2 := seedWorkstation(repo, "WS-2", nil)

	ctx := context.Background()

	// Both sessions scan: employee seated nowhere.
	current, err := repo.FindWorkstationByEmployee(ctx, employee)
	require.NoError(t, err)
	require.Nil(t, current)

	// Both sessions then write their own seat.
	require.NoError(t, repo.SetWorkstationEmployee(ctx, w1.ID, &employee))
	require.NoError(t, repo.SetWorkstationEmployee(ctx, w2.ID, &employee))

	// The invariant is now violated until the next write repairs it. This
	// is the documented optimistic, last-write-wins gap, not a bug in the
	// store's single-session behavior.
	stations, _ := repo.ListWorkstations(ctx)
	seats := 0
	for _, s := range stations {
		if s.EmployeeID != nil && *s.EmployeeID == employee {
			seats++
		}
	}
	assert.Equal(t, 2, seats)
}
