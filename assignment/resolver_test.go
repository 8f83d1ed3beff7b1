package assignment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCheckEmployeePlacement_DirectAssign(t *testing.T) {
	store, repo, _ := newTestStore()
	resolver := NewResolver(repo)
	employee := primitive.NewObjectID()
	w1 := seedWorkstation(repo, "WS-1", nil)

	plan, err := resolver.CheckEmployeePlacement(context.Background(), employee, w1.ID)
	require.NoError(t, err)
	assert.Equal(t, PlanDirectAssign, plan.Kind)
	assert.Nil(t, plan.Current)

	// Direct assign, then the station reads incomplete: occupant, no assets.
	_, err = store.BindEmployee(context.Background(), RefByID(w1.ID), employee, false)
	require.NoError(t, err)

	classifier := NewClassifier(nil, nil)
	stored, _ := repo.GetWorkstation(context.Background(), w1.ID)
	count, _ := repo.CountAssetsForWorkstation(context.Background(), w1.ID)
	assert.Equal(t, StatusIncomplete, classifier.Classify(*stored, count))
}

func TestCheckEmployeePlacement_AlreadyInPlace(t *testing.T) {
	_, repo, _ := newTestStore()
	resolver := NewResolver(repo)
	employee := primitive.NewObjectID()
	w1 := seedWorkstation(repo, "WS-1", &employee)

	plan, err := resolver.CheckEmployeePlacement(context.Background(), employee, w1.ID)
	require.NoError(t, err)
	assert.Equal(t, PlanAlreadyInPlace, plan.Kind)
	require.NotNil(t, plan.Current)
	assert.Equal(t, w1.ID, plan.Current.ID)
}

func TestCheckEmployeePlacement_RequiresConfirmation(t *testing.T) {
	store, repo, _ := newTestStore()
	resolver := NewResolver(repo)
	employee := primitive.NewObjectID()
	w1 := seedWorkstation(repo, "WS-1", &employee)
	w2 := seedWorkstation(repo, "WS-2", nil)

	plan, err := resolver.CheckEmployeePlacement(context.Background(), employee, w2.ID)
	require.NoError(t, err)
	assert.Equal(t, PlanRequiresConfirmation, plan.Kind)
	require.NotNil(t, plan.Current)
	assert.Equal(t, w1.ID, plan.Current.ID)

	// Confirmed move: explicit unbind of the current seat, then bind.
	ctx := context.Background()
	require.NoError(t, store.UnbindEmployee(ctx, plan.Current.ID))
	_, err = store.BindEmployee(ctx, RefByID(w2.ID), employee, false)
	require.NoError(t, err)

	oldWS, _ := repo.GetWorkstation(ctx, w1.ID)
	newWS, _ := repo.GetWorkstation(ctx, w2.ID)
	assert.Nil(t, oldWS.EmployeeID)
	require.NotNil(t, newWS.EmployeeID)
	assert.Equal(t, employee, *newWS.EmployeeID)
}

func TestCheckEmployeePlacement_RequiresEmployee(t *testing.T) {
	_, repo, _ := newTestStore()
	resolver := NewResolver(repo)

	_, err := resolver.CheckEmployeePlacement(context.Background(), primitive.NilObjectID, primitive.NewObjectID())
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCheckWorkstationOccupancy(t *testing.T) {
	_, repo, _ := newTestStore()
	resolver := NewResolver(repo)
	employee := primitive.NewObjectID()
	occupied := seedWorkstation(repo, "WS-1", &employee)
	empty := seedWorkstation(repo, "WS-2", nil)

	ctx := context.Background()

	occ, err := resolver.CheckWorkstationOccupancy(ctx, occupied.ID)
	require.NoError(t, err)
	assert.True(t, occ.Occupied)
	require.NotNil(t, occ.ByEmployeeID)
	assert.Equal(t, employee, *occ.ByEmployeeID)

	occ, err = resolver.CheckWorkstationOccupancy(ctx, empty.ID)
	require.NoError(t, err)
	assert.False(t, occ.Occupied)
	assert.Nil(t, occ.ByEmployeeID)

	// A workstation that does not exist yet counts as unoccupied.
	occ, err = resolver.CheckWorkstationOccupancy(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.False(t, occ.Occupied)
}
