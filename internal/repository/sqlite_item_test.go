package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/testutil"
)

func setupItemRepos(t *testing.T, ctx context.Context) (*SQLiteItemRepo, *domain.Phase) {
	t.Helper()
	database := testutil.NewTestDB(t)
	packages := NewSQLiteWorkPackageRepo(database)
	phases := NewSQLitePhaseRepo(database)
	items := NewSQLiteItemRepo(database)

	w := testutil.NewTestWorkPackage("Website Redesign")
	require.NoError(t, packages.Create(ctx, w))
	p := testutil.NewTestPhase(w.ID, "Build")
	require.NoError(t, phases.Create(ctx, p))
	return items, p
}

func TestItemRepo_SumHoursByPhase(t *testing.T) {
	ctx := context.Background()
	items, p := setupItemRepos(t, ctx)

	require.NoError(t, items.Create(ctx, testutil.NewTestItem(p.ID, "Templates", testutil.WithQuantity(2), testutil.WithHoursEach(8))))
	require.NoError(t, items.Create(ctx, testutil.NewTestItem(p.ID, "Reviews", testutil.WithQuantity(3), testutil.WithHoursEach(1.5))))

	hours, err := items.SumHoursByPhase(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.5, hours)
}

func TestItemRepo_SumHoursEmptyPhaseIsZero(t *testing.T) {
	ctx := context.Background()
	items, p := setupItemRepos(t, ctx)

	hours, err := items.SumHoursByPhase(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, hours)
}

func TestItemRepo_CreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	items, p := setupItemRepos(t, ctx)

	i := testutil.NewTestItem(p.ID, "Templates", testutil.WithQuantity(2), testutil.WithHoursEach(6))
	require.NoError(t, items.Create(ctx, i))

	got, err := items.GetByID(ctx, i.ID)
	require.NoError(t, err)
	assert.Equal(t, "Templates", got.Name)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 6.0, got.EstimatedHoursEach)

	got.Quantity = 5
	require.NoError(t, items.Update(ctx, got))
	got, err = items.GetByID(ctx, i.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)

	require.NoError(t, items.Delete(ctx, i.ID))
	_, err = items.GetByID(ctx, i.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemRepo_ListByPhaseScopedToPhase(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	packages := NewSQLiteWorkPackageRepo(database)
	phases := NewSQLitePhaseRepo(database)
	items := NewSQLiteItemRepo(database)

	w := testutil.NewTestWorkPackage("Website Redesign")
	require.NoError(t, packages.Create(ctx, w))
	p1 := testutil.NewTestPhase(w.ID, "Build", testutil.WithPosition(1))
	p2 := testutil.NewTestPhase(w.ID, "Launch", testutil.WithPosition(2))
	require.NoError(t, phases.Create(ctx, p1))
	require.NoError(t, phases.Create(ctx, p2))

	require.NoError(t, items.Create(ctx, testutil.NewTestItem(p1.ID, "Templates")))
	require.NoError(t, items.Create(ctx, testutil.NewTestItem(p2.ID, "Announcement")))

	got, err := items.ListByPhase(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Templates", got[0].Name)
}
