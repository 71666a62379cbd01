package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/repository"
	"github.com/danvoss/stride/internal/schedule"
	"github.com/danvoss/stride/internal/testutil"
)

type phaseHarness struct {
	db       *sql.DB
	phaseSvc PhaseService
	pkgSvc   WorkPackageService
	itemSvc  ItemService
	packages *repository.SQLiteWorkPackageRepo
	phases   *repository.SQLitePhaseRepo
	items    *repository.SQLiteItemRepo
}

func newPhaseHarness(t *testing.T) *phaseHarness {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	pkgRepo := repository.NewSQLiteWorkPackageRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	itemRepo := repository.NewSQLiteItemRepo(database)

	return &phaseHarness{
		db:       database,
		phaseSvc: NewPhaseService(phaseRepo, itemRepo, pkgRepo, uow),
		pkgSvc:   NewWorkPackageService(pkgRepo, uow),
		itemSvc:  NewItemService(itemRepo, phaseRepo, uow),
		packages: pkgRepo,
		phases:   phaseRepo,
		items:    itemRepo,
	}
}

// seedPackage creates a work package with three phases whose durations derive
// from their items: 16h -> 2 days, 20h -> 3 days, 8h -> 1 day.
func (h *phaseHarness) seedPackage(t *testing.T, ctx context.Context) (*domain.WorkPackage, []*domain.Phase) {
	t.Helper()

	w := testutil.NewTestWorkPackage("Website Redesign")
	require.NoError(t, h.packages.Create(ctx, w))

	p1 := testutil.NewTestPhase(w.ID, "Discovery", testutil.WithPosition(1))
	p2 := testutil.NewTestPhase(w.ID, "Build", testutil.WithPosition(2))
	p3 := testutil.NewTestPhase(w.ID, "Launch", testutil.WithPosition(3))
	for _, p := range []*domain.Phase{p1, p2, p3} {
		require.NoError(t, h.phases.Create(ctx, p))
	}

	require.NoError(t, h.itemSvc.Create(ctx, testutil.NewTestItem(p1.ID, "Interviews", testutil.WithQuantity(2), testutil.WithHoursEach(8))))
	require.NoError(t, h.itemSvc.Create(ctx, testutil.NewTestItem(p2.ID, "Pages", testutil.WithQuantity(5), testutil.WithHoursEach(4))))
	require.NoError(t, h.itemSvc.Create(ctx, testutil.NewTestItem(p3.ID, "Deploy", testutil.WithQuantity(1), testutil.WithHoursEach(8))))

	phases, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, phases, 3)
	return w, phases
}

func TestItemWrites_RecomputeOwningPhase(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	_, phases := h.seedPackage(t, ctx)

	assert.Equal(t, 16.0, phases[0].TotalEstimatedHours)
	assert.Equal(t, 2, phases[0].PhaseTotalDuration)
	assert.Equal(t, 20.0, phases[1].TotalEstimatedHours)
	assert.Equal(t, 3, phases[1].PhaseTotalDuration)
	assert.Equal(t, 8.0, phases[2].TotalEstimatedHours)
	assert.Equal(t, 1, phases[2].PhaseTotalDuration)
}

func TestSetEffectiveStartDate_CascadesTimeline(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, _ := h.seedPackage(t, ctx)

	phases, err := h.pkgSvc.SetEffectiveStartDate(ctx, w.ID, testutil.Date(2026, time.September, 1))
	require.NoError(t, err)
	require.Len(t, phases, 3)

	// Durations 2/3/1 with a one-day gap between phases.
	assert.Equal(t, testutil.Date(2026, time.September, 1), *phases[0].EstimatedStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 3), *phases[0].EstimatedEndDate)
	assert.Equal(t, testutil.Date(2026, time.September, 4), *phases[1].EstimatedStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 7), *phases[1].EstimatedEndDate)
	assert.Equal(t, testutil.Date(2026, time.September, 8), *phases[2].EstimatedStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 9), *phases[2].EstimatedEndDate)

	// Persisted, not just in memory.
	reloaded, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2026, time.September, 8), *reloaded[2].EstimatedStartDate)

	pkg, err := h.pkgSvc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, pkg.EffectiveStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 1), *pkg.EffectiveStartDate)
}

func TestApplyDateEdit_DurationChangeCascadesLaterPhases(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, _ := h.seedPackage(t, ctx)

	_, err := h.pkgSvc.SetEffectiveStartDate(ctx, w.ID, testutil.Date(2026, time.September, 1))
	require.NoError(t, err)
	phases, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)

	// Stretch phase 1 from 2 to 4 days: phase 2 and 3 shift by 2 days.
	dur := 4
	edited, err := h.phaseSvc.ApplyDateEdit(ctx, phases[0].ID, schedule.DatePatch{PhaseTotalDuration: &dur})
	require.NoError(t, err)
	assert.Equal(t, 4, edited.PhaseTotalDuration)
	assert.Equal(t, testutil.Date(2026, time.September, 5), *edited.EstimatedEndDate)

	reloaded, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2026, time.September, 6), *reloaded[1].EstimatedStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 9), *reloaded[1].EstimatedEndDate)
	assert.Equal(t, testutil.Date(2026, time.September, 10), *reloaded[2].EstimatedStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 11), *reloaded[2].EstimatedEndDate)
}

func TestApplyDateEdit_MiddlePhaseStartShiftLeavesEarlierAlone(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, _ := h.seedPackage(t, ctx)

	_, err := h.pkgSvc.SetEffectiveStartDate(ctx, w.ID, testutil.Date(2026, time.September, 1))
	require.NoError(t, err)
	phases, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)

	// Push phase 2's start out by three days; duration preserved.
	newStart := testutil.Date(2026, time.September, 7)
	edited, err := h.phaseSvc.ApplyDateEdit(ctx, phases[1].ID, schedule.DatePatch{EstimatedStartDate: &newStart})
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2026, time.September, 7), *edited.EstimatedStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 10), *edited.EstimatedEndDate)
	assert.Equal(t, 3, edited.PhaseTotalDuration)

	reloaded, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)
	// Phase 1 untouched, phase 3 follows the new end.
	assert.Equal(t, testutil.Date(2026, time.September, 1), *reloaded[0].EstimatedStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 3), *reloaded[0].EstimatedEndDate)
	assert.Equal(t, testutil.Date(2026, time.September, 11), *reloaded[2].EstimatedStartDate)
}

func TestApplyDateEdit_EndBeforeStartRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, _ := h.seedPackage(t, ctx)

	_, err := h.pkgSvc.SetEffectiveStartDate(ctx, w.ID, testutil.Date(2026, time.September, 1))
	require.NoError(t, err)
	before, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)

	badEnd := testutil.Date(2026, time.August, 20)
	_, err = h.phaseSvc.ApplyDateEdit(ctx, before[1].ID, schedule.DatePatch{EstimatedEndDate: &badEnd})
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	after, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)
	for i := range before {
		assert.Equal(t, *before[i].EstimatedStartDate, *after[i].EstimatedStartDate)
		assert.Equal(t, *before[i].EstimatedEndDate, *after[i].EstimatedEndDate)
	}
}

func TestApplyStatus_StampsActualDatesOnce(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, _ := h.seedPackage(t, ctx)

	_, err := h.pkgSvc.SetEffectiveStartDate(ctx, w.ID, testutil.Date(2026, time.September, 1))
	require.NoError(t, err)
	phases, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)
	target := phases[0]
	estStart := *target.EstimatedStartDate
	estEnd := *target.EstimatedEndDate

	p, err := h.phaseSvc.ApplyStatus(ctx, target.ID, domain.PhaseInProgress)
	require.NoError(t, err)
	require.NotNil(t, p.ActualStartDate)
	assert.WithinDuration(t, time.Now().UTC(), *p.ActualStartDate, 5*time.Second)
	assert.Nil(t, p.ActualEndDate)

	firstStart := *p.ActualStartDate

	p, err = h.phaseSvc.ApplyStatus(ctx, target.ID, domain.PhaseCompleted)
	require.NoError(t, err)
	require.NotNil(t, p.ActualEndDate)
	// Already-set actual start is not overwritten.
	assert.True(t, p.ActualStartDate.Equal(firstStart))

	// Estimated timeline is untouched by status transitions.
	assert.Equal(t, estStart, *p.EstimatedStartDate)
	assert.Equal(t, estEnd, *p.EstimatedEndDate)

	// Sibling phases keep their estimated dates too.
	reloaded, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2026, time.September, 4), *reloaded[1].EstimatedStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 8), *reloaded[2].EstimatedStartDate)
}

func TestApplyStatus_UnknownStatusRejected(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	_, phases := h.seedPackage(t, ctx)

	_, err := h.phaseSvc.ApplyStatus(ctx, phases[0].ID, domain.PhaseStatus("paused"))
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestApplyDateEdit_ActualEndDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, _ := h.seedPackage(t, ctx)

	_, err := h.pkgSvc.SetEffectiveStartDate(ctx, w.ID, testutil.Date(2026, time.September, 1))
	require.NoError(t, err)
	before, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)

	// Actual end lands two days late; estimated dates of every phase stay put.
	actualEnd := testutil.Date(2026, time.September, 5)
	edited, err := h.phaseSvc.ApplyDateEdit(ctx, before[0].ID, schedule.DatePatch{ActualEndDate: &actualEnd})
	require.NoError(t, err)
	require.NotNil(t, edited.ActualEndDate)
	assert.Equal(t, actualEnd, *edited.ActualEndDate)
	assert.Equal(t, *before[0].EstimatedEndDate, *edited.EstimatedEndDate)

	after, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, *before[1].EstimatedStartDate, *after[1].EstimatedStartDate)
	assert.Equal(t, *before[2].EstimatedStartDate, *after[2].EstimatedStartDate)
	assert.Nil(t, after[1].ActualStartDate)
}

func TestRecomputeAll_IdempotentWithoutItemChanges(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, _ := h.seedPackage(t, ctx)

	first, err := h.phaseSvc.RecomputeAll(ctx, w.ID)
	require.NoError(t, err)
	second, err := h.phaseSvc.RecomputeAll(ctx, w.ID)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].TotalEstimatedHours, second[i].TotalEstimatedHours)
		assert.Equal(t, first[i].PhaseTotalDuration, second[i].PhaseTotalDuration)
	}
}

func TestRecomputePhase_HoursOverrideSkipsItems(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	_, phases := h.seedPackage(t, ctx)

	override := 33.0
	p, err := h.phaseSvc.RecomputePhase(ctx, phases[0].ID, &override)
	require.NoError(t, err)
	assert.Equal(t, 33.0, p.TotalEstimatedHours)
	assert.Equal(t, 5, p.PhaseTotalDuration)
	// Dates are never touched by a recompute.
	assert.Nil(t, p.EstimatedStartDate)
}

func TestRecomputeAll_UnknownPackage(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)

	_, err := h.phaseSvc.RecomputeAll(ctx, "no-such-package")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReschedule_RebuildsWholeTimeline(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, _ := h.seedPackage(t, ctx)

	_, err := h.pkgSvc.SetEffectiveStartDate(ctx, w.ID, testutil.Date(2026, time.September, 1))
	require.NoError(t, err)
	phases, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)

	// Doubling the quantity of phase 1's item moves it from 2 to 4 days.
	items, err := h.itemSvc.ListByPhase(ctx, phases[0].ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	items[0].Quantity = 4
	require.NoError(t, h.itemSvc.Update(ctx, items[0]))

	result, err := h.phaseSvc.Reschedule(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, 4, result[0].PhaseTotalDuration)
	assert.Equal(t, testutil.Date(2026, time.September, 5), *result[0].EstimatedEndDate)
	assert.Equal(t, testutil.Date(2026, time.September, 6), *result[1].EstimatedStartDate)
	assert.Equal(t, testutil.Date(2026, time.September, 10), *result[2].EstimatedStartDate)
}

func TestApplyDateEdit_InjectedFailureLeavesNoPartialCascade(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, _ := h.seedPackage(t, ctx)

	_, err := h.pkgSvc.SetEffectiveStartDate(ctx, w.ID, testutil.Date(2026, time.September, 1))
	require.NoError(t, err)
	before, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)

	// Fail on the second phase write of the cascade batch.
	failingUoW := &testutil.FailOnNthExecUoW{
		DB:     h.db,
		FailOn: 2,
		Err:    errors.New("injected write failure"),
	}
	failingSvc := NewPhaseService(h.phases, h.items, h.packages, failingUoW)

	dur := 6
	_, err = failingSvc.ApplyDateEdit(ctx, before[0].ID, schedule.DatePatch{PhaseTotalDuration: &dur})
	require.Error(t, err)

	// Nothing committed: the edited phase and every sibling read back unchanged.
	after, err := h.phaseSvc.ListByWorkPackage(ctx, w.ID)
	require.NoError(t, err)
	for i := range before {
		assert.Equal(t, before[i].PhaseTotalDuration, after[i].PhaseTotalDuration)
		assert.Equal(t, *before[i].EstimatedStartDate, *after[i].EstimatedStartDate)
		assert.Equal(t, *before[i].EstimatedEndDate, *after[i].EstimatedEndDate)
	}
}

func TestPhaseCreate_AppendsAndRejectsTakenPosition(t *testing.T) {
	ctx := context.Background()
	h := newPhaseHarness(t)
	w, phases := h.seedPackage(t, ctx)

	appended := testutil.NewTestPhase(w.ID, "Post-launch", testutil.WithPosition(0))
	appended.Position = 0
	require.NoError(t, h.phaseSvc.Create(ctx, appended))
	assert.Equal(t, 4, appended.Position)

	dup := testutil.NewTestPhase(w.ID, "Conflict", testutil.WithPosition(phases[0].Position))
	err := h.phaseSvc.Create(ctx, dup)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
