package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danvoss/stride/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func phaseAt(id string, pos, duration int) *domain.Phase {
	return &domain.Phase{ID: id, Position: pos, PhaseTotalDuration: duration}
}

func TestNewTimeline_SortsByPosition(t *testing.T) {
	tl, err := NewTimeline([]*domain.Phase{
		phaseAt("c", 3, 1),
		phaseAt("a", 1, 1),
		phaseAt("b", 2, 1),
	})
	require.NoError(t, err)

	ids := []string{tl.Phases()[0].ID, tl.Phases()[1].ID, tl.Phases()[2].ID}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestNewTimeline_DuplicatePositionsRejected(t *testing.T) {
	_, err := NewTimeline([]*domain.Phase{
		phaseAt("a", 1, 1),
		phaseAt("b", 1, 1),
	})
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestNewTimeline_PositionGapsTolerated(t *testing.T) {
	tl, err := NewTimeline([]*domain.Phase{
		phaseAt("a", 1, 1),
		phaseAt("b", 5, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tl.Len())
}

func TestAnchorFirst_CascadesWholeChain(t *testing.T) {
	// Durations 2, 3, 1: anchored at Sep 1, expect
	// phase1 Sep 1 - Sep 3, phase2 Sep 4 - Sep 7, phase3 Sep 8 - Sep 9.
	tl, err := NewTimeline([]*domain.Phase{
		phaseAt("p1", 1, 2),
		phaseAt("p2", 2, 3),
		phaseAt("p3", 3, 1),
	})
	require.NoError(t, err)

	anchor := day(2026, 9, 1)
	changed := tl.AnchorFirst(&anchor)
	assert.Len(t, changed, 3)

	p1, p2, p3 := tl.Phases()[0], tl.Phases()[1], tl.Phases()[2]
	assert.Equal(t, day(2026, 9, 1), *p1.EstimatedStartDate)
	assert.Equal(t, day(2026, 9, 3), *p1.EstimatedEndDate)
	assert.Equal(t, day(2026, 9, 4), *p2.EstimatedStartDate)
	assert.Equal(t, day(2026, 9, 7), *p2.EstimatedEndDate)
	assert.Equal(t, day(2026, 9, 8), *p3.EstimatedStartDate)
	assert.Equal(t, day(2026, 9, 9), *p3.EstimatedEndDate)
}

func TestAnchorFirst_NilAnchorLeavesDatesNull(t *testing.T) {
	tl, err := NewTimeline([]*domain.Phase{phaseAt("p1", 1, 2)})
	require.NoError(t, err)

	changed := tl.AnchorFirst(nil)
	assert.Empty(t, changed)
	assert.Nil(t, tl.Phases()[0].EstimatedStartDate)
	assert.Nil(t, tl.Phases()[0].EstimatedEndDate)
}

func TestAnchorFirst_TruncatesToCalendarDate(t *testing.T) {
	tl, err := NewTimeline([]*domain.Phase{phaseAt("p1", 1, 1)})
	require.NoError(t, err)

	anchor := time.Date(2026, 9, 1, 15, 30, 45, 0, time.UTC)
	tl.AnchorFirst(&anchor)
	assert.Equal(t, day(2026, 9, 1), *tl.Phases()[0].EstimatedStartDate)
}

func TestAnchorFirst_Idempotent(t *testing.T) {
	tl, err := NewTimeline([]*domain.Phase{
		phaseAt("p1", 1, 2),
		phaseAt("p2", 2, 3),
	})
	require.NoError(t, err)

	anchor := day(2026, 9, 1)
	first := tl.AnchorFirst(&anchor)
	assert.Len(t, first, 2)
	second := tl.AnchorFirst(&anchor)
	assert.Empty(t, second)
}

func TestReflow_ZeroDurationPhaseStillGetsGap(t *testing.T) {
	// A zero-duration phase starts and ends the same day; the successor still
	// begins one day after.
	tl, err := NewTimeline([]*domain.Phase{
		phaseAt("p1", 1, 0),
		phaseAt("p2", 2, 2),
	})
	require.NoError(t, err)

	anchor := day(2026, 9, 1)
	tl.AnchorFirst(&anchor)

	p1, p2 := tl.Phases()[0], tl.Phases()[1]
	assert.Equal(t, day(2026, 9, 1), *p1.EstimatedStartDate)
	assert.Equal(t, day(2026, 9, 1), *p1.EstimatedEndDate)
	assert.Equal(t, day(2026, 9, 2), *p2.EstimatedStartDate)
	assert.Equal(t, day(2026, 9, 4), *p2.EstimatedEndDate)
}

func TestReflow_SkipsWhenPredecessorUnscheduled(t *testing.T) {
	tl, err := NewTimeline([]*domain.Phase{
		phaseAt("p1", 1, 2),
		phaseAt("p2", 2, 3),
	})
	require.NoError(t, err)

	changed := tl.Reflow(0)
	assert.Empty(t, changed)
	assert.Nil(t, tl.Phases()[1].EstimatedStartDate)
}

func TestReflow_OnlyLaterPhasesMove(t *testing.T) {
	tl, err := NewTimeline([]*domain.Phase{
		phaseAt("p1", 1, 2),
		phaseAt("p2", 2, 3),
		phaseAt("p3", 3, 1),
	})
	require.NoError(t, err)
	anchor := day(2026, 9, 1)
	tl.AnchorFirst(&anchor)

	// Edit p2's duration in place and reflow from its index: p1 untouched.
	p1Start := *tl.Phases()[0].EstimatedStartDate
	tl.Phases()[1].PhaseTotalDuration = 5
	end := addDays(*tl.Phases()[1].EstimatedStartDate, 5)
	tl.Phases()[1].EstimatedEndDate = &end

	changed := tl.Reflow(1)
	assert.Len(t, changed, 1)
	assert.Equal(t, "p3", changed[0].ID)
	assert.Equal(t, p1Start, *tl.Phases()[0].EstimatedStartDate)
	assert.Equal(t, day(2026, 9, 10), *tl.Phases()[2].EstimatedStartDate)
}

func TestResolveEstimates_DurationWinsAndRecomputesEnd(t *testing.T) {
	start := day(2026, 9, 1)
	endOld := day(2026, 9, 3)
	p := &domain.Phase{
		ID: "p", Position: 1, PhaseTotalDuration: 2,
		EstimatedStartDate: &start, EstimatedEndDate: &endOld,
	}

	dur := 4
	endNew := day(2026, 9, 10) // conflicting explicit end is ignored when duration set
	patch := DatePatch{PhaseTotalDuration: &dur, EstimatedEndDate: &endNew}

	endChanged, err := patch.ResolveEstimates(p)
	require.NoError(t, err)
	assert.True(t, endChanged)
	assert.Equal(t, 4, p.PhaseTotalDuration)
	assert.Equal(t, day(2026, 9, 5), *p.EstimatedEndDate)
}

func TestResolveEstimates_ExplicitEndBackDerivesDuration(t *testing.T) {
	start := day(2026, 9, 1)
	endOld := day(2026, 9, 3)
	p := &domain.Phase{
		ID: "p", Position: 1, PhaseTotalDuration: 2,
		EstimatedStartDate: &start, EstimatedEndDate: &endOld,
	}

	endNew := day(2026, 9, 8)
	patch := DatePatch{EstimatedEndDate: &endNew}

	endChanged, err := patch.ResolveEstimates(p)
	require.NoError(t, err)
	assert.True(t, endChanged)
	assert.Equal(t, 7, p.PhaseTotalDuration)
	assert.Equal(t, day(2026, 9, 8), *p.EstimatedEndDate)
}

func TestResolveEstimates_EndBeforeStartRejected(t *testing.T) {
	start := day(2026, 9, 10)
	p := &domain.Phase{ID: "p", Position: 1, EstimatedStartDate: &start}

	endNew := day(2026, 9, 5)
	patch := DatePatch{EstimatedEndDate: &endNew}

	_, err := patch.ResolveEstimates(p)
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	// Phase left with its original duration untouched.
	assert.Equal(t, 0, p.PhaseTotalDuration)
}

func TestResolveEstimates_NegativeDurationRejected(t *testing.T) {
	p := &domain.Phase{ID: "p", Position: 1}
	dur := -1
	patch := DatePatch{PhaseTotalDuration: &dur}

	_, err := patch.ResolveEstimates(p)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestResolveEstimates_BareStartShiftPreservesDuration(t *testing.T) {
	start := day(2026, 9, 1)
	end := day(2026, 9, 4)
	p := &domain.Phase{
		ID: "p", Position: 1, PhaseTotalDuration: 3,
		EstimatedStartDate: &start, EstimatedEndDate: &end,
	}

	newStart := day(2026, 9, 6) // +5 days
	patch := DatePatch{EstimatedStartDate: &newStart}

	endChanged, err := patch.ResolveEstimates(p)
	require.NoError(t, err)
	assert.True(t, endChanged)
	assert.Equal(t, day(2026, 9, 6), *p.EstimatedStartDate)
	assert.Equal(t, day(2026, 9, 9), *p.EstimatedEndDate)
	assert.Equal(t, 3, p.PhaseTotalDuration)
}

func TestResolveEstimates_StartOnUnscheduledPhaseUsesDuration(t *testing.T) {
	p := &domain.Phase{ID: "p", Position: 1, PhaseTotalDuration: 2}

	newStart := day(2026, 9, 1)
	patch := DatePatch{EstimatedStartDate: &newStart}

	endChanged, err := patch.ResolveEstimates(p)
	require.NoError(t, err)
	assert.True(t, endChanged)
	assert.Equal(t, day(2026, 9, 3), *p.EstimatedEndDate)
}

func TestResolveEstimates_NoEndChangeWhenSameDate(t *testing.T) {
	start := day(2026, 9, 1)
	end := day(2026, 9, 3)
	p := &domain.Phase{
		ID: "p", Position: 1, PhaseTotalDuration: 2,
		EstimatedStartDate: &start, EstimatedEndDate: &end,
	}

	// Duration unchanged: end recomputes to the same date.
	dur := 2
	patch := DatePatch{PhaseTotalDuration: &dur}

	endChanged, err := patch.ResolveEstimates(p)
	require.NoError(t, err)
	assert.False(t, endChanged)
}

func TestDatePatch_TouchClassification(t *testing.T) {
	d := day(2026, 9, 1)
	dur := 3

	assert.True(t, DatePatch{EstimatedStartDate: &d}.TouchesEstimates())
	assert.True(t, DatePatch{PhaseTotalDuration: &dur}.TouchesEstimates())
	assert.False(t, DatePatch{ActualStartDate: &d}.TouchesEstimates())
	assert.True(t, DatePatch{ActualEndDate: &d}.TouchesActuals())
	assert.False(t, DatePatch{EstimatedEndDate: &d}.TouchesActuals())
}

func TestApplyActuals_WritesThrough(t *testing.T) {
	p := &domain.Phase{ID: "p", Position: 1}
	as := day(2026, 9, 2)
	ae := day(2026, 9, 6)

	DatePatch{ActualStartDate: &as, ActualEndDate: &ae}.ApplyActuals(p)
	assert.Equal(t, as, *p.ActualStartDate)
	assert.Equal(t, ae, *p.ActualEndDate)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, daysBetween(day(2026, 9, 1), day(2026, 9, 1)))
	assert.Equal(t, 7, daysBetween(day(2026, 9, 1), day(2026, 9, 8)))
	assert.Equal(t, -3, daysBetween(day(2026, 9, 4), day(2026, 9, 1)))
	// Crosses a month boundary.
	assert.Equal(t, 2, daysBetween(day(2026, 8, 30), day(2026, 9, 1)))
}
