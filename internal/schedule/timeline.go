package schedule

import (
	"sort"
	"time"

	"github.com/danvoss/stride/internal/domain"
)

// Timeline is the ordered phase list of one work package. All cascade logic
// runs against a Timeline built from the full phase set, loaded once per
// operation, so position comparisons never leak into the date arithmetic.
type Timeline struct {
	phases []*domain.Phase
}

// NewTimeline sorts phases by position and validates the ordering invariant:
// positions must be unique within a work package. Gaps between positions are
// tolerated, duplicates are not.
func NewTimeline(phases []*domain.Phase) (*Timeline, error) {
	sorted := make([]*domain.Phase, len(phases))
	copy(sorted, phases)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Position == sorted[i-1].Position {
			return nil, domain.Validationf("duplicate phase position %d in work package", sorted[i].Position)
		}
	}
	return &Timeline{phases: sorted}, nil
}

// Phases returns the phases in position order.
func (t *Timeline) Phases() []*domain.Phase {
	return t.phases
}

// Len returns the number of phases on the timeline.
func (t *Timeline) Len() int {
	return len(t.phases)
}

// IndexOf returns the index of the phase with the given ID, or -1.
func (t *Timeline) IndexOf(phaseID string) int {
	for i, p := range t.phases {
		if p.ID == phaseID {
			return i
		}
	}
	return -1
}

// Reflow walks every phase strictly after fromIdx in position order, placing
// each at previous end + 1 day with its own duration preserved. Phases whose
// predecessor has no estimated end are left untouched (not yet schedulable).
// Returns the phases whose dates changed.
func (t *Timeline) Reflow(fromIdx int) []*domain.Phase {
	var changed []*domain.Phase
	for i := fromIdx + 1; i < len(t.phases); i++ {
		prev := t.phases[i-1]
		if prev.EstimatedEndDate == nil {
			continue
		}
		p := t.phases[i]
		start := addDays(*prev.EstimatedEndDate, 1)
		end := addDays(start, p.PhaseTotalDuration)
		if datesEqual(p.EstimatedStartDate, start) && datesEqual(p.EstimatedEndDate, end) {
			continue
		}
		p.EstimatedStartDate = &start
		p.EstimatedEndDate = &end
		changed = append(changed, p)
	}
	return changed
}

// AnchorFirst places the first phase at the work package's effective start
// date and reflows everything after it. Returns the phases whose dates
// changed. A nil anchor leaves the timeline unschedulable.
func (t *Timeline) AnchorFirst(effectiveStart *time.Time) []*domain.Phase {
	if len(t.phases) == 0 || effectiveStart == nil {
		return nil
	}
	first := t.phases[0]
	start := dateOnly(*effectiveStart)
	end := addDays(start, first.PhaseTotalDuration)

	var changed []*domain.Phase
	if !datesEqual(first.EstimatedStartDate, start) || !datesEqual(first.EstimatedEndDate, end) {
		first.EstimatedStartDate = &start
		first.EstimatedEndDate = &end
		changed = append(changed, first)
	}
	changed = append(changed, t.Reflow(0)...)
	return changed
}

// addDays performs plain calendar-day addition. Duration days are calendar
// days here despite the "business day" naming of the 8-hour unit; no weekend
// or holiday skipping is performed.
func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// daysBetween returns the whole-day difference b - a.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

// dateOnly truncates a timestamp to a UTC calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func datesEqual(a *time.Time, b time.Time) bool {
	return a != nil && a.Equal(b)
}
