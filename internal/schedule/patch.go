package schedule

import (
	"time"

	"github.com/danvoss/stride/internal/domain"
)

// DatePatch is a partial edit to one phase's dates. Nil fields are absent.
// Actual-date fields are terminal state: they are written through without
// recomputation and never trigger a cascade.
type DatePatch struct {
	EstimatedStartDate *time.Time
	EstimatedEndDate   *time.Time
	PhaseTotalDuration *int
	ActualStartDate    *time.Time
	ActualEndDate      *time.Time
}

// TouchesEstimates reports whether the patch contains any field that feeds
// the estimated timeline and may require a cascade.
func (p DatePatch) TouchesEstimates() bool {
	return p.EstimatedStartDate != nil || p.EstimatedEndDate != nil || p.PhaseTotalDuration != nil
}

// TouchesActuals reports whether the patch writes to the actual timeline.
func (p DatePatch) TouchesActuals() bool {
	return p.ActualStartDate != nil || p.ActualEndDate != nil
}

// ApplyActuals writes the patch's actual-date fields onto the phase.
func (p DatePatch) ApplyActuals(phase *domain.Phase) {
	if p.ActualStartDate != nil {
		t := *p.ActualStartDate
		phase.ActualStartDate = &t
	}
	if p.ActualEndDate != nil {
		t := *p.ActualEndDate
		phase.ActualEndDate = &t
	}
}

// ResolveEstimates applies the estimated-timeline fields of the patch to the
// phase in memory and reports whether the phase's estimated end date changed
// (the delta that decides whether a forward reflow is needed).
//
// Resolution order: an explicit duration wins and recomputes the end date; an
// explicit end date wins next and back-derives the duration; a bare start
// date shifts the end date by the same delta, preserving duration.
func (p DatePatch) ResolveEstimates(phase *domain.Phase) (endChanged bool, err error) {
	if !p.TouchesEstimates() {
		return false, nil
	}

	oldEnd := phase.EstimatedEndDate

	start := phase.EstimatedStartDate
	if p.EstimatedStartDate != nil {
		s := dateOnly(*p.EstimatedStartDate)
		start = &s
	}

	switch {
	case p.PhaseTotalDuration != nil:
		if *p.PhaseTotalDuration < 0 {
			return false, domain.Validationf("phase duration must be >= 0, got %d", *p.PhaseTotalDuration)
		}
		phase.PhaseTotalDuration = *p.PhaseTotalDuration
		phase.EstimatedStartDate = start
		if start != nil {
			end := addDays(*start, phase.PhaseTotalDuration)
			phase.EstimatedEndDate = &end
		}

	case p.EstimatedEndDate != nil:
		end := dateOnly(*p.EstimatedEndDate)
		if start != nil {
			if end.Before(*start) {
				return false, domain.Validationf("estimated end date %s is before start date %s",
					end.Format("2006-01-02"), start.Format("2006-01-02"))
			}
			phase.PhaseTotalDuration = daysBetween(*start, end)
		}
		phase.EstimatedStartDate = start
		phase.EstimatedEndDate = &end

	case p.EstimatedStartDate != nil:
		if phase.EstimatedStartDate != nil && phase.EstimatedEndDate != nil {
			// Shift the end by the same delta as the start, preserving duration.
			delta := daysBetween(*phase.EstimatedStartDate, *start)
			end := addDays(*phase.EstimatedEndDate, delta)
			phase.EstimatedEndDate = &end
		} else {
			end := addDays(*start, phase.PhaseTotalDuration)
			phase.EstimatedEndDate = &end
		}
		phase.EstimatedStartDate = start
	}

	return !sameDate(oldEnd, phase.EstimatedEndDate), nil
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
