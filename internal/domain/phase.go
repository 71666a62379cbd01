package domain

import "time"

// Phase is a named stage of a work package. Position defines the chain order
// within the package. The estimated timeline (EstimatedStartDate/EndDate) is
// derived from durations and cascaded across phases; the actual timeline is
// set only by status transitions or explicit manual writes and never cascades.
type Phase struct {
	ID            string
	WorkPackageID string
	Name          string
	Position      int

	// Derived from items; duration in whole days.
	TotalEstimatedHours float64
	PhaseTotalDuration  int

	EstimatedStartDate *time.Time
	EstimatedEndDate   *time.Time
	ActualStartDate    *time.Time
	ActualEndDate      *time.Time

	Status    PhaseStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyStatus transitions the phase to the given status, stamping the
// corresponding actual date with now when it is still unset. Transitions are
// accepted in any order; only entering in_progress or completed has a side
// effect. Estimated dates are never touched here.
func (p *Phase) ApplyStatus(status PhaseStatus, now time.Time) error {
	if !ValidPhaseStatuses[status] {
		return Validationf("unknown phase status %q", status)
	}
	p.Status = status
	switch status {
	case PhaseInProgress:
		if p.ActualStartDate == nil {
			t := now
			p.ActualStartDate = &t
		}
	case PhaseCompleted:
		if p.ActualEndDate == nil {
			t := now
			p.ActualEndDate = &t
		}
	}
	return nil
}

// Schedulable reports whether the phase carries enough state to place it on
// the estimated timeline.
func (p *Phase) Schedulable() bool {
	return p.EstimatedStartDate != nil
}
