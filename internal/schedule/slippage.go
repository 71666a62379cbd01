package schedule

import (
	"time"

	"github.com/danvoss/stride/internal/domain"
)

// Health grades a work package's delivery against its estimated timeline at
// the given day. The actual timeline never feeds back into the estimated one;
// this comparison is read-only.
//
//   - behind: some unfinished phase's estimated end has already passed
//   - at_risk: an in-progress phase is inside its final two days
//   - on_track: everything else, including not-yet-schedulable packages
func Health(phases []*domain.Phase, today time.Time) domain.ScheduleHealth {
	day := dateOnly(today)
	health := domain.HealthOnTrack

	for _, p := range phases {
		if p.Status == domain.PhaseCompleted || p.EstimatedEndDate == nil {
			continue
		}
		if p.EstimatedEndDate.Before(day) {
			return domain.HealthBehind
		}
		if p.Status == domain.PhaseInProgress && !p.EstimatedEndDate.After(addDays(day, 2)) {
			health = domain.HealthAtRisk
		}
	}
	return health
}
