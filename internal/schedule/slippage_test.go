package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danvoss/stride/internal/domain"
)

func scheduledPhase(status domain.PhaseStatus, start, end time.Time) *domain.Phase {
	return &domain.Phase{
		Status:             status,
		EstimatedStartDate: &start,
		EstimatedEndDate:   &end,
	}
}

func TestHealth_EmptyAndUnscheduled(t *testing.T) {
	today := day(2026, 9, 1)
	assert.Equal(t, domain.HealthOnTrack, Health(nil, today))
	assert.Equal(t, domain.HealthOnTrack, Health([]*domain.Phase{
		{Status: domain.PhaseNotStarted},
	}, today))
}

func TestHealth_BehindWhenUnfinishedPhaseOverdue(t *testing.T) {
	today := day(2026, 9, 10)
	phases := []*domain.Phase{
		scheduledPhase(domain.PhaseInProgress, day(2026, 9, 1), day(2026, 9, 5)),
	}
	assert.Equal(t, domain.HealthBehind, Health(phases, today))
}

func TestHealth_CompletedOverduePhaseIgnored(t *testing.T) {
	today := day(2026, 9, 10)
	phases := []*domain.Phase{
		scheduledPhase(domain.PhaseCompleted, day(2026, 9, 1), day(2026, 9, 5)),
		scheduledPhase(domain.PhaseNotStarted, day(2026, 9, 11), day(2026, 9, 15)),
	}
	assert.Equal(t, domain.HealthOnTrack, Health(phases, today))
}

func TestHealth_AtRiskInsideFinalTwoDays(t *testing.T) {
	today := day(2026, 9, 10)
	phases := []*domain.Phase{
		scheduledPhase(domain.PhaseInProgress, day(2026, 9, 8), day(2026, 9, 12)),
	}
	assert.Equal(t, domain.HealthAtRisk, Health(phases, today))
}

func TestHealth_OnTrackWithComfortableMargin(t *testing.T) {
	today := day(2026, 9, 10)
	phases := []*domain.Phase{
		scheduledPhase(domain.PhaseInProgress, day(2026, 9, 8), day(2026, 9, 20)),
	}
	assert.Equal(t, domain.HealthOnTrack, Health(phases, today))
}

func TestHealth_BehindDominatesAtRisk(t *testing.T) {
	today := day(2026, 9, 10)
	phases := []*domain.Phase{
		scheduledPhase(domain.PhaseInProgress, day(2026, 9, 8), day(2026, 9, 11)),
		scheduledPhase(domain.PhaseNotStarted, day(2026, 9, 1), day(2026, 9, 5)),
	}
	assert.Equal(t, domain.HealthBehind, Health(phases, today))
}
