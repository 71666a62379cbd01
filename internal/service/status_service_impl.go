package service

import (
	"context"
	"time"

	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/repository"
	"github.com/danvoss/stride/internal/schedule"
)

type statusService struct {
	packages repository.WorkPackageRepo
	phases   repository.PhaseRepo
}

func NewStatusService(packages repository.WorkPackageRepo, phases repository.PhaseRepo) StatusService {
	return &statusService{packages: packages, phases: phases}
}

func (s *statusService) Overview(ctx context.Context, includeArchived bool) ([]WorkPackageOverview, error) {
	packages, err := s.packages.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var views []WorkPackageOverview
	for _, pkg := range packages {
		view, err := s.buildOverview(ctx, pkg, now)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *statusService) WorkPackageStatus(ctx context.Context, workPackageID string) (*WorkPackageOverview, error) {
	pkg, err := s.packages.GetByID(ctx, workPackageID)
	if err != nil {
		return nil, err
	}
	return s.buildOverview(ctx, pkg, time.Now().UTC())
}

func (s *statusService) buildOverview(ctx context.Context, pkg *domain.WorkPackage, now time.Time) (*WorkPackageOverview, error) {
	phases, err := s.phases.ListByWorkPackage(ctx, pkg.ID)
	if err != nil {
		return nil, err
	}

	var totalHours float64
	var totalDays int
	for _, p := range phases {
		totalHours += p.TotalEstimatedHours
		totalDays += p.PhaseTotalDuration
	}

	return &WorkPackageOverview{
		WorkPackage: pkg,
		Phases:      phases,
		Health:      schedule.Health(phases, now),
		TotalHours:  totalHours,
		TotalDays:   totalDays,
	}, nil
}
