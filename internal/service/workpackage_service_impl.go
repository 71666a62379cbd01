package service

import (
	"context"
	"time"

	"github.com/danvoss/stride/internal/db"
	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/repository"
	"github.com/danvoss/stride/internal/schedule"
	"github.com/google/uuid"
)

type workPackageService struct {
	packages repository.WorkPackageRepo
	uow      db.UnitOfWork
}

func NewWorkPackageService(packages repository.WorkPackageRepo, uow db.UnitOfWork) WorkPackageService {
	return &workPackageService{packages: packages, uow: uow}
}

func (s *workPackageService) Create(ctx context.Context, w *domain.WorkPackage) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	if w.Status == "" {
		w.Status = domain.WorkPackageActive
	}
	return s.packages.Create(ctx, w)
}

func (s *workPackageService) GetByID(ctx context.Context, id string) (*domain.WorkPackage, error) {
	return s.packages.GetByID(ctx, id)
}

func (s *workPackageService) List(ctx context.Context, includeArchived bool) ([]*domain.WorkPackage, error) {
	return s.packages.List(ctx, includeArchived)
}

func (s *workPackageService) Update(ctx context.Context, w *domain.WorkPackage) error {
	w.UpdatedAt = time.Now().UTC()
	return s.packages.Update(ctx, w)
}

// SetEffectiveStartDate writes the new anchor date and cascades the estimated
// timeline: phase 1 sources its start from the anchor, every later phase
// follows at previous end + 1 day. The package row and every shifted phase
// commit together.
func (s *workPackageService) SetEffectiveStartDate(ctx context.Context, id string, date time.Time) ([]*domain.Phase, error) {
	var result []*domain.Phase

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPackages := repository.NewSQLiteWorkPackageRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		pkg, err := txPackages.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		anchor := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		pkg.EffectiveStartDate = &anchor
		pkg.UpdatedAt = now
		if err := txPackages.Update(ctx, pkg); err != nil {
			return err
		}

		all, err := txPhases.ListByWorkPackage(ctx, id)
		if err != nil {
			return err
		}
		timeline, err := schedule.NewTimeline(all)
		if err != nil {
			return err
		}

		changed := timeline.AnchorFirst(pkg.EffectiveStartDate)
		for _, p := range changed {
			p.UpdatedAt = now
		}
		result = timeline.Phases()
		return txPhases.BatchUpdate(ctx, changed)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *workPackageService) Archive(ctx context.Context, id string) error {
	if _, err := s.packages.GetByID(ctx, id); err != nil {
		return err
	}
	return s.packages.Archive(ctx, id)
}

func (s *workPackageService) Delete(ctx context.Context, id string) error {
	if _, err := s.packages.GetByID(ctx, id); err != nil {
		return err
	}
	return s.packages.Delete(ctx, id)
}
