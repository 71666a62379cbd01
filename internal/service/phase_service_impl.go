package service

import (
	"context"
	"fmt"
	"time"

	"github.com/danvoss/stride/internal/db"
	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/repository"
	"github.com/danvoss/stride/internal/schedule"
)

type phaseService struct {
	phases   repository.PhaseRepo
	items    repository.ItemRepo
	packages repository.WorkPackageRepo
	uow      db.UnitOfWork
}

func NewPhaseService(
	phases repository.PhaseRepo,
	items repository.ItemRepo,
	packages repository.WorkPackageRepo,
	uow db.UnitOfWork,
) PhaseService {
	return &phaseService{phases: phases, items: items, packages: packages, uow: uow}
}

func (s *phaseService) Create(ctx context.Context, p *domain.Phase) error {
	if p.Name == "" {
		return domain.Validationf("phase name is required")
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPackages := repository.NewSQLiteWorkPackageRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		if _, err := txPackages.GetByID(ctx, p.WorkPackageID); err != nil {
			return err
		}

		all, err := txPhases.ListByWorkPackage(ctx, p.WorkPackageID)
		if err != nil {
			return err
		}
		if p.Position == 0 {
			max := 0
			for _, existing := range all {
				if existing.Position > max {
					max = existing.Position
				}
			}
			p.Position = max + 1
		} else {
			for _, existing := range all {
				if existing.Position == p.Position {
					return domain.Validationf("position %d is already taken in this work package", p.Position)
				}
			}
		}

		now := time.Now().UTC()
		p.CreatedAt = now
		p.UpdatedAt = now
		return txPhases.Create(ctx, p)
	})
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByWorkPackage(ctx context.Context, workPackageID string) ([]*domain.Phase, error) {
	return s.phases.ListByWorkPackage(ctx, workPackageID)
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	if _, err := s.phases.GetByID(ctx, id); err != nil {
		return err
	}
	return s.phases.Delete(ctx, id)
}

func (s *phaseService) ApplyStatus(ctx context.Context, phaseID string, status domain.PhaseStatus) (*domain.Phase, error) {
	p, err := s.phases.GetByID(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := p.ApplyStatus(status, now); err != nil {
		return nil, err
	}
	p.UpdatedAt = now

	if err := s.phases.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *phaseService) ApplyDateEdit(ctx context.Context, phaseID string, patch schedule.DatePatch) (*domain.Phase, error) {
	var edited *domain.Phase

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)

		target, err := txPhases.GetByID(ctx, phaseID)
		if err != nil {
			return err
		}

		// Actual-only patches are terminal writes: no recomputation, no
		// cascade, siblings untouched.
		if !patch.TouchesEstimates() {
			patch.ApplyActuals(target)
			target.UpdatedAt = time.Now().UTC()
			edited = target
			return txPhases.Update(ctx, target)
		}

		// Load the full ordered phase set inside the transaction so two
		// concurrent edits to the same work package cannot interleave reads
		// and produce an inconsistent cascade.
		all, err := txPhases.ListByWorkPackage(ctx, target.WorkPackageID)
		if err != nil {
			return err
		}
		timeline, err := schedule.NewTimeline(all)
		if err != nil {
			return err
		}
		idx := timeline.IndexOf(phaseID)
		if idx < 0 {
			return fmt.Errorf("phase: %w", repository.ErrNotFound)
		}

		p := timeline.Phases()[idx]
		patch.ApplyActuals(p)

		endChanged, err := patch.ResolveEstimates(p)
		if err != nil {
			return err
		}

		changed := []*domain.Phase{p}
		if endChanged {
			changed = append(changed, timeline.Reflow(idx)...)
		}

		now := time.Now().UTC()
		for _, c := range changed {
			c.UpdatedAt = now
		}
		edited = p
		return txPhases.BatchUpdate(ctx, changed)
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

func (s *phaseService) RecomputePhase(ctx context.Context, phaseID string, hoursOverride *float64) (*domain.Phase, error) {
	var recomputed *domain.Phase

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txItems := repository.NewSQLiteItemRepo(tx)

		p, err := recomputeOne(ctx, txPhases, txItems, phaseID, hoursOverride)
		if err != nil {
			return err
		}
		recomputed = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recomputed, nil
}

func (s *phaseService) RecomputeAll(ctx context.Context, workPackageID string) ([]*domain.Phase, error) {
	var recomputed []*domain.Phase

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPackages := repository.NewSQLiteWorkPackageRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txItems := repository.NewSQLiteItemRepo(tx)

		if _, err := txPackages.GetByID(ctx, workPackageID); err != nil {
			return err
		}

		all, err := txPhases.ListByWorkPackage(ctx, workPackageID)
		if err != nil {
			return err
		}

		// Each phase recomputes independently; there is no cross-phase
		// dependency at the duration layer.
		for _, p := range all {
			updated, err := recomputeOne(ctx, txPhases, txItems, p.ID, nil)
			if err != nil {
				return err
			}
			recomputed = append(recomputed, updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recomputed, nil
}

func (s *phaseService) Reschedule(ctx context.Context, workPackageID string) ([]*domain.Phase, error) {
	var result []*domain.Phase

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPackages := repository.NewSQLiteWorkPackageRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txItems := repository.NewSQLiteItemRepo(tx)

		pkg, err := txPackages.GetByID(ctx, workPackageID)
		if err != nil {
			return err
		}

		all, err := txPhases.ListByWorkPackage(ctx, workPackageID)
		if err != nil {
			return err
		}
		timeline, err := schedule.NewTimeline(all)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, p := range timeline.Phases() {
			hours, err := txItems.SumHoursByPhase(ctx, p.ID)
			if err != nil {
				return err
			}
			p.TotalEstimatedHours = hours
			p.PhaseTotalDuration = schedule.DurationFromHours(hours)
		}

		// A nil effective start date is not an error: the package is simply
		// not yet schedulable and estimated dates stay null.
		timeline.AnchorFirst(pkg.EffectiveStartDate)

		for _, p := range timeline.Phases() {
			p.UpdatedAt = now
		}
		result = timeline.Phases()
		return txPhases.BatchUpdate(ctx, timeline.Phases())
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// recomputeOne re-derives one phase's aggregate hours and duration. Estimated
// and actual dates are left untouched.
func recomputeOne(
	ctx context.Context,
	phases repository.PhaseRepo,
	items repository.ItemRepo,
	phaseID string,
	hoursOverride *float64,
) (*domain.Phase, error) {
	p, err := phases.GetByID(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	var hours float64
	if hoursOverride != nil {
		hours = *hoursOverride
	} else {
		hours, err = items.SumHoursByPhase(ctx, p.ID)
		if err != nil {
			return nil, err
		}
	}

	p.TotalEstimatedHours = hours
	p.PhaseTotalDuration = schedule.DurationFromHours(hours)
	p.UpdatedAt = time.Now().UTC()

	if err := phases.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
