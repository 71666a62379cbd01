package service

import (
	"context"
	"time"

	"github.com/danvoss/stride/internal/db"
	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/repository"
	"github.com/google/uuid"
)

// itemService writes items and keeps the owning phase's aggregate hours and
// duration consistent in the same transaction. Estimated dates are not
// touched here; propagating a duration change into the timeline is a
// separate, explicit reschedule.
type itemService struct {
	items  repository.ItemRepo
	phases repository.PhaseRepo
	uow    db.UnitOfWork
}

func NewItemService(items repository.ItemRepo, phases repository.PhaseRepo, uow db.UnitOfWork) ItemService {
	return &itemService{items: items, phases: phases, uow: uow}
}

func (s *itemService) Create(ctx context.Context, i *domain.Item) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Quantity < 0 {
		return domain.Validationf("item quantity must be >= 0, got %d", i.Quantity)
	}
	if i.EstimatedHoursEach < 0 {
		return domain.Validationf("item estimated hours must be >= 0, got %g", i.EstimatedHoursEach)
	}
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		if _, err := txPhases.GetByID(ctx, i.PhaseID); err != nil {
			return err
		}
		if err := txItems.Create(ctx, i); err != nil {
			return err
		}
		_, err := recomputeOne(ctx, txPhases, txItems, i.PhaseID, nil)
		return err
	})
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Item, error) {
	return s.items.ListByPhase(ctx, phaseID)
}

func (s *itemService) Update(ctx context.Context, i *domain.Item) error {
	if i.Quantity < 0 {
		return domain.Validationf("item quantity must be >= 0, got %d", i.Quantity)
	}
	if i.EstimatedHoursEach < 0 {
		return domain.Validationf("item estimated hours must be >= 0, got %g", i.EstimatedHoursEach)
	}
	i.UpdatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		if _, err := txItems.GetByID(ctx, i.ID); err != nil {
			return err
		}
		if err := txItems.Update(ctx, i); err != nil {
			return err
		}
		_, err := recomputeOne(ctx, txPhases, txItems, i.PhaseID, nil)
		return err
	})
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		existing, err := txItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txItems.Delete(ctx, id); err != nil {
			return err
		}
		_, err = recomputeOne(ctx, txPhases, txItems, existing.PhaseID, nil)
		return err
	})
}
