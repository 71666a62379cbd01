package repository

import (
	"context"

	"github.com/danvoss/stride/internal/domain"
)

type ContactRepo interface {
	Create(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
	ListByStage(ctx context.Context, stage domain.ContactStage) ([]*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id string) error
}

type WorkPackageRepo interface {
	Create(ctx context.Context, w *domain.WorkPackage) error
	GetByID(ctx context.Context, id string) (*domain.WorkPackage, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.WorkPackage, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.WorkPackage, error)
	Update(ctx context.Context, w *domain.WorkPackage) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	// ListByWorkPackage returns the full phase set ordered by position.
	ListByWorkPackage(ctx context.Context, workPackageID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	// BatchUpdate writes every phase in order. Callers that need atomicity
	// must construct the repo from a transaction-scoped DBTX.
	BatchUpdate(ctx context.Context, phases []*domain.Phase) error
	Delete(ctx context.Context, id string) error
}

type ItemRepo interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Item, error)
	// SumHoursByPhase returns SUM(quantity * estimated_hours_each) for the phase.
	SumHoursByPhase(ctx context.Context, phaseID string) (float64, error)
	Update(ctx context.Context, i *domain.Item) error
	Delete(ctx context.Context, id string) error
}
