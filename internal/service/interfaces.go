package service

import (
	"context"
	"time"

	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/importer"
	"github.com/danvoss/stride/internal/schedule"
)

type ContactService interface {
	Create(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
	ListByStage(ctx context.Context, stage domain.ContactStage) ([]*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id string) error
}

type WorkPackageService interface {
	Create(ctx context.Context, w *domain.WorkPackage) error
	GetByID(ctx context.Context, id string) (*domain.WorkPackage, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.WorkPackage, error)
	Update(ctx context.Context, w *domain.WorkPackage) error
	// SetEffectiveStartDate re-anchors phase 1 at the new date and cascades
	// the estimated timeline across every phase, atomically.
	SetEffectiveStartDate(ctx context.Context, id string, date time.Time) ([]*domain.Phase, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// PhaseService is the scheduling engine's operation surface: the duration
// aggregator (Recompute*) and the timeline cascade engine (ApplyStatus,
// ApplyDateEdit, Reschedule).
type PhaseService interface {
	// Create appends a phase to a work package. Position 0 means "after the
	// last existing phase".
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByWorkPackage(ctx context.Context, workPackageID string) ([]*domain.Phase, error)
	Delete(ctx context.Context, id string) error

	// ApplyStatus transitions a phase's status, stamping the matching actual
	// date when still unset. Never touches estimated dates, never cascades.
	ApplyStatus(ctx context.Context, phaseID string, status domain.PhaseStatus) (*domain.Phase, error)

	// ApplyDateEdit applies a partial date/duration edit to one phase and
	// cascades the estimated timeline forward across later phases. The edited
	// phase and every shifted sibling commit in one atomic batch.
	ApplyDateEdit(ctx context.Context, phaseID string, patch schedule.DatePatch) (*domain.Phase, error)

	// RecomputePhase re-derives a phase's total estimated hours and duration
	// from its items (or the override). Does not touch dates; callers cascade
	// separately via ApplyDateEdit or Reschedule.
	RecomputePhase(ctx context.Context, phaseID string, hoursOverride *float64) (*domain.Phase, error)

	// RecomputeAll recomputes every phase of a work package independently,
	// in position order, in one transaction. Idempotent absent item changes.
	RecomputeAll(ctx context.Context, workPackageID string) ([]*domain.Phase, error)

	// Reschedule recomputes all durations from items, anchors phase 1 at the
	// work package's effective start date, and reflows the whole timeline.
	Reschedule(ctx context.Context, workPackageID string) ([]*domain.Phase, error)
}

type ItemService interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Item, error)
	Update(ctx context.Context, i *domain.Item) error
	Delete(ctx context.Context, id string) error
}

// WorkPackageOverview is a joined view of a work package and its timeline,
// used by the status command.
type WorkPackageOverview struct {
	WorkPackage *domain.WorkPackage
	Phases      []*domain.Phase
	Health      domain.ScheduleHealth
	TotalHours  float64
	TotalDays   int
}

type StatusService interface {
	Overview(ctx context.Context, includeArchived bool) ([]WorkPackageOverview, error)
	WorkPackageStatus(ctx context.Context, workPackageID string) (*WorkPackageOverview, error)
}

// ImportResult holds the outcome of a work package import.
type ImportResult struct {
	WorkPackage *domain.WorkPackage
	PhaseCount  int
	ItemCount   int
}

type ImportService interface {
	ImportWorkPackage(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

// OutreachDraft is generated outreach copy for a contact.
type OutreachDraft struct {
	Subject string
	Body    string
	Model   string
}

type OutreachService interface {
	Draft(ctx context.Context, contactID string, angle string) (*OutreachDraft, error)
}
