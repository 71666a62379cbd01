package service

import (
	"context"
	"fmt"

	"github.com/danvoss/stride/internal/db"
	"github.com/danvoss/stride/internal/importer"
	"github.com/danvoss/stride/internal/repository"
	"github.com/danvoss/stride/internal/schedule"
)

type importService struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

func (s *importService) ImportWorkPackage(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFromSchema(ctx, schema)
}

// ImportFromSchema hydrates a work package in one transaction: package,
// phases, items, then aggregate recompute and timeline anchoring, so an
// imported package comes out fully scheduled (or cleanly unscheduled when no
// effective start date is given).
func (s *importService) ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPackages := repository.NewSQLiteWorkPackageRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txItems := repository.NewSQLiteItemRepo(tx)

		if err := txPackages.Create(ctx, generated.WorkPackage); err != nil {
			return err
		}
		for _, phase := range generated.Phases {
			if err := txPhases.Create(ctx, phase); err != nil {
				return fmt.Errorf("creating phase %q: %w", phase.Name, err)
			}
		}
		for _, item := range generated.Items {
			if err := txItems.Create(ctx, item); err != nil {
				return fmt.Errorf("creating item %q: %w", item.Name, err)
			}
		}

		timeline, err := schedule.NewTimeline(generated.Phases)
		if err != nil {
			return err
		}
		for _, p := range timeline.Phases() {
			hours, err := txItems.SumHoursByPhase(ctx, p.ID)
			if err != nil {
				return err
			}
			p.TotalEstimatedHours = hours
			p.PhaseTotalDuration = schedule.DurationFromHours(hours)
		}
		timeline.AnchorFirst(generated.WorkPackage.EffectiveStartDate)

		return txPhases.BatchUpdate(ctx, timeline.Phases())
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		WorkPackage: generated.WorkPackage,
		PhaseCount:  len(generated.Phases),
		ItemCount:   len(generated.Items),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
