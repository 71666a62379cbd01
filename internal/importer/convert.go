package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/danvoss/stride/internal/domain"
	"github.com/google/uuid"
)

// GeneratedWorkPackage holds the domain objects produced from an import
// schema, ready for persistence.
type GeneratedWorkPackage struct {
	WorkPackage *domain.WorkPackage
	Phases      []*domain.Phase
	Items       []*domain.Item
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*GeneratedWorkPackage, error) {
	now := time.Now().UTC()

	var effectiveStart *time.Time
	if schema.WorkPackage.EffectiveStartDate != nil {
		t, err := time.Parse("2006-01-02", *schema.WorkPackage.EffectiveStartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing effective_start_date: %w", err)
		}
		effectiveStart = &t
	}

	pkg := &domain.WorkPackage{
		ID:                 uuid.New().String(),
		ShortID:            strings.ToUpper(schema.WorkPackage.ShortID),
		Name:               schema.WorkPackage.Name,
		ContactID:          schema.WorkPackage.ContactID,
		EffectiveStartDate: effectiveStart,
		Status:             domain.WorkPackageActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	defaultQuantity := 1
	defaultHours := 0.0
	if schema.Defaults != nil {
		defaultQuantity = domain.IntFromPtrWithDefault(1, schema.Defaults.Quantity)
		defaultHours = domain.Float64FromPtrWithDefault(0, schema.Defaults.EstimatedHoursEach)
	}

	phases := make([]*domain.Phase, 0, len(schema.Phases))
	var items []*domain.Item
	nextPosition := 1
	for _, ph := range schema.Phases {
		position := nextPosition
		if ph.Position != nil {
			position = *ph.Position
		}
		if position >= nextPosition {
			nextPosition = position + 1
		}

		phase := &domain.Phase{
			ID:            uuid.New().String(),
			WorkPackageID: pkg.ID,
			Name:          ph.Name,
			Position:      position,
			Status:        domain.PhaseNotStarted,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		phases = append(phases, phase)

		for _, it := range ph.Items {
			items = append(items, &domain.Item{
				ID:                 uuid.New().String(),
				PhaseID:            phase.ID,
				Name:               it.Name,
				Quantity:           domain.IntFromPtrWithDefault(defaultQuantity, it.Quantity),
				EstimatedHoursEach: domain.Float64FromPtrWithDefault(defaultHours, it.EstimatedHoursEach),
				CreatedAt:          now,
				UpdatedAt:          now,
			})
		}
	}

	return &GeneratedWorkPackage{
		WorkPackage: pkg,
		Phases:      phases,
		Items:       items,
	}, nil
}
