package importer

import (
	"fmt"
	"time"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateWorkPackage(&schema.WorkPackage)...)
	errs = append(errs, validateDefaults(schema.Defaults)...)
	errs = append(errs, validatePhases(schema.Phases)...)

	return errs
}

func validateWorkPackage(w *WorkPackageImport) []error {
	var errs []error

	if w.ShortID == "" {
		errs = append(errs, fmt.Errorf("work_package.short_id is required"))
	}
	if w.Name == "" {
		errs = append(errs, fmt.Errorf("work_package.name is required"))
	}
	if w.EffectiveStartDate != nil {
		if _, err := time.Parse("2006-01-02", *w.EffectiveStartDate); err != nil {
			errs = append(errs, fmt.Errorf("work_package.effective_start_date: invalid date format %q (expected YYYY-MM-DD)", *w.EffectiveStartDate))
		}
	}

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error

	if d.Quantity != nil && *d.Quantity < 0 {
		errs = append(errs, fmt.Errorf("defaults.quantity must be >= 0, got %d", *d.Quantity))
	}
	if d.EstimatedHoursEach != nil && *d.EstimatedHoursEach < 0 {
		errs = append(errs, fmt.Errorf("defaults.estimated_hours_each must be >= 0, got %g", *d.EstimatedHoursEach))
	}

	return errs
}

func validatePhases(phases []PhaseImport) []error {
	var errs []error

	if len(phases) == 0 {
		errs = append(errs, fmt.Errorf("at least one phase is required"))
	}

	seenPositions := make(map[int]bool)
	for i, p := range phases {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("phases[%d].name is required", i))
		}
		if p.Position != nil {
			if *p.Position < 1 {
				errs = append(errs, fmt.Errorf("phases[%d].position must be >= 1, got %d", i, *p.Position))
			} else if seenPositions[*p.Position] {
				errs = append(errs, fmt.Errorf("phases[%d].position %d is duplicated", i, *p.Position))
			}
			seenPositions[*p.Position] = true
		}

		for j, item := range p.Items {
			if item.Name == "" {
				errs = append(errs, fmt.Errorf("phases[%d].items[%d].name is required", i, j))
			}
			if item.Quantity != nil && *item.Quantity < 0 {
				errs = append(errs, fmt.Errorf("phases[%d].items[%d].quantity must be >= 0, got %d", i, j, *item.Quantity))
			}
			if item.EstimatedHoursEach != nil && *item.EstimatedHoursEach < 0 {
				errs = append(errs, fmt.Errorf("phases[%d].items[%d].estimated_hours_each must be >= 0, got %g", i, j, *item.EstimatedHoursEach))
			}
		}
	}

	return errs
}
