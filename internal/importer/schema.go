package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for work package import.
type ImportSchema struct {
	WorkPackage WorkPackageImport `json:"work_package"`
	Defaults    *DefaultsImport   `json:"defaults,omitempty"`
	Phases      []PhaseImport     `json:"phases"`
}

// WorkPackageImport defines the package-level fields in the import file.
type WorkPackageImport struct {
	ShortID            string  `json:"short_id"`
	Name               string  `json:"name"`
	ContactID          *string `json:"contact_id,omitempty"`
	EffectiveStartDate *string `json:"effective_start_date,omitempty"`
}

// DefaultsImport defines package-wide defaults that cascade to items.
type DefaultsImport struct {
	Quantity           *int     `json:"quantity,omitempty"`
	EstimatedHoursEach *float64 `json:"estimated_hours_each,omitempty"`
}

// PhaseImport defines a phase in the import file. Position is 1-based and
// defines the delivery order; omitted positions are filled from file order.
type PhaseImport struct {
	Name     string       `json:"name"`
	Position *int         `json:"position,omitempty"`
	Items    []ItemImport `json:"items,omitempty"`
}

// ItemImport defines a unit of deliverable work inside a phase.
type ItemImport struct {
	Name               string   `json:"name"`
	Quantity           *int     `json:"quantity,omitempty"`
	EstimatedHoursEach *float64 `json:"estimated_hours_each,omitempty"`
}

// LoadImportSchema reads and parses an import file from disk.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
