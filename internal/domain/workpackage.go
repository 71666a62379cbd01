package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{2,6}[0-9]{2,4}$`)

// WorkPackage is a delivery engagement for a client: an ordered sequence of
// phases whose estimated timeline is anchored at EffectiveStartDate.
type WorkPackage struct {
	ID                 string
	ShortID            string
	Name               string
	ContactID          *string
	EffectiveStartDate *time.Time
	Status             WorkPackageStatus
	ArchivedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 2-6 uppercase letters followed by 2-4 digits (e.g. ACME01).
func (w *WorkPackage) ValidateShortID() error {
	if w.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(w.ShortID) {
		return fmt.Errorf("short ID %q must be 2-6 uppercase letters followed by 2-4 digits (e.g. ACME01)", w.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (w *WorkPackage) DisplayID() string {
	if w.ShortID != "" {
		return w.ShortID
	}
	if len(w.ID) >= 8 {
		return w.ID[:8]
	}
	return w.ID
}
