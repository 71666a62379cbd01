package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/danvoss/stride/internal/domain"
)

var testShortIDCounter atomic.Int64

// Contact options
type ContactOption func(*domain.Contact)

func WithStage(s domain.ContactStage) ContactOption {
	return func(c *domain.Contact) {
		c.Stage = s
	}
}

func WithCompany(company string) ContactOption {
	return func(c *domain.Contact) {
		c.Company = company
	}
}

func WithContactNotes(notes string) ContactOption {
	return func(c *domain.Contact) {
		c.Notes = notes
	}
}

func NewTestContact(name string, opts ...ContactOption) *domain.Contact {
	now := time.Now().UTC()
	c := &domain.Contact{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Stage:     domain.StageLead,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WorkPackage options
type WorkPackageOption func(*domain.WorkPackage)

func WithEffectiveStartDate(d time.Time) WorkPackageOption {
	return func(w *domain.WorkPackage) {
		w.EffectiveStartDate = &d
	}
}

func WithWorkPackageStatus(s domain.WorkPackageStatus) WorkPackageOption {
	return func(w *domain.WorkPackage) {
		w.Status = s
	}
}

func WithContactID(id string) WorkPackageOption {
	return func(w *domain.WorkPackage) {
		w.ContactID = &id
	}
}

func WithShortID(id string) WorkPackageOption {
	return func(w *domain.WorkPackage) {
		w.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestWorkPackage(name string, opts ...WorkPackageOption) *domain.WorkPackage {
	now := time.Now().UTC()
	w := &domain.WorkPackage{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Status:    domain.WorkPackageActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPosition(pos int) PhaseOption {
	return func(p *domain.Phase) {
		p.Position = pos
	}
}

func WithDuration(days int) PhaseOption {
	return func(p *domain.Phase) {
		p.PhaseTotalDuration = days
	}
}

func WithEstimatedHours(h float64) PhaseOption {
	return func(p *domain.Phase) {
		p.TotalEstimatedHours = h
	}
}

func WithEstimatedDates(start, end time.Time) PhaseOption {
	return func(p *domain.Phase) {
		p.EstimatedStartDate = &start
		p.EstimatedEndDate = &end
	}
}

func WithActualStartDate(d time.Time) PhaseOption {
	return func(p *domain.Phase) {
		p.ActualStartDate = &d
	}
}

func WithActualEndDate(d time.Time) PhaseOption {
	return func(p *domain.Phase) {
		p.ActualEndDate = &d
	}
}

func WithPhaseStatus(s domain.PhaseStatus) PhaseOption {
	return func(p *domain.Phase) {
		p.Status = s
	}
}

func NewTestPhase(workPackageID, name string, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	p := &domain.Phase{
		ID:            uuid.New().String(),
		WorkPackageID: workPackageID,
		Name:          name,
		Position:      1,
		Status:        domain.PhaseNotStarted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Item options
type ItemOption func(*domain.Item)

func WithQuantity(q int) ItemOption {
	return func(i *domain.Item) {
		i.Quantity = q
	}
}

func WithHoursEach(h float64) ItemOption {
	return func(i *domain.Item) {
		i.EstimatedHoursEach = h
	}
}

func NewTestItem(phaseID, name string, opts ...ItemOption) *domain.Item {
	now := time.Now().UTC()
	i := &domain.Item{
		ID:                 uuid.New().String(),
		PhaseID:            phaseID,
		Name:               name,
		Quantity:           1,
		EstimatedHoursEach: 8,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Date returns a UTC midnight time for the given calendar day. Keeps test
// timelines readable.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
