package domain

import "time"

// Item is a unit of deliverable work inside a phase. The scheduling core only
// reads Quantity * EstimatedHoursEach summed per phase.
type Item struct {
	ID                 string
	PhaseID            string
	Name               string
	Quantity           int
	EstimatedHoursEach float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Hours returns the total estimated effort for this item.
func (i *Item) Hours() float64 {
	return float64(i.Quantity) * i.EstimatedHoursEach
}
