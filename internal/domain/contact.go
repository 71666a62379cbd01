package domain

import "time"

// Contact is a business-development contact moving through the pipeline.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Company   string
	Stage     ContactStage
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
