package schedule

import (
	"math"

	"github.com/danvoss/stride/internal/domain"
)

// HoursPerDay is the fixed effort-to-duration ratio: eight effort-hours equal
// one duration-day. Not user-configurable.
const HoursPerDay = 8

// DurationFromHours converts total estimated effort into a whole-day phase
// duration. Zero or negative effort yields a zero-day phase; anything else
// rounds up to the next full day.
func DurationFromHours(hours float64) int {
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours / HoursPerDay))
}

// SumItemHours totals quantity * estimated-hours-each across items.
func SumItemHours(items []*domain.Item) float64 {
	var hours float64
	for _, i := range items {
		hours += i.Hours()
	}
	return hours
}
