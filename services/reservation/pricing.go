package reservation

import (
	"math"
	"time"
)

// ComputeDuration returns the length of the booking window in hours, rounded
// to two decimal places. Duration is computed once at booking time and never
// re-derived from the cost.
func ComputeDuration(start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	return math.Round(hours*100) / 100
}

// ComputeCost returns the total cost for a booking: the spot's hourly rate at
// booking time multiplied by the pre-rounded duration.
func ComputeCost(rate, duration float64) float64 {
	return rate * duration
}
