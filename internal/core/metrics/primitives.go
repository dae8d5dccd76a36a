// Package metrics holds the roast data model and the numeric helpers shared by detectors and rules
package metrics

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// DaysBetween returns the absolute number of whole days between a and b
func DaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(d / day)
}

// Percentage returns part/total as a percentage rounded to two decimals
// a zero total yields 0
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return Round(part/total*10000) / 100
}

// Ratio returns part/total or 0 when total is zero
func Ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// Round rounds to the nearest integer with halves going up (-2.5 -> -2, 2.5 -> 3)
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// RoundInt is Round returning an int
func RoundInt(v float64) int { return int(Round(v)) }
