// Package detector holds the stateless heuristics that score repositories and repository sets
// detectors never perform I/O and take the reference time as an argument
package detector

import (
	"fmt"
	"time"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

// AbandonmentResult scores how long a repository has been left alone relative to its age
type AbandonmentResult struct {
	IsAbandoned  bool
	Score        int // 0..100
	DaysInactive int
	Reason       string
}

// Abandonment compares days since the last commit with the repository age at now
// a repo with no observed commit is measured from its creation time
func Abandonment(repo metrics.Repository, now time.Time) AbandonmentResult {
	daysInactive := metrics.DaysBetween(repo.LastActivity(), now)
	totalDays := metrics.DaysBetween(repo.CreatedAt, now)

	var ratio float64
	if totalDays > 0 {
		ratio = float64(daysInactive) / float64(totalDays)
	}

	return AbandonmentResult{
		IsAbandoned:  ratio > 0.7,
		Score:        min(100, metrics.RoundInt(ratio*120)),
		DaysInactive: daysInactive,
		Reason:       inactivityReason(daysInactive),
	}
}

// inactivityReason picks the coarsest unit that applies
func inactivityReason(days int) string {
	switch {
	case days > 730:
		return fmt.Sprintf("No commits for %d years", days/365)
	case days > 180:
		return fmt.Sprintf("No commits for %d months", days/30)
	case days > 30:
		return fmt.Sprintf("No commits for %d days", days)
	default:
		return ""
	}
}
