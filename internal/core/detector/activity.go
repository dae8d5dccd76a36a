package detector

import (
	"slices"
	"time"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

// GapResult summarizes the day gaps between consecutive commits
type GapResult struct {
	Gaps               []int
	MaxGap             int
	AverageGap         int
	SuspiciousPatterns bool
}

// ActivityGaps measures gaps between commits ordered newest first
// same day commits produce a zero gap which is not counted
// a mostly weekly rhythm over more than five gaps is flagged as suspicious
func ActivityGaps(commits []time.Time) GapResult {
	if len(commits) < 2 {
		return GapResult{Gaps: []int{}}
	}

	sorted := slices.Clone(commits)
	slices.SortStableFunc(sorted, func(a, b time.Time) int { return b.Compare(a) })

	gaps := make([]int, 0, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		if g := metrics.DaysBetween(sorted[i], sorted[i+1]); g > 0 {
			gaps = append(gaps, g)
		}
	}

	out := GapResult{Gaps: gaps}
	if len(gaps) == 0 {
		return out
	}

	sum := 0
	weekly := 0
	for _, g := range gaps {
		sum += g
		out.MaxGap = max(out.MaxGap, g)
		if g == 7 {
			weekly++
		}
	}
	out.AverageGap = metrics.RoundInt(float64(sum) / float64(len(gaps)))

	if len(gaps) > 5 {
		out.SuspiciousPatterns = float64(weekly) > float64(len(gaps))*0.5
	}
	return out
}
