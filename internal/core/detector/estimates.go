package detector

import (
	"strings"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

// Risk tiers for complexity estimates
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// ComplexityResult is a rough cyclomatic complexity estimate
type ComplexityResult struct {
	Estimated int
	Risk      Risk
}

// Complexity estimates cyclomatic complexity from a file count proxy
func Complexity(fileCount float64) ComplexityResult {
	est := max(1, metrics.RoundInt(fileCount*0.8))

	risk := RiskLow
	switch {
	case est > 15:
		risk = RiskHigh
	case est > 8:
		risk = RiskMedium
	}
	return ComplexityResult{Estimated: est, Risk: risk}
}

// Duplication estimates the share of repeated tokens across contents as 0..100
// only tokens longer than five bytes count as repeats while the ratio is taken over all tokens
func Duplication(contents []string) int {
	if len(contents) < 2 {
		return 0
	}

	counts := map[string]int{}
	total := 0
	for _, c := range contents {
		for _, tok := range strings.Fields(c) {
			total++
			if len(tok) > 5 {
				counts[tok]++
			}
		}
	}
	if total == 0 {
		return 0
	}

	dup := 0
	for _, n := range counts {
		if n > 1 {
			dup += n - 1
		}
	}
	return min(100, metrics.RoundInt(float64(dup)/float64(total)*100))
}
