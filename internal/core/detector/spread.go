package detector

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

// ForkResult describes how much of a repository set is forked
type ForkResult struct {
	ForkRatio   float64
	IsForkHeavy bool
	Explanation string
}

// ForkHeavy reports the fork ratio of repos and a short explanation
func ForkHeavy(repos []metrics.Repository) ForkResult {
	total := len(repos)
	forks := 0
	for _, r := range repos {
		if r.IsFork {
			forks++
		}
	}
	originals := total - forks
	ratio := metrics.Ratio(forks, total)

	var why string
	switch {
	case ratio > 0.8:
		why = fmt.Sprintf("%s%% of repositories are forks", formatPct(metrics.Percentage(float64(forks), float64(total))))
	case ratio > 0.5:
		why = fmt.Sprintf("More forks (%d) than originals (%d)", forks, originals)
	case ratio > 0.3:
		why = fmt.Sprintf("Significant fork activity (%s%%)", formatPct(metrics.Percentage(float64(forks), float64(total))))
	}

	return ForkResult{
		ForkRatio:   ratio,
		IsForkHeavy: ratio > 0.7,
		Explanation: why,
	}
}

// SpreadResult describes how many languages a repository set covers
type SpreadResult struct {
	LanguageCount       int
	PrimaryLanguages    []string
	IsTooSpread         bool
	AvgFilesPerLanguage float64
	Explanation         string
}

// LanguageSpread counts the primary language of each repo
// the top three keep first seen order among equal counts
func LanguageSpread(repos []metrics.Repository) SpreadResult {
	type langCount struct {
		name  string
		count int
	}

	var seen []langCount
	idx := map[string]int{}
	for _, r := range repos {
		if !knownLanguage(r.Language) {
			continue
		}
		if i, ok := idx[r.Language]; ok {
			seen[i].count++
			continue
		}
		idx[r.Language] = len(seen)
		seen = append(seen, langCount{name: r.Language, count: 1})
	}

	ranked := slices.Clone(seen)
	slices.SortStableFunc(ranked, func(a, b langCount) int { return b.count - a.count })

	primary := make([]string, 0, 3)
	for _, lc := range ranked[:min(3, len(ranked))] {
		primary = append(primary, lc.name)
	}

	count := len(seen)
	var avg float64
	if len(repos) > 0 {
		avg = float64(len(repos)) / float64(max(1, count))
	}

	var why string
	switch {
	case count > 10:
		why = fmt.Sprintf("Dabbling in %d languages", count)
	case count > 5:
		why = fmt.Sprintf("Working across %d different languages", count)
	}

	return SpreadResult{
		LanguageCount:       count,
		PrimaryLanguages:    primary,
		IsTooSpread:         count > 8 && avg < 2,
		AvgFilesPerLanguage: avg,
		Explanation:         why,
	}
}

// knownLanguage filters out empty values and the literal "null" some upstream payloads carry
func knownLanguage(lang string) bool {
	return lang != "" && lang != "null"
}

// formatPct prints a percentage without trailing zeros (90 not 90.00, 33.33 stays)
func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
