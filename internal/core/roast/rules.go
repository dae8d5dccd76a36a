package roast

import (
	"fmt"
	"time"

	"github.com/Vagvedi/gitrekt/internal/core/detector"
	"github.com/Vagvedi/gitrekt/internal/core/metrics"
	str "github.com/Vagvedi/gitrekt/internal/platform/strings"
)

// Rule pairs a cheap trigger with the generator that builds the finding
// Generate may still return nil when a stricter check inside it fails
type Rule struct {
	ID        string
	Condition func(u metrics.User, now time.Time) bool
	Generate  func(u metrics.User, now time.Time) (*Issue, error)
}

// DefaultRules returns the rule table in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		{ID: "abandoned_repos", Condition: abandonedCond, Generate: abandonedGen},
		{ID: "activity_gaps", Condition: gapCond, Generate: gapGen},
		{ID: "fork_heavy", Condition: forkCond, Generate: forkGen},
		{ID: "language_spread", Condition: spreadCond, Generate: spreadGen},
		{ID: "low_engagement", Condition: engagementCond, Generate: engagementGen},
		{ID: "no_documentation", Condition: docsCond, Generate: docsGen},
		{ID: "cyclomatic_complexity", Condition: complexityCond, Generate: complexityGen},
		{ID: "slow_repo", Condition: slowCond, Generate: slowGen},
	}
}

func abandonedCond(u metrics.User, _ time.Time) bool { return u.AbandonmentScore > 0.5 }

func abandonedGen(u metrics.User, now time.Time) (*Issue, error) {
	var (
		count   int
		oldest  metrics.Repository
		maxDays = -1
	)
	for _, r := range u.Repositories {
		res := detector.Abandonment(r, now)
		if !res.IsAbandoned {
			continue
		}
		count++
		if res.DaysInactive > maxDays {
			oldest, maxDays = r, res.DaysInactive
		}
	}
	if count == 0 {
		return nil, nil
	}

	years := maxDays / 365
	months := (maxDays % 365) / 30

	msg := fmt.Sprintf("You maintain %d repositories but ", u.TotalRepositories)
	if count == u.TotalRepositories {
		msg += fmt.Sprintf("haven't touched ANY of them in over %d years", years)
	} else {
		msg += fmt.Sprintf("%d are collecting dust for %dy %dm", count, years, months)
	}

	sev := SeverityWarning
	if maxDays > 730 {
		sev = SeverityCritical
	}

	return &Issue{
		Type:        TypeAbandonedRepo,
		Severity:    sev,
		Title:       "Repository Graveyard",
		Description: msg,
		Repository:  oldest.Name,
		Evidence: Evidence{
			"total_repos":          u.TotalRepositories,
			"abandoned_count":      count,
			"oldest_inactive_repo": oldest.Name,
			"days_inactive":        maxDays,
		},
		Score: min(100, count*15),
	}, nil
}

func gapCond(u metrics.User, _ time.Time) bool { return u.MaxActivityGap > 60 }

func gapGen(u metrics.User, _ time.Time) (*Issue, error) {
	gap := u.MaxActivityGap
	ev := Evidence{
		"max_gap_days": gap,
		"avg_gap_days": u.AverageActivityGap,
	}

	switch {
	case gap > 730:
		return &Issue{
			Type:        TypeActivityGap,
			Severity:    SeverityCritical,
			Title:       "Legendary Ghost Mode",
			Description: fmt.Sprintf("%d year gap between commits. That's not persistence, that's abandonment.", gap/365),
			Evidence:    ev,
			Score:       80,
		}, nil
	case gap > 180:
		return &Issue{
			Type:        TypeActivityGap,
			Severity:    SeverityWarning,
			Title:       "Inconsistent Contributor",
			Description: fmt.Sprintf("%d month gaps between commits. Your repos get periodic bursts, then silence.", gap/30),
			Evidence:    ev,
			Score:       50,
		}, nil
	}
	return nil, nil
}

func forkCond(u metrics.User, _ time.Time) bool { return u.ForkRatio > 0.6 }

func forkGen(u metrics.User, _ time.Time) (*Issue, error) {
	res := detector.ForkHeavy(u.Repositories)
	if !res.IsForkHeavy {
		return nil, nil
	}

	pct := metrics.RoundInt(res.ForkRatio * 100)
	orig := u.TotalOriginal

	var msg string
	if orig == 0 {
		msg = fmt.Sprintf("%d%% of your repos are forks. You're a collector, not a creator.", pct)
	} else {
		msg = fmt.Sprintf("%d%% of your repos are forks. Only %s.", pct, str.Plural(orig, "original project"))
	}

	sev := SeverityWarning
	if res.ForkRatio > 0.85 {
		sev = SeverityCritical
	}

	return &Issue{
		Type:        TypeForkHeavy,
		Severity:    sev,
		Title:       "Master of Copy-Paste",
		Description: msg,
		Evidence: Evidence{
			"fork_ratio":     res.ForkRatio,
			"fork_count":     u.TotalForks,
			"original_count": orig,
			"total_repos":    u.TotalRepositories,
		},
		Score: 60,
	}, nil
}

func spreadCond(u metrics.User, _ time.Time) bool { return u.LanguageCount > 7 }

func spreadGen(u metrics.User, _ time.Time) (*Issue, error) {
	res := detector.LanguageSpread(u.Repositories)
	if !res.IsTooSpread {
		return nil, nil
	}

	sev := SeverityWarning
	if res.LanguageCount > 12 {
		sev = SeverityCritical
	}

	return &Issue{
		Type:     TypeLanguageSpread,
		Severity: sev,
		Title:    "Jack of All Trades",
		Description: fmt.Sprintf(
			"You've spread yourself across %d languages (%.1f projects per language). Pick a lane.",
			res.LanguageCount, res.AvgFilesPerLanguage,
		),
		Evidence: Evidence{
			"language_count":         res.LanguageCount,
			"primary_languages":      res.PrimaryLanguages,
			"avg_files_per_language": res.AvgFilesPerLanguage,
		},
		Score: 50,
	}, nil
}

func engagementCond(u metrics.User, _ time.Time) bool {
	return float64(u.TotalPRs) < float64(u.TotalRepositories)*0.1
}

func engagementGen(u metrics.User, _ time.Time) (*Issue, error) {
	res := detector.Collaboration(u.TotalPRs, u.TotalIssues, u.TotalCommits)
	if res.Level != detector.LevelSolo {
		return nil, nil
	}

	sev := SeverityInfo
	if u.TotalRepositories > 5 && u.TotalPRs == 0 {
		sev = SeverityWarning
	}

	return &Issue{
		Type:        TypeLowEngagement,
		Severity:    sev,
		Title:       "Lone Wolf Developer",
		Description: "No PRs, minimal issues. You code in isolation. Even open-source heroes need communities.",
		Evidence: Evidence{
			"pr_count":                  u.TotalPRs,
			"issue_count":               u.TotalIssues,
			"total_repos":               u.TotalRepositories,
			"collaboration_explanation": res.Explanation,
		},
		Score: 30,
	}, nil
}

func withoutReadme(u metrics.User) []metrics.Repository {
	var out []metrics.Repository
	for _, r := range u.Repositories {
		if !r.ReadmePresent {
			out = append(out, r)
		}
	}
	return out
}

func docsCond(u metrics.User, _ time.Time) bool {
	return float64(len(withoutReadme(u))) > float64(u.TotalRepositories)*0.3
}

func docsGen(u metrics.User, _ time.Time) (*Issue, error) {
	if u.TotalRepositories == 0 {
		return nil, fmt.Errorf("no repositories to measure documentation against")
	}
	missing := withoutReadme(u)
	pct := metrics.RoundInt(float64(len(missing)) / float64(u.TotalRepositories) * 100)

	examples := make([]string, 0, 3)
	for _, r := range missing[:min(3, len(missing))] {
		examples = append(examples, r.Name)
	}

	sev := SeverityWarning
	if pct > 70 {
		sev = SeverityCritical
	}

	return &Issue{
		Type:        TypeNoDocumentation,
		Severity:    sev,
		Title:       "README? Never Heard of Her",
		Description: fmt.Sprintf("%d%% of your repos lack proper documentation. Future you will hate current you.", pct),
		Evidence: Evidence{
			"total_repos":    u.TotalRepositories,
			"without_readme": len(missing),
			"percentage":     pct,
			"examples":       examples,
		},
		Score: 45,
	}, nil
}

func avgComplexity(u metrics.User) float64 {
	if u.TotalRepositories == 0 {
		return 0
	}
	sum := 0
	for _, r := range u.Repositories {
		sum += r.CyclomaticComplexity
	}
	return float64(sum) / float64(u.TotalRepositories)
}

func complexityCond(u metrics.User, _ time.Time) bool { return avgComplexity(u) > 12 }

func complexityGen(u metrics.User, _ time.Time) (*Issue, error) {
	avg := avgComplexity(u)

	var high []string
	for _, r := range u.Repositories {
		if r.CyclomaticComplexity > 15 {
			high = append(high, r.Name)
		}
	}
	if len(high) == 0 {
		return nil, nil
	}
	// the named repo is the first one over the line in listing order, not the worst
	first := high[0]

	sev := SeverityWarning
	if avg > 18 {
		sev = SeverityCritical
	}

	return &Issue{
		Type:        TypeCyclomaticComplexity,
		Severity:    sev,
		Title:       "Spaghetti Code Central",
		Description: fmt.Sprintf("Your code averages %.1f cyclomatic complexity. Good luck debugging that.", avg),
		Repository:  first,
		Evidence: Evidence{
			"avg_complexity":          avg,
			"high_complexity_repos":   high,
			"highest_complexity_repo": first,
		},
		Score: 55,
	}, nil
}

func slowCond(u metrics.User, _ time.Time) bool { return u.AverageActivityGap > 90 }

func slowGen(u metrics.User, _ time.Time) (*Issue, error) {
	avg := u.AverageActivityGap

	sev := SeverityWarning
	if avg > 200 {
		sev = SeverityCritical
	}

	return &Issue{
		Type:     TypeSlowRepo,
		Severity: sev,
		Title:    "Molasses Development",
		Description: fmt.Sprintf(
			"Average commit gap: %d months. That's slower than enterprise waterfall.",
			metrics.RoundInt(float64(avg)/30),
		),
		Evidence: Evidence{
			"average_gap_days": avg,
			"max_gap_days":     u.MaxActivityGap,
		},
		Score: 40,
	}, nil
}
