package analysis

import (
	"time"

	"github.com/Vagvedi/gitrekt/internal/core/detector"
	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

// Profile is the part of a GitHub user profile the analysis needs
type Profile struct {
	Login     string
	CreatedAt time.Time
}

// BuildUser folds repository metrics into the user aggregate
// now anchors the abandonment scores so a fixed now gives a fixed result
func BuildUser(p Profile, repos []metrics.Repository, now time.Time) metrics.User {
	u := metrics.User{
		Username:          p.Login,
		CreatedAt:         p.CreatedAt,
		Repositories:      repos,
		TotalRepositories: len(repos),
		ActivityGaps:      []int{},
	}
	if u.Repositories == nil {
		u.Repositories = []metrics.Repository{}
	}

	var (
		abandonSum    int
		complexitySum int
		gaps          []int
	)
	for _, r := range repos {
		if r.IsFork {
			u.TotalForks++
		}
		u.TotalCommits += r.CommitCount
		u.TotalIssues += r.IssueCount
		u.TotalPRs += r.PRCount
		u.TotalStars += r.StarCount

		abandonSum += detector.Abandonment(r, now).Score
		complexitySum += r.CyclomaticComplexity

		if g, ok := estimatedGap(r); ok {
			gaps = append(gaps, g)
		}
	}
	u.TotalOriginal = u.TotalRepositories - u.TotalForks

	spread := detector.LanguageSpread(repos)
	u.PrimaryLanguages = spread.PrimaryLanguages
	u.LanguageCount = spread.LanguageCount

	n := float64(max(1, len(repos)))
	if len(repos) > 0 {
		u.AbandonmentScore = float64(abandonSum) / n / 100
		u.AverageCommitsPerRepo = metrics.RoundInt(float64(u.TotalCommits) / n)
	}

	if len(gaps) > 0 {
		sum := 0
		for _, g := range gaps {
			sum += g
			u.MaxActivityGap = max(u.MaxActivityGap, g)
		}
		u.AverageActivityGap = metrics.RoundInt(float64(sum) / float64(len(gaps)))
	}

	u.ForkRatio = metrics.Ratio(u.TotalForks, u.TotalRepositories)

	var avgComplexity float64
	if len(repos) > 0 {
		avgComplexity = float64(complexitySum) / n
	}
	u.CodeQualityScore = max(0, 100-(avgComplexity*3+u.AbandonmentScore*20))

	issuesBonus := 0.0
	if u.TotalIssues > 0 {
		issuesBonus = 30
	}
	u.OverallEngagementScore = min(100, (float64(u.TotalPRs*5+u.TotalStars*2)+issuesBonus)/n)

	return u
}

// estimatedGap is the average days between commits for a repo, assuming even spacing
// over its lifetime; repos with a single commit or no span are left out
func estimatedGap(r metrics.Repository) (int, bool) {
	if r.LastCommitAt == nil {
		return 0, false
	}
	span := metrics.DaysBetween(r.CreatedAt, *r.LastCommitAt)
	if span <= 0 || r.CommitCount <= 1 {
		return 0, false
	}
	return metrics.RoundInt(float64(span) / float64(r.CommitCount)), true
}
