package roast

import (
	"fmt"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

// OverallScore weights each finding by severity, adds the profile-wide bonuses
// and clamps the result to 0..100
func OverallScore(u metrics.User, issues []Issue) int {
	score := 0.0
	for _, iss := range issues {
		score += float64(iss.Score) * iss.Severity.Multiplier()
	}

	if u.ForkRatio > 0.8 {
		score += 20
	}
	if u.AbandonmentScore > 0.7 {
		score += 15
	}
	if u.LanguageCount > 10 {
		score += 10
	}
	if u.OverallEngagementScore < 20 {
		score += 15
	}

	return metrics.RoundInt(min(100, max(0, score)))
}

// Verdict maps an overall score to its closing line
func Verdict(u metrics.User, score int) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("Your GitHub profile is a cautionary tale. %d repos, minimal activity, and scattered focus. Time for a Git purge and a coding renaissance.", u.TotalRepositories)
	case score >= 60:
		return "Decent effort, but you're spreading yourself too thin. Focus on your strongest projects and actually maintain them."
	case score >= 40:
		return "You've got the basics down. Some cleanup and better documentation would go a long way."
	case score >= 20:
		return "Solid contributor. Keep up the momentum and consider mentoring newcomers."
	default:
		return "GitHub legend status achieved. Your code quality, consistency, and community impact are exemplary."
	}
}
