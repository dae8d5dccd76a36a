package detector

import "github.com/Vagvedi/gitrekt/internal/core/metrics"

// CollaborationLevel buckets how much a user works with others
type CollaborationLevel string

const (
	LevelSolo                CollaborationLevel = "solo"
	LevelLight               CollaborationLevel = "light"
	LevelActive              CollaborationLevel = "active"
	LevelHighlyCollaborative CollaborationLevel = "highly-collaborative"
)

// CollaborationResult scores pull request and issue engagement against commit volume
type CollaborationResult struct {
	Score       int // 0..100
	Level       CollaborationLevel
	Explanation string
}

// Collaboration scores PR and issue activity relative to commits plus absolute volume
func Collaboration(prs, issues, commits int) CollaborationResult {
	score := ratioPoints(metrics.Ratio(prs, commits)) + ratioPoints(metrics.Ratio(issues, commits))

	switch vol := prs + issues; {
	case vol > 100:
		score += 25
	case vol > 20:
		score += 10
	}

	switch {
	case score >= 75:
		return CollaborationResult{score, LevelHighlyCollaborative, "Strong PR and issue engagement"}
	case score >= 50:
		return CollaborationResult{score, LevelActive, "Moderate community engagement"}
	case score >= 20:
		return CollaborationResult{score, LevelLight, "Some PR and issue activity"}
	default:
		return CollaborationResult{score, LevelSolo, "Primarily solo work"}
	}
}

func ratioPoints(r float64) int {
	switch {
	case r > 0.1:
		return 30
	case r > 0.05:
		return 15
	}
	return 0
}
