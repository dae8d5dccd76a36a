package detector

import (
	"strings"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

// readmeSections are the headers that earn points and their weights
var readmeSections = []struct {
	name   string
	weight int
}{
	{"installation", 20},
	{"usage", 20},
	{"features", 15},
	{"contributing", 15},
	{"license", 10},
}

// ReadmeQuality grades README content by its sections, code samples and length
// any non empty README scoring under 50 is poor, there is no lower tier
func ReadmeQuality(content string) metrics.ReadmeQuality {
	if content == "" {
		return metrics.ReadmeMissing
	}

	s := readmeScore(content)
	switch {
	case s >= 80:
		return metrics.ReadmeExcellent
	case s >= 50:
		return metrics.ReadmeGood
	default:
		return metrics.ReadmePoor
	}
}

func readmeScore(content string) int {
	lc := strings.ToLower(content)
	score := 0
	for _, sec := range readmeSections {
		if strings.Contains(lc, "## "+sec.name) || strings.Contains(lc, "### "+sec.name) {
			score += sec.weight
		}
	}
	if strings.Contains(lc, "```") {
		score += 10
	}
	if len(lc) > 500 {
		score += 10
	}
	return score
}
