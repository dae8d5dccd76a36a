package roast

import (
	"time"

	"github.com/google/uuid"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

// Report is the outward shape of one analysis, shared by the API and the CLI
type Report struct {
	AnalysisID   string        `json:"analysis_id"`
	Username     string        `json:"username"`
	OverallScore int           `json:"overall_score"`
	Metrics      ReportMetrics `json:"metrics"`
	Roasts       []Roast       `json:"roasts"`
	FinalVerdict string        `json:"final_verdict"`
	GeneratedAt  time.Time     `json:"generated_at"`
	CacheHit     bool          `json:"cache_hit"`
}

// ReportMetrics is the headline slice of the user aggregate
type ReportMetrics struct {
	TotalRepos       int      `json:"total_repos"`
	TotalStars       int      `json:"total_stars"`
	TotalCommits     int      `json:"total_commits"`
	PrimaryLanguages []string `json:"primary_languages"`
	ForkRatio        float64  `json:"fork_ratio"`
	AbandonmentScore float64  `json:"abandonment_score"`
	CodeQualityScore float64  `json:"code_quality_score"`
	EngagementScore  float64  `json:"engagement_score"`
}

// Roast is an Issue as presented to the user
type Roast struct {
	Type       IssueType `json:"type"`
	Severity   Severity  `json:"severity"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Repository string    `json:"repository,omitempty"`
	Evidence   Evidence  `json:"evidence,omitempty"`
}

// NewReport scores the findings and assembles the report
func NewReport(u metrics.User, issues []Issue, now time.Time) Report {
	score := OverallScore(u, issues)

	langs := u.PrimaryLanguages
	if langs == nil {
		langs = []string{}
	}

	roasts := make([]Roast, 0, len(issues))
	for _, iss := range issues {
		roasts = append(roasts, Roast{
			Type:       iss.Type,
			Severity:   iss.Severity,
			Title:      iss.Title,
			Message:    iss.Description,
			Repository: iss.Repository,
			Evidence:   iss.Evidence,
		})
	}

	return Report{
		AnalysisID:   uuid.NewString(),
		Username:     u.Username,
		OverallScore: score,
		Metrics: ReportMetrics{
			TotalRepos:       u.TotalRepositories,
			TotalStars:       u.TotalStars,
			TotalCommits:     u.TotalCommits,
			PrimaryLanguages: langs,
			ForkRatio:        u.ForkRatio,
			AbandonmentScore: u.AbandonmentScore,
			CodeQualityScore: u.CodeQualityScore,
			EngagementScore:  u.OverallEngagementScore,
		},
		Roasts:       roasts,
		FinalVerdict: Verdict(u, score),
		GeneratedAt:  now.UTC(),
	}
}

// WithoutEvidence returns a copy with every evidence map dropped
func (r Report) WithoutEvidence() Report {
	roasts := make([]Roast, len(r.Roasts))
	for i, rs := range r.Roasts {
		rs.Evidence = nil
		roasts[i] = rs
	}
	r.Roasts = roasts
	return r
}
