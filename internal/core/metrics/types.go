package metrics

import "time"

// ReadmeQuality grades a repository README
type ReadmeQuality string

const (
	ReadmeMissing   ReadmeQuality = "missing"
	ReadmePoor      ReadmeQuality = "poor"
	ReadmeGood      ReadmeQuality = "good"
	ReadmeExcellent ReadmeQuality = "excellent"
)

// Repository is the normalized view of one repository
// sizes and complexity are estimates derived from the repo size, not measured
type Repository struct {
	Name       string `json:"name"`
	IsFork     bool   `json:"is_fork"`
	IsArchived bool   `json:"is_archived"`

	CreatedAt    time.Time  `json:"created_at"`
	LastCommitAt *time.Time `json:"last_commit_at,omitempty"` // nil when no commit was observed

	CommitCount int `json:"commit_count"`
	IssueCount  int `json:"issue_count"`
	PRCount     int `json:"pr_count"`
	StarCount   int `json:"star_count"`
	ForkCount   int `json:"fork_count"`

	Language  string           `json:"language,omitempty"`
	Languages map[string]int64 `json:"languages"`

	FileCount            int `json:"file_count"`
	AverageFileSize      int `json:"average_file_size"`
	LongestFileSize      int `json:"longest_file_size"`
	CyclomaticComplexity int `json:"cyclomatic_complexity"`
	DuplicatePercentage  int `json:"duplicate_percentage"`

	ReadmePresent bool          `json:"readme_present"`
	ReadmeQuality ReadmeQuality `json:"readme_quality"`

	// SuspiciousCadence is set when the observed commits land on a mostly weekly rhythm
	SuspiciousCadence bool `json:"suspicious_cadence"`
}

// LastActivity is the last commit time, or the creation time when no commit was seen
func (r Repository) LastActivity() time.Time {
	if r.LastCommitAt != nil {
		return *r.LastCommitAt
	}
	return r.CreatedAt
}

// User is the per analysis aggregate over all of a user's repositories
type User struct {
	Username     string       `json:"username"`
	CreatedAt    time.Time    `json:"created_at"`
	Repositories []Repository `json:"repositories"`

	TotalRepositories int `json:"total_repositories"`
	TotalForks        int `json:"total_forks"`
	TotalOriginal     int `json:"total_original"`
	TotalCommits      int `json:"total_commits"`
	TotalIssues       int `json:"total_issues"`
	TotalPRs          int `json:"total_prs"`
	TotalStars        int `json:"total_stars"`

	PrimaryLanguages []string `json:"primary_languages"`
	LanguageCount    int      `json:"language_count"`

	AverageCommitsPerRepo int     `json:"average_commits_per_repo"`
	AbandonmentScore      float64 `json:"abandonment_score"` // 0..1

	// ActivityGaps is reserved and always empty
	ActivityGaps       []int `json:"activity_gaps"`
	MaxActivityGap     int   `json:"max_activity_gap"`
	AverageActivityGap int   `json:"average_activity_gap"`

	ForkRatio              float64 `json:"fork_ratio"`
	CodeQualityScore       float64 `json:"code_quality_score"`
	OverallEngagementScore float64 `json:"overall_engagement_score"`
}
