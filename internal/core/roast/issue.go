// Package roast evaluates the ordered roast rules against user metrics and
// turns the findings into an overall score and verdict
package roast

// IssueType is the closed set of finding kinds
type IssueType string

const (
	TypeAbandonedRepo        IssueType = "abandoned_repo"
	TypeActivityGap          IssueType = "activity_gap"
	TypeCyclomaticComplexity IssueType = "cyclomatic_complexity"
	TypeGodFile              IssueType = "god_file"
	TypeDuplicateCode        IssueType = "duplicate_code"
	TypeLanguageSpread       IssueType = "language_spread"
	TypeNoDocumentation      IssueType = "no_documentation"
	TypeLowEngagement        IssueType = "low_engagement"
	TypeForkHeavy            IssueType = "fork_heavy"
	TypeSlowRepo             IssueType = "slow_repo"
)

// Severity orders findings and weights their score
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank is the sort position, critical first
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Multiplier is the weight applied to a finding score in the overall score
func (s Severity) Multiplier() float64 {
	switch s {
	case SeverityCritical:
		return 1.5
	case SeverityWarning:
		return 1
	default:
		return 0.5
	}
}

// Valid reports whether s is one of the known severities
func (s Severity) Valid() bool {
	return s == SeverityCritical || s == SeverityWarning || s == SeverityInfo
}

// Evidence carries display values backing a finding
type Evidence map[string]any

// Issue is one triggered rule
type Issue struct {
	Type        IssueType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Repository  string    `json:"repository,omitempty"`
	Evidence    Evidence  `json:"evidence"`
	Score       int       `json:"score"` // 0..100
}
