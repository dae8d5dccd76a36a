// Package analysis turns fetched GitHub records into repository and user metrics
package analysis

import (
	"maps"
	"slices"
	"time"

	"github.com/Vagvedi/gitrekt/internal/core/detector"
	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

// RepoRecord is the repository descriptor as listed for a user
type RepoRecord struct {
	Name       string
	Fork       bool
	Archived   bool
	SizeKB     int
	CreatedAt  time.Time
	PushedAt   *time.Time
	Language   string
	OpenIssues int
	Stars      int
	Forks      int
}

// RepoSource is everything fetched for one repository
type RepoSource struct {
	Record RepoRecord

	// Commits are author timestamps, newest first as returned by the API
	Commits     []time.Time
	CommitTotal int

	Readme    string // empty when the repository has no README
	Languages map[string]int64
}

// BuildRepository derives repository metrics from a fully fetched source
func BuildRepository(src RepoSource) metrics.Repository {
	rec := src.Record

	var lastCommit *time.Time
	if len(src.Commits) > 0 {
		t := src.Commits[0]
		lastCommit = &t
	}

	complexityInput := float64(rec.SizeKB) / 10
	if complexityInput == 0 {
		complexityInput = 1
	}

	var samples []string
	if src.Readme != "" {
		samples = append(samples, src.Readme)
	}

	langs := src.Languages
	if langs == nil {
		langs = map[string]int64{}
	}

	lang := primaryLanguage(langs)
	if lang == "" {
		lang = rec.Language
	}

	avgFile := 0
	if rec.SizeKB > 0 {
		avgFile = metrics.RoundInt(float64(rec.SizeKB) / max(1, float64(rec.SizeKB)/10))
	}

	return metrics.Repository{
		Name:                 rec.Name,
		IsFork:               rec.Fork,
		IsArchived:           rec.Archived,
		CreatedAt:            rec.CreatedAt,
		LastCommitAt:         lastCommit,
		CommitCount:          src.CommitTotal,
		IssueCount:           rec.OpenIssues,
		StarCount:            rec.Stars,
		ForkCount:            rec.Forks,
		Language:             lang,
		Languages:            langs,
		FileCount:            fileCount(rec.SizeKB),
		AverageFileSize:      avgFile,
		LongestFileSize:      rec.SizeKB,
		CyclomaticComplexity: detector.Complexity(complexityInput).Estimated,
		DuplicatePercentage:  detector.Duplication(samples),
		ReadmePresent:        src.Readme != "",
		ReadmeQuality:        detector.ReadmeQuality(src.Readme),
		SuspiciousCadence:    detector.ActivityGaps(src.Commits).SuspiciousPatterns,
	}
}

// FallbackRepository keeps only what the descriptor itself carries
// used when any per repository fetch fails so one repo cannot sink the analysis
func FallbackRepository(rec RepoRecord) metrics.Repository {
	return metrics.Repository{
		Name:            rec.Name,
		IsFork:          rec.Fork,
		IsArchived:      rec.Archived,
		CreatedAt:       rec.CreatedAt,
		LastCommitAt:    rec.PushedAt,
		IssueCount:      rec.OpenIssues,
		StarCount:       rec.Stars,
		ForkCount:       rec.Forks,
		Language:        rec.Language,
		Languages:       map[string]int64{},
		FileCount:       1,
		AverageFileSize: rec.SizeKB,
		LongestFileSize: rec.SizeKB,
		ReadmeQuality:   metrics.ReadmeMissing,
	}
}

// fileCount approximates files as one per 10KB of repository size
func fileCount(sizeKB int) int {
	return max(1, metrics.RoundInt(float64(sizeKB)/10))
}

// primaryLanguage is the language with the most bytes
// GitHub sends languages as a JSON object and a decoded map has no order,
// so ties go to the alphabetically first name and repeat runs agree
func primaryLanguage(langs map[string]int64) string {
	best := ""
	var bestBytes int64 = -1
	for _, name := range slices.Sorted(maps.Keys(langs)) {
		if b := langs[name]; b > bestBytes {
			best, bestBytes = name, b
		}
	}
	return best
}
