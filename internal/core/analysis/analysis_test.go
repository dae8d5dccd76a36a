package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

var now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return now.AddDate(0, 0, -n) }

func TestBuildRepository_FullSource(t *testing.T) {
	pushed := daysAgo(3)
	src := RepoSource{
		Record: RepoRecord{
			Name:       "api",
			SizeKB:     205,
			CreatedAt:  daysAgo(500),
			PushedAt:   &pushed,
			Language:   "Shell",
			OpenIssues: 4,
			Stars:      12,
			Forks:      2,
		},
		Commits:     []time.Time{daysAgo(3), daysAgo(10), daysAgo(40)},
		CommitTotal: 87,
		Readme:      "## Usage\nrun it",
		Languages:   map[string]int64{"Go": 9000, "Shell": 200},
	}

	got := BuildRepository(src)
	require.NotNil(t, got.LastCommitAt)
	assert.Equal(t, daysAgo(3), *got.LastCommitAt)
	assert.Equal(t, 87, got.CommitCount)
	assert.Equal(t, "Go", got.Language)
	assert.Equal(t, 21, got.FileCount)
	assert.Equal(t, 10, got.AverageFileSize)
	assert.Equal(t, 205, got.LongestFileSize)
	assert.Equal(t, 16, got.CyclomaticComplexity) // round(20.5*0.8)
	assert.Zero(t, got.DuplicatePercentage)
	assert.True(t, got.ReadmePresent)
	assert.Equal(t, metrics.ReadmePoor, got.ReadmeQuality)
	assert.Equal(t, 4, got.IssueCount)
	assert.Equal(t, 12, got.StarCount)
	assert.Equal(t, 2, got.ForkCount)
	assert.Zero(t, got.PRCount)
}

func TestBuildRepository_EmptyRepo(t *testing.T) {
	src := RepoSource{
		Record: RepoRecord{Name: "empty", CreatedAt: daysAgo(5), Language: "Go"},
	}

	got := BuildRepository(src)
	assert.Nil(t, got.LastCommitAt)
	assert.Equal(t, "Go", got.Language, "falls back to the declared language")
	assert.Equal(t, 1, got.FileCount)
	assert.Zero(t, got.AverageFileSize)
	assert.Equal(t, 1, got.CyclomaticComplexity)
	assert.False(t, got.ReadmePresent)
	assert.Equal(t, metrics.ReadmeMissing, got.ReadmeQuality)
	assert.NotNil(t, got.Languages)
}

func TestPrimaryLanguage_TieBreaksByName(t *testing.T) {
	assert.Equal(t, "C", primaryLanguage(map[string]int64{"Rust": 10, "C": 10, "Go": 3}))
	assert.Empty(t, primaryLanguage(map[string]int64{}))
}

func TestBuildRepository_LanguageTieStableAcrossRuns(t *testing.T) {
	langs := map[string]int64{"TypeScript": 500, "Python": 500, "Go": 500, "Shell": 20, "Zig": 500}
	for range 50 {
		got := BuildRepository(RepoSource{Record: RepoRecord{Name: "tied", Language: "Shell"}, Languages: langs})
		require.Equal(t, "Go", got.Language)
	}
}

func TestFallbackRepository(t *testing.T) {
	pushed := daysAgo(20)
	rec := RepoRecord{
		Name: "flaky", Fork: true, SizeKB: 70, CreatedAt: daysAgo(90), PushedAt: &pushed,
		Language: "C", OpenIssues: 1, Stars: 3, Forks: 4,
	}

	got := FallbackRepository(rec)
	assert.Equal(t, "flaky", got.Name)
	assert.True(t, got.IsFork)
	require.NotNil(t, got.LastCommitAt)
	assert.Equal(t, pushed, *got.LastCommitAt)
	assert.Zero(t, got.CommitCount)
	assert.Equal(t, 1, got.FileCount)
	assert.Equal(t, 70, got.AverageFileSize)
	assert.Zero(t, got.CyclomaticComplexity)
	assert.Equal(t, metrics.ReadmeMissing, got.ReadmeQuality)
	assert.False(t, got.ReadmePresent)
	assert.Equal(t, 3, got.StarCount)
	assert.Empty(t, got.Languages)
}

func repoAt(name string, createdDaysAgo int, lastCommitDaysAgo int, commits int) metrics.Repository {
	r := metrics.Repository{
		Name:        name,
		CreatedAt:   daysAgo(createdDaysAgo),
		CommitCount: commits,
	}
	if lastCommitDaysAgo >= 0 {
		t := daysAgo(lastCommitDaysAgo)
		r.LastCommitAt = &t
	}
	return r
}

func TestBuildUser_Totals(t *testing.T) {
	a := repoAt("a", 400, 0, 100)
	a.Language = "Go"
	a.StarCount = 10
	a.IssueCount = 2
	a.PRCount = 1
	a.CyclomaticComplexity = 4

	b := repoAt("b", 300, 200, 10)
	b.IsFork = true
	b.Language = "Go"
	b.CyclomaticComplexity = 6

	c := repoAt("c", 100, -1, 0)
	c.Language = "Rust"
	c.CyclomaticComplexity = 2

	u := BuildUser(Profile{Login: "octo", CreatedAt: daysAgo(2000)}, []metrics.Repository{a, b, c}, now)

	assert.Equal(t, "octo", u.Username)
	assert.Equal(t, 3, u.TotalRepositories)
	assert.Equal(t, 1, u.TotalForks)
	assert.Equal(t, 2, u.TotalOriginal)
	assert.Equal(t, 110, u.TotalCommits)
	assert.Equal(t, 2, u.TotalIssues)
	assert.Equal(t, 1, u.TotalPRs)
	assert.Equal(t, 10, u.TotalStars)
	assert.Equal(t, []string{"Go", "Rust"}, u.PrimaryLanguages)
	assert.Equal(t, 2, u.LanguageCount)
	assert.Equal(t, 37, u.AverageCommitsPerRepo)
	assert.NotNil(t, u.ActivityGaps)
	assert.Empty(t, u.ActivityGaps)
	assert.InDelta(t, 1.0/3, u.ForkRatio, 1e-9)

	// a: span 400 / 100 = 4, b: span 100 / 10 = 10, c has no commit
	assert.Equal(t, 10, u.MaxActivityGap)
	assert.Equal(t, 7, u.AverageActivityGap)

	// abandonment scores: a 0, b round(200/300*120)=80, c 100 -> 180/3/100
	assert.InDelta(t, 0.6, u.AbandonmentScore, 1e-9)

	// 100 - (4*3 + 0.6*20)
	assert.InDelta(t, 76.0, u.CodeQualityScore, 1e-9)

	// (1*5 + 10*2 + 30) / 3
	assert.InDelta(t, 55.0/3, u.OverallEngagementScore, 1e-9)
}

func TestBuildUser_Empty(t *testing.T) {
	u := BuildUser(Profile{Login: "ghost", CreatedAt: daysAgo(10)}, nil, now)

	assert.Zero(t, u.TotalRepositories)
	assert.Zero(t, u.ForkRatio)
	assert.Zero(t, u.AbandonmentScore)
	assert.Zero(t, u.AverageCommitsPerRepo)
	assert.Equal(t, 100.0, u.CodeQualityScore)
	assert.Zero(t, u.OverallEngagementScore)
	assert.NotNil(t, u.Repositories)
	assert.Empty(t, u.PrimaryLanguages)
}

func TestBuildUser_ComplexitySaturatesQuality(t *testing.T) {
	r := repoAt("big", 10, 0, 5)
	r.CyclomaticComplexity = 80

	u := BuildUser(Profile{Login: "x"}, []metrics.Repository{r}, now)
	assert.Zero(t, u.CodeQualityScore)
}

func TestBuildUser_EngagementCapped(t *testing.T) {
	r := repoAt("star", 10, 0, 5)
	r.StarCount = 5000

	u := BuildUser(Profile{Login: "x"}, []metrics.Repository{r}, now)
	assert.Equal(t, 100.0, u.OverallEngagementScore)
}
