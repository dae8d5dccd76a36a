package detector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vagvedi/gitrekt/internal/core/metrics"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return now.AddDate(0, 0, -n) }

func ptr[T any](v T) *T { return &v }

func TestAbandonment_RatioAndScore(t *testing.T) {
	repo := metrics.Repository{
		Name:         "dusty",
		CreatedAt:    daysAgo(1000),
		LastCommitAt: ptr(daysAgo(800)),
	}

	got := Abandonment(repo, now)
	assert.Equal(t, 800, got.DaysInactive)
	assert.True(t, got.IsAbandoned)
	assert.Equal(t, 96, got.Score)
	assert.Equal(t, "No commits for 2 years", got.Reason)
}

func TestAbandonment_NoCommitsUsesCreatedAt(t *testing.T) {
	repo := metrics.Repository{CreatedAt: daysAgo(400)}

	got := Abandonment(repo, now)
	assert.Equal(t, 400, got.DaysInactive)
	assert.True(t, got.IsAbandoned)
	assert.Equal(t, 100, got.Score, "score is capped at 100")
	assert.Equal(t, "No commits for 13 months", got.Reason)
}

func TestAbandonment_CreatedToday(t *testing.T) {
	repo := metrics.Repository{CreatedAt: now.Add(-time.Hour)}

	got := Abandonment(repo, now)
	assert.False(t, got.IsAbandoned)
	assert.Zero(t, got.Score)
	assert.Empty(t, got.Reason)
}

func TestAbandonment_CommitBeforeCreation(t *testing.T) {
	// imported history can predate the repository itself
	repo := metrics.Repository{
		CreatedAt:    daysAgo(10),
		LastCommitAt: ptr(daysAgo(40)),
	}

	got := Abandonment(repo, now)
	assert.Equal(t, 40, got.DaysInactive)
	assert.True(t, got.IsAbandoned)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, "No commits for 40 days", got.Reason)
}

func TestAbandonment_ReasonBuckets(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{731, "No commits for 2 years"},
		{730, "No commits for 24 months"},
		{181, "No commits for 6 months"},
		{180, "No commits for 180 days"},
		{31, "No commits for 31 days"},
		{30, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, inactivityReason(tc.days), "days=%d", tc.days)
	}
}

func TestActivityGaps_TooFewCommits(t *testing.T) {
	got := ActivityGaps([]time.Time{now})
	assert.Empty(t, got.Gaps)
	assert.Zero(t, got.MaxGap)
	assert.Zero(t, got.AverageGap)
	assert.False(t, got.SuspiciousPatterns)
}

func TestActivityGaps_SortsAndSkipsZeroGaps(t *testing.T) {
	commits := []time.Time{
		daysAgo(30),
		daysAgo(0),
		daysAgo(10),
		daysAgo(10), // duplicate timestamp, no gap
	}

	got := ActivityGaps(commits)
	require.Equal(t, []int{10, 20}, got.Gaps)
	assert.Equal(t, 20, got.MaxGap)
	assert.Equal(t, 15, got.AverageGap)
	assert.False(t, got.SuspiciousPatterns)
}

func TestActivityGaps_WeeklyCadenceIsSuspicious(t *testing.T) {
	var commits []time.Time
	for i := range 8 {
		commits = append(commits, daysAgo(i*7))
	}

	got := ActivityGaps(commits)
	assert.Len(t, got.Gaps, 7)
	assert.Equal(t, 7, got.MaxGap)
	assert.True(t, got.SuspiciousPatterns)
}

func TestActivityGaps_WeeklyNeedsMoreThanFiveGaps(t *testing.T) {
	commits := []time.Time{daysAgo(0), daysAgo(7), daysAgo(14), daysAgo(21), daysAgo(28), daysAgo(35)}

	got := ActivityGaps(commits)
	assert.Len(t, got.Gaps, 5)
	assert.False(t, got.SuspiciousPatterns)
}

func TestActivityGaps_DoesNotMutateInput(t *testing.T) {
	commits := []time.Time{daysAgo(5), daysAgo(1)}
	_ = ActivityGaps(commits)
	assert.Equal(t, daysAgo(5), commits[0])
}
