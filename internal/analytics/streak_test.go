package analytics

import (
	"testing"
	"time"

	"github.com/ponder/ponder-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asOf is mid-afternoon on a fixed day so "today"/"yesterday" are stable.
var asOf = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func decisionOn(t time.Time, decisionType string) models.Decision {
	return models.Decision{Type: decisionType, CreatedAt: t}
}

func decisionsOnDays(dayOffsets ...int) []models.Decision {
	var decisions []models.Decision
	for _, off := range dayOffsets {
		decisions = append(decisions, decisionOn(asOf.AddDate(0, 0, off), models.DecisionTypeQuick))
	}
	return decisions
}

func TestComputeStreak_Empty(t *testing.T) {
	assert.Equal(t, StreakResult{}, ComputeStreak(nil, asOf))
	assert.Equal(t, StreakResult{}, ComputeStreak([]models.Decision{}, asOf))
}

func TestComputeStreak_TodayAndYesterday(t *testing.T) {
	result := ComputeStreak(decisionsOnDays(0, -1), asOf)

	assert.Equal(t, 2, result.Current)
	assert.Equal(t, 2, result.Longest)
	assert.Equal(t, 2, result.ThisMonth)
	assert.Equal(t, 2, result.Total)
}

func TestComputeStreak_SurvivesUntilDayElapses(t *testing.T) {
	// Nothing today yet, but yesterday and the day before are covered:
	// the streak stays alive anchored on yesterday.
	result := ComputeStreak(decisionsOnDays(-1, -2), asOf)

	assert.Equal(t, 2, result.Current)
}

func TestComputeStreak_FullDayGapBreaks(t *testing.T) {
	// Only two days ago: neither today nor yesterday has an entry.
	result := ComputeStreak(decisionsOnDays(-2), asOf)

	assert.Equal(t, 0, result.Current)
	assert.Equal(t, 0, result.Longest)
	assert.Equal(t, 1, result.Total)
}

func TestComputeStreak_MultipleDecisionsSameDay(t *testing.T) {
	decisions := append(decisionsOnDays(0, 0, 0), decisionsOnDays(-1)...)
	result := ComputeStreak(decisions, asOf)

	assert.Equal(t, 2, result.Current, "same-day decisions count once for the streak")
	assert.Equal(t, 4, result.Total)
}

// Longest deliberately mirrors the live streak rather than scanning for a
// true historical maximum: an older five-day run does not surface here.
func TestComputeStreak_LongestMirrorsCurrent(t *testing.T) {
	decisions := decisionsOnDays(-14, -13, -12, -11, -10, -1, 0)
	result := ComputeStreak(decisions, asOf)

	assert.Equal(t, 2, result.Current)
	assert.Equal(t, 2, result.Longest, "longest tracks the current streak, not the older 5-day run")
}

func TestComputeStreak_ThisMonthBoundary(t *testing.T) {
	decisions := decisionsOnDays(0, -1)
	// Same calendar day number in the previous month.
	decisions = append(decisions, decisionOn(time.Date(2025, time.February, 15, 9, 0, 0, 0, time.UTC), models.DecisionTypeQuick))

	result := ComputeStreak(decisions, asOf)
	assert.Equal(t, 2, result.ThisMonth)
	assert.Equal(t, 3, result.Total)
}

func TestBucketByDay_AlwaysFullWindow(t *testing.T) {
	t.Run("empty history still yields 7 zero buckets", func(t *testing.T) {
		buckets := BucketByDay(nil, asOf, 7)
		require.Len(t, buckets, 7)
		for _, b := range buckets {
			assert.Zero(t, b.Quick)
			assert.Zero(t, b.Deep)
			assert.Zero(t, b.Total)
		}
	})

	t.Run("oldest first ending at asOf", func(t *testing.T) {
		buckets := BucketByDay(nil, asOf, 7)
		require.Len(t, buckets, 7)
		assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC), buckets[0].Date)
		assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), buckets[6].Date)
	})

	t.Run("custom window size", func(t *testing.T) {
		assert.Len(t, BucketByDay(nil, asOf, 3), 3)
	})
}

func TestBucketByDay_CountsByType(t *testing.T) {
	decisions := []models.Decision{
		decisionOn(asOf, models.DecisionTypeQuick),
		decisionOn(asOf.Add(-2*time.Hour), models.DecisionTypeDeep),
		decisionOn(asOf.AddDate(0, 0, -1), models.DecisionTypeDeep),
		// Outside the window, ignored.
		decisionOn(asOf.AddDate(0, 0, -10), models.DecisionTypeQuick),
	}

	buckets := BucketByDay(decisions, asOf, 7)
	require.Len(t, buckets, 7)

	today := buckets[6]
	assert.Equal(t, 1, today.Quick)
	assert.Equal(t, 1, today.Deep)
	assert.Equal(t, 2, today.Total)

	yesterday := buckets[5]
	assert.Equal(t, 0, yesterday.Quick)
	assert.Equal(t, 1, yesterday.Deep)
	assert.Equal(t, 1, yesterday.Total)

	total := 0
	for _, b := range buckets {
		total += b.Total
	}
	assert.Equal(t, 3, total)
}
