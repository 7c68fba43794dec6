package analytics

import (
	"testing"

	"github.com/ponder/ponder-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reflectionAt(daysAgo int, outcome string) models.Reflection {
	return models.Reflection{
		Outcome:   outcome,
		CreatedAt: asOf.AddDate(0, 0, -daysAgo),
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Empty(t, stats.SatisfactionCounts)
	assert.Zero(t, stats.AverageSatisfaction)
	assert.Zero(t, stats.WouldRepeatPercentage)
	assert.Empty(t, stats.SatisfactionByCategory)
	assert.Empty(t, stats.LearningsByType)
	assert.Equal(t, TrendStable, stats.ReflectionTrend)
	assert.False(t, stats.LastUpdated.IsZero())
}

func TestComputeStats_Aggregation(t *testing.T) {
	reflections := []models.Reflection{
		{Outcome: models.OutcomeVerySatisfied, WouldRepeat: true, DecisionCategory: "career",
			Learnings: []models.Learning{{Type: "insight", Description: "trust the data"}}},
		{Outcome: models.OutcomeSatisfied, WouldRepeat: true, DecisionCategory: "career"},
		{Outcome: models.OutcomeUnsatisfied, WouldRepeat: false, DecisionCategory: "health",
			Learnings: []models.Learning{{Type: "insight"}, {Type: "mistake"}}},
		{Outcome: models.OutcomeNeutral, WouldRepeat: false},
	}

	stats := ComputeStats(reflections)

	assert.Equal(t, map[string]int{
		models.OutcomeVerySatisfied: 1,
		models.OutcomeSatisfied:     1,
		models.OutcomeUnsatisfied:   1,
		models.OutcomeNeutral:       1,
	}, stats.SatisfactionCounts)

	// (5 + 4 + 2 + 3) / 4
	assert.InDelta(t, 3.5, stats.AverageSatisfaction, 1e-9)
	assert.InDelta(t, 50.0, stats.WouldRepeatPercentage, 1e-9)

	require.Len(t, stats.SatisfactionByCategory, 2)
	assert.InDelta(t, 4.5, stats.SatisfactionByCategory["career"], 1e-9)
	assert.InDelta(t, 2.0, stats.SatisfactionByCategory["health"], 1e-9)

	assert.Equal(t, map[string]int{"insight": 2, "mistake": 1}, stats.LearningsByType)
}

func TestComputeStats_TrendNeedsFiveReflections(t *testing.T) {
	// A sharp swing, but only 4 entries: no trend is computed.
	reflections := []models.Reflection{
		reflectionAt(4, models.OutcomeVeryUnsatisfied),
		reflectionAt(3, models.OutcomeVeryUnsatisfied),
		reflectionAt(1, models.OutcomeVerySatisfied),
		reflectionAt(0, models.OutcomeVerySatisfied),
	}
	stats := ComputeStats(reflections)
	assert.Equal(t, TrendStable, stats.ReflectionTrend)
}

func TestComputeStats_TrendImproving(t *testing.T) {
	// 3 oldest all map to 1, 3 most recent all map to 5.
	reflections := []models.Reflection{
		reflectionAt(6, models.OutcomeVeryUnsatisfied),
		reflectionAt(5, models.OutcomeVeryUnsatisfied),
		reflectionAt(4, models.OutcomeVeryUnsatisfied),
		reflectionAt(2, models.OutcomeVerySatisfied),
		reflectionAt(1, models.OutcomeVerySatisfied),
		reflectionAt(0, models.OutcomeVerySatisfied),
	}
	stats := ComputeStats(reflections)
	assert.Equal(t, TrendImproving, stats.ReflectionTrend)
}

func TestComputeStats_TrendDeclining(t *testing.T) {
	reflections := []models.Reflection{
		reflectionAt(6, models.OutcomeVerySatisfied),
		reflectionAt(5, models.OutcomeVerySatisfied),
		reflectionAt(4, models.OutcomeVerySatisfied),
		reflectionAt(2, models.OutcomeVeryUnsatisfied),
		reflectionAt(1, models.OutcomeVeryUnsatisfied),
		reflectionAt(0, models.OutcomeVeryUnsatisfied),
	}
	stats := ComputeStats(reflections)
	assert.Equal(t, TrendDeclining, stats.ReflectionTrend)
}

// With exactly 5 reflections the recent-3 and oldest-3 windows share the
// middle entry. The shared entry pulls both averages together; that overlap
// is intended behavior.
func TestComputeStats_TrendWindowsOverlapAtFive(t *testing.T) {
	reflections := []models.Reflection{
		reflectionAt(4, models.OutcomeVerySatisfied),
		reflectionAt(3, models.OutcomeVerySatisfied),
		reflectionAt(2, models.OutcomeVeryUnsatisfied), // in both windows
		reflectionAt(1, models.OutcomeVerySatisfied),
		reflectionAt(0, models.OutcomeVerySatisfied),
	}
	stats := ComputeStats(reflections)
	// Both windows average (5+5+1)/3: identical, so the trend is stable.
	assert.Equal(t, TrendStable, stats.ReflectionTrend)
}

func TestComputeStats_TrendStableWithinBand(t *testing.T) {
	// Older window averages 3.0, recent 3.33: inside the half-point band,
	// so the mild lift doesn't register as improving.
	reflections := []models.Reflection{
		reflectionAt(6, models.OutcomeNeutral),
		reflectionAt(5, models.OutcomeNeutral),
		reflectionAt(4, models.OutcomeNeutral),
		reflectionAt(2, models.OutcomeNeutral),
		reflectionAt(1, models.OutcomeNeutral),
		reflectionAt(0, models.OutcomeSatisfied),
	}
	stats := ComputeStats(reflections)
	assert.Equal(t, TrendStable, stats.ReflectionTrend)
}

func TestComputeStats_TrendIgnoresInputOrder(t *testing.T) {
	// Same data as the improving case, shuffled: trend sorts by CreatedAt.
	reflections := []models.Reflection{
		reflectionAt(1, models.OutcomeVerySatisfied),
		reflectionAt(5, models.OutcomeVeryUnsatisfied),
		reflectionAt(0, models.OutcomeVerySatisfied),
		reflectionAt(4, models.OutcomeVeryUnsatisfied),
		reflectionAt(2, models.OutcomeVerySatisfied),
		reflectionAt(6, models.OutcomeVeryUnsatisfied),
	}
	stats := ComputeStats(reflections)
	assert.Equal(t, TrendImproving, stats.ReflectionTrend)
}

func TestSatisfactionValue(t *testing.T) {
	assert.Equal(t, 5, satisfactionValue(models.OutcomeVerySatisfied))
	assert.Equal(t, 4, satisfactionValue(models.OutcomeSatisfied))
	assert.Equal(t, 3, satisfactionValue(models.OutcomeNeutral))
	assert.Equal(t, 2, satisfactionValue(models.OutcomeUnsatisfied))
	assert.Equal(t, 1, satisfactionValue(models.OutcomeVeryUnsatisfied))
	assert.Equal(t, 3, satisfactionValue("unknown"), "unknown outcomes read as neutral")
}
