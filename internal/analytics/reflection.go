package analytics

import (
	"sort"
	"time"

	"github.com/ponder/ponder-api/internal/models"
)

// Trend classifications
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// satisfactionValue maps an outcome to its numeric satisfaction, 5 down to 1.
func satisfactionValue(outcome string) int {
	switch outcome {
	case models.OutcomeVerySatisfied:
		return 5
	case models.OutcomeSatisfied:
		return 4
	case models.OutcomeUnsatisfied:
		return 2
	case models.OutcomeVeryUnsatisfied:
		return 1
	default:
		return 3
	}
}

// ComputeStats aggregates a user's full reflection history into a
// ReflectionStats snapshot. An empty history yields zeroed stats with a
// "stable" trend — a valid cacheable state, not an error.
func ComputeStats(reflections []models.Reflection) models.ReflectionStats {
	stats := models.ReflectionStats{
		SatisfactionCounts:     map[string]int{},
		SatisfactionByCategory: map[string]float64{},
		LearningsByType:        map[string]int{},
		ReflectionTrend:        TrendStable,
		LastUpdated:            time.Now(),
	}
	if len(reflections) == 0 {
		return stats
	}

	sum := 0
	repeat := 0
	catSum := map[string]int{}
	catCount := map[string]int{}
	for _, r := range reflections {
		v := satisfactionValue(r.Outcome)
		sum += v
		stats.SatisfactionCounts[r.Outcome]++
		if r.WouldRepeat {
			repeat++
		}
		if r.DecisionCategory != "" {
			catSum[r.DecisionCategory] += v
			catCount[r.DecisionCategory]++
		}
		for _, l := range r.Learnings {
			stats.LearningsByType[l.Type]++
		}
	}

	n := float64(len(reflections))
	stats.AverageSatisfaction = float64(sum) / n
	stats.WouldRepeatPercentage = float64(repeat) / n * 100
	for cat, s := range catSum {
		stats.SatisfactionByCategory[cat] = float64(s) / float64(catCount[cat])
	}

	if len(reflections) >= 5 {
		stats.ReflectionTrend = reflectionTrend(reflections)
	}

	return stats
}

// reflectionTrend compares the 3 most recent reflections against the 3
// oldest. With exactly 5 reflections the windows share the middle entry;
// the overlap is part of the feature's behavior, not an accident to fix.
func reflectionTrend(reflections []models.Reflection) string {
	sorted := make([]models.Reflection, len(reflections))
	copy(sorted, reflections)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	olderAvg := windowAverage(sorted[:3])
	recentAvg := windowAverage(sorted[len(sorted)-3:])

	switch {
	case recentAvg > olderAvg+0.5:
		return TrendImproving
	case recentAvg < olderAvg-0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func windowAverage(window []models.Reflection) float64 {
	sum := 0
	for _, r := range window {
		sum += satisfactionValue(r.Outcome)
	}
	return float64(sum) / float64(len(window))
}
