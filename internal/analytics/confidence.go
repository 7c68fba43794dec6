package analytics

import (
	"math"

	"github.com/ponder/ponder-api/internal/models"
)

// Confidence bounds. Quick decisions clamp higher so low-stakes choices never
// show a discouraging number; deep decisions may go down to 50.
const (
	neutralConfidence = 70
	maxConfidence     = 95
	quickFloor        = 60
	deepFloor         = 50
)

// ScoreFromProsCons derives a bounded confidence percentage from how lopsided
// an option's pros/cons are. With no pros or cons it returns a fixed neutral 70.
func ScoreFromProsCons(pros, cons int, decisionType string) int {
	total := pros + cons
	if total <= 0 {
		return neutralConfidence
	}
	score := int(math.Round(float64(pros) / float64(total) * 100))
	return clampConfidence(score, decisionType)
}

// ScoreFromAlignment clamps a values-alignment percentage into the same range.
func ScoreFromAlignment(alignmentPercent int, decisionType string) int {
	return clampConfidence(alignmentPercent, decisionType)
}

func clampConfidence(score int, decisionType string) int {
	floor := quickFloor
	if decisionType == models.DecisionTypeDeep {
		floor = deepFloor
	}
	if score < floor {
		return floor
	}
	if score > maxConfidence {
		return maxConfidence
	}
	return score
}

// ConfidenceLabel maps a score to its qualitative label. The thresholds are
// fixed product constants.
func ConfidenceLabel(score int) string {
	switch {
	case score >= 85:
		return "High confidence"
	case score >= 70:
		return "Moderate confidence"
	default:
		return "Consider carefully"
	}
}
