package analytics

import (
	"github.com/google/uuid"
	"github.com/ponder/ponder-api/internal/models"
)

// RecommendationOutput is the validated shape handed over by the AI
// collaborator: free text naming an option plus the reasoning behind it.
type RecommendationOutput struct {
	RecommendationText string `json:"recommendation"`
	Reasoning          string `json:"reasoning"`
}

// RecommendationResult is the UI-ready outcome of the pipeline.
type RecommendationResult struct {
	OptionID   uuid.UUID `json:"optionId"`
	OptionText string    `json:"optionText"`
	Reasoning  string    `json:"reasoning"`
	Confidence int       `json:"confidence"`
	Label      string    `json:"confidenceLabel"`
	Mismatch   bool      `json:"mismatch"`
}

// BuildResult resolves the AI output against the decision's options and
// scores the resolved option from its pros/cons. When resolution fell
// through to the first-option default, Mismatch is set and no option is
// marked selected — the caller can then ask the user to rephrase instead of
// silently highlighting the wrong choice. On a real match the resolved
// option's Selected flag is set (and cleared on the rest).
//
// Returns nil only when options is empty.
func BuildResult(ai RecommendationOutput, options []models.Option, decisionType string) *RecommendationResult {
	idx, kind := MatchOption(ai.RecommendationText, options)
	if kind == MatchNone {
		return nil
	}

	opt := &options[idx]
	result := &RecommendationResult{
		OptionID:   opt.ID,
		OptionText: opt.Text,
		Reasoning:  ai.Reasoning,
		Confidence: ScoreFromProsCons(len(opt.Pros), len(opt.Cons), decisionType),
		Mismatch:   kind == MatchFallback,
	}
	result.Label = ConfidenceLabel(result.Confidence)

	if !result.Mismatch {
		for i := range options {
			options[i].Selected = i == idx
		}
	}

	return result
}
