package analytics

import (
	"strings"

	"github.com/ponder/ponder-api/internal/models"
)

// MatchKind reports which pass of the matcher resolved an option.
type MatchKind int

const (
	// MatchNone means there were no options to resolve against.
	MatchNone MatchKind = iota
	// MatchExact means an option's text equals the recommendation.
	MatchExact
	// MatchSubstring means one side contains the other.
	MatchSubstring
	// MatchTokens means the option won on word overlap.
	MatchTokens
	// MatchFallback means nothing matched and the first option was
	// returned as a low-confidence default. Callers that need a real
	// match should treat this as non-authoritative.
	MatchFallback
)

// MatchOption resolves a free-text AI recommendation to the index of the
// option it refers to. Passes run in precedence order: exact text match,
// substring containment in either direction, then whitespace-token overlap
// (words longer than 3 characters, best option wins when it shares more
// than one word). When every pass fails the first option is returned with
// MatchFallback rather than failing — a garbled recommendation must still
// resolve to something so the flow can proceed.
//
// Returns (-1, MatchNone) only when options is empty.
func MatchOption(recommendation string, options []models.Option) (int, MatchKind) {
	if len(options) == 0 {
		return -1, MatchNone
	}

	rec := strings.ToLower(strings.TrimSpace(recommendation))

	for i := range options {
		if strings.ToLower(options[i].Text) == rec {
			return i, MatchExact
		}
	}

	if rec != "" {
		for i := range options {
			text := strings.ToLower(options[i].Text)
			if text == "" {
				continue
			}
			if strings.Contains(text, rec) || strings.Contains(rec, text) {
				return i, MatchSubstring
			}
		}
	}

	recWords := strings.Fields(rec)
	bestIdx, bestOverlap := 0, 0
	for i := range options {
		tokens := make(map[string]bool)
		for _, t := range strings.Fields(strings.ToLower(options[i].Text)) {
			tokens[t] = true
		}
		overlap := 0
		for _, w := range recWords {
			if len(w) > 3 && tokens[w] {
				overlap++
			}
		}
		if overlap > bestOverlap {
			bestIdx, bestOverlap = i, overlap
		}
	}
	if bestOverlap > 1 {
		return bestIdx, MatchTokens
	}

	return 0, MatchFallback
}

// ResolveOption is the pointer-returning form of MatchOption. It returns nil
// only for an empty option list.
func ResolveOption(recommendation string, options []models.Option) *models.Option {
	idx, kind := MatchOption(recommendation, options)
	if kind == MatchNone {
		return nil
	}
	return &options[idx]
}
