package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/ponder/ponder-api/internal/analytics"
	"github.com/ponder/ponder-api/internal/models"
	"google.golang.org/genai"
)

// AIService wraps the Gemini API for recommendation generation and free-text
// decision extraction. Responses are requested in JSON mode against a schema,
// so callers get a validated struct or a typed ParseError — never half-checked
// fields.
type AIService struct {
	client *genai.Client
	model  string
}

// Global AI service instance
var AI *AIService

// ParseError reports that the model returned text that failed to unmarshal
// into the requested schema. Raw carries the unparsed response so callers can
// fall back to free-text matching instead of dropping the result.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("AI response failed schema validation: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractedDecision is the structured form of a dictated or pasted
// description of a choice.
type ExtractedDecision struct {
	Title    string               `json:"title"`
	Category string               `json:"category"`
	Options  []models.OptionInput `json:"options"`
}

// InitAI initializes the Gemini client.
// Returns nil gracefully if no API key is configured (dev mode).
func InitAI(apiKey, model string) error {
	if apiKey == "" {
		log.Println("AI: No API key configured, recommendations disabled")
		AI = &AIService{client: nil}
		return nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		log.Printf("AI: Failed to initialize Gemini client: %v", err)
		AI = &AIService{client: nil}
		return nil
	}

	AI = &AIService{client: client, model: model}
	log.Println("AI: Gemini recommendations enabled")
	return nil
}

// Enabled reports whether the service has a live client.
func (s *AIService) Enabled() bool {
	return s != nil && s.client != nil
}

// GenerateRecommendation asks the model to pick one of the decision's options.
// The returned text is free-form and must still be resolved against the
// option list by the analytics matcher.
func (s *AIService) GenerateRecommendation(ctx context.Context, decision *models.Decision) (*analytics.RecommendationOutput, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("AI service is not configured")
	}

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendation": {Type: genai.TypeString, Description: "The option you recommend, quoted as closely as possible from the list"},
			"reasoning":      {Type: genai.TypeString, Description: "Two or three sentences explaining the recommendation"},
		},
		Required: []string{"recommendation", "reasoning"},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(recommendationPrompt(decision)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("Gemini request failed: %w", err)
	}

	raw := resp.Text()
	var out analytics.RecommendationOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &out, nil
}

// ExtractDecision turns a free-text description of a choice into a draft
// decision with candidate options and their pros/cons.
func (s *AIService) ExtractDecision(ctx context.Context, freeText string) (*ExtractedDecision, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("AI service is not configured")
	}

	optionSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text": {Type: genai.TypeString},
			"pros": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"cons": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"text"},
	}
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    {Type: genai.TypeString, Description: "Short title for the decision"},
			"category": {Type: genai.TypeString, Description: "One-word category, e.g. career, health, finance, lifestyle"},
			"options":  {Type: genai.TypeArray, Items: optionSchema},
		},
		Required: []string{"title", "options"},
	}

	prompt := "Extract the decision the user is describing, including every option they mention with its pros and cons. Text:\n\n" + freeText

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("Gemini request failed: %w", err)
	}

	raw := resp.Text()
	var out ExtractedDecision
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &out, nil
}

func recommendationPrompt(decision *models.Decision) string {
	var b strings.Builder
	b.WriteString("A user is deciding: ")
	b.WriteString(decision.Title)
	if decision.Category != "" {
		b.WriteString(" (category: ")
		b.WriteString(decision.Category)
		b.WriteString(")")
	}
	b.WriteString("\n\nTheir options:\n")
	for _, opt := range decision.Options {
		b.WriteString("- ")
		b.WriteString(opt.Text)
		if len(opt.Pros) > 0 {
			b.WriteString("\n  Pros: ")
			b.WriteString(strings.Join(opt.Pros, "; "))
		}
		if len(opt.Cons) > 0 {
			b.WriteString("\n  Cons: ")
			b.WriteString(strings.Join(opt.Cons, "; "))
		}
		b.WriteString("\n")
	}
	if decision.Type == models.DecisionTypeDeep {
		b.WriteString("\nThis is a significant decision for them. Weigh the tradeoffs carefully before recommending.")
	} else {
		b.WriteString("\nThis is a quick everyday choice. Recommend decisively.")
	}
	return b.String()
}
