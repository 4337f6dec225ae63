package analysis

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"tradejournal/internal/models"
)

// GeminiEngine asks the external completion provider for strategies,
// constrained to the suggested-strategy JSON schema. An empty response and a
// schema-violating response fail with distinct errors; neither is ever
// downgraded to an empty success.
type GeminiEngine struct {
	Client *genai.Client
	Model  string
}

func (g *GeminiEngine) Analyze(ctx context.Context, entries []models.JournalEntry) ([]SuggestedStrategy, error) {
	if g == nil || g.Client == nil {
		return nil, fmt.Errorf("analysis: gemini client not configured")
	}

	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, genai.Text(renderPrompt(entries)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   outputSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("analysis: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, ErrNoOutput
	}
	return decodeOutput([]byte(text))
}

func outputSchema() *genai.Schema {
	exampleTrade := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"date":    {Type: genai.TypeString, Description: "The date of the example trade (YYYY-MM-DD)."},
			"outcome": {Type: genai.TypeString, Description: "The outcome of the example trade."},
			"rrRatio": {Type: genai.TypeNumber, Description: "The RR ratio of the example trade, if available."},
		},
		Required: []string{"date", "outcome"},
	}

	strategy := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"poiCombination": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "The specific Point of Interest (POI) combination.",
			},
			"reactionToPoiCombination": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "The specific Reaction to POI combination.",
			},
			"entryType": {
				Type:        genai.TypeString,
				Description: "The entry type most commonly or effectively associated with this pattern.",
			},
			"premarketConditionCombination": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "The premarket condition combination, if a strong factor.",
			},
			"strategy": {
				Type:        genai.TypeString,
				Description: "A detailed, actionable trading strategy including direction, entry idea, TP and SL considerations.",
			},
			"confidence": {
				Type:        genai.TypeNumber,
				Description: "Confidence score (0-1) based on past wins and their RR ratios.",
			},
			"exampleTrades": {
				Type:        genai.TypeArray,
				Items:       exampleTrade,
				Description: "Example trades demonstrating this strategy, preferably winners.",
			},
		},
		Required: []string{"poiCombination", "reactionToPoiCombination", "entryType", "strategy", "confidence", "exampleTrades"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestedStrategies": {
				Type:  genai.TypeArray,
				Items: strategy,
			},
		},
		Required: []string{"suggestedStrategies"},
	}
}
