package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tradejournal/internal/models"
)

// ErrNoOutput means the generation step produced nothing at all. It is
// distinct from a successful empty strategy list, which callers treat as
// "no patterns found".
var ErrNoOutput = errors.New("analysis: provider returned no output")

// ErrInvalidOutput means the generation step produced output that violates
// the strategy schema.
var ErrInvalidOutput = errors.New("analysis: provider output failed schema validation")

// ExampleTrade is one trade cited in support of a suggested strategy.
type ExampleTrade struct {
	Date    string   `json:"date"`
	Outcome string   `json:"outcome"`
	RRRatio *float64 `json:"rrRatio,omitempty"`
}

// SuggestedStrategy is one recurring tag-set combination with a derived
// confidence score and an actionable description. Ephemeral: produced per
// request, never persisted.
type SuggestedStrategy struct {
	PoiCombination                []string       `json:"poiCombination"`
	ReactionToPoiCombination      []string       `json:"reactionToPoiCombination"`
	EntryType                     string         `json:"entryType"`
	PremarketConditionCombination []string       `json:"premarketConditionCombination,omitempty"`
	Strategy                      string         `json:"strategy"`
	Confidence                    float64        `json:"confidence"`
	ExampleTrades                 []ExampleTrade `json:"exampleTrades"`
}

// Analyzer turns a user's journal into suggested strategies.
type Analyzer interface {
	Analyze(ctx context.Context, entries []models.JournalEntry) ([]SuggestedStrategy, error)
}

type analysisOutput struct {
	SuggestedStrategies []SuggestedStrategy `json:"suggestedStrategies"`
}

// decodeOutput parses and validates a provider response. Accepts the
// {"suggestedStrategies": [...]} envelope or a bare array.
func decodeOutput(data []byte) ([]SuggestedStrategy, error) {
	var wrapped analysisOutput
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.SuggestedStrategies != nil {
		if err := validateStrategies(wrapped.SuggestedStrategies); err != nil {
			return nil, err
		}
		return wrapped.SuggestedStrategies, nil
	}
	var bare []SuggestedStrategy
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if err := validateStrategies(bare); err != nil {
		return nil, err
	}
	return bare, nil
}

func validateStrategies(items []SuggestedStrategy) error {
	for i, item := range items {
		if len(item.PoiCombination) == 0 {
			return fmt.Errorf("%w: strategy %d has no poiCombination", ErrInvalidOutput, i)
		}
		if len(item.ReactionToPoiCombination) == 0 {
			return fmt.Errorf("%w: strategy %d has no reactionToPoiCombination", ErrInvalidOutput, i)
		}
		if item.EntryType == "" {
			return fmt.Errorf("%w: strategy %d has no entryType", ErrInvalidOutput, i)
		}
		if item.Strategy == "" {
			return fmt.Errorf("%w: strategy %d has an empty strategy description", ErrInvalidOutput, i)
		}
		if item.Confidence < 0 || item.Confidence > 1 {
			return fmt.Errorf("%w: strategy %d confidence %v outside [0,1]", ErrInvalidOutput, i, item.Confidence)
		}
	}
	return nil
}
