package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// Field identifies one journal-entry form field. Settings rows are keyed by
// (owner, field) so each vocabulary lives in its own typed row instead of a
// string-concatenated document key.
type Field string

const (
	FieldDate               Field = "date"
	FieldPair               Field = "pair"
	FieldDirection          Field = "direction"
	FieldPremarketCondition Field = "premarketCondition"
	FieldPOI                Field = "poi"
	FieldReactionToPOI      Field = "reactionToPoi"
	FieldTP                 Field = "tp"
	FieldSL                 Field = "sl"
	FieldEntryType          Field = "entryType"
	FieldSession            Field = "session"
	FieldPsychology         Field = "psychology"
	FieldOutcome            Field = "outcome"
	FieldRRRatio            Field = "rrRatio"
	FieldChartURL           Field = "chartUrl"
)

// AllFields lists every form field in display order.
var AllFields = []Field{
	FieldDate,
	FieldPair,
	FieldDirection,
	FieldPremarketCondition,
	FieldPOI,
	FieldReactionToPOI,
	FieldTP,
	FieldSL,
	FieldEntryType,
	FieldSession,
	FieldPsychology,
	FieldOutcome,
	FieldRRRatio,
	FieldChartURL,
}

func ParseField(s string) (Field, error) {
	f := Field(strings.TrimSpace(s))
	for _, known := range AllFields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// HasVocabulary reports whether the field carries a selectable option list.
// rrRatio and chartUrl are free-input fields with no vocabulary.
func (f Field) HasVocabulary() bool {
	switch f {
	case FieldRRRatio, FieldChartURL, FieldDate:
		return false
	}
	return true
}

// MultiSelect reports whether the field holds a tag set rather than a single value.
func (f Field) MultiSelect() bool {
	switch f {
	case FieldPremarketCondition, FieldPOI, FieldReactionToPOI, FieldPsychology, FieldTP, FieldSL:
		return true
	}
	return false
}

// DefaultOptions is the global seed vocabulary handed to every new owner on
// first access.
func DefaultOptions(f Field) []string {
	switch f {
	case FieldPair:
		return []string{"EUR/USD", "GBP/USD", "USD/JPY", "BTC/USD", "ETH/USD"}
	case FieldDirection:
		return []string{"Long", "Short"}
	case FieldPremarketCondition:
		return []string{"Fair Value Area", "Sweep", "Run", "Fair Value Gap"}
	case FieldPOI:
		return []string{"Order Block", "Fair Value Gap", "Liquidity Pool", "Support Level", "Resistance Level", "Trendline"}
	case FieldReactionToPOI:
		return []string{"Strong Rejection", "Consolidation", "Breakthrough", "Slow Reaction", "No Reaction"}
	case FieldEntryType:
		return []string{"Market", "Limit", "Stop", "Scaled Entry"}
	case FieldSession:
		return []string{"London", "New York", "Asian", "Overlap"}
	case FieldPsychology:
		return []string{"Confident", "Fearful", "Disciplined", "Impatient", "Greedy", "FOMO", "Neutral", "Anxious", "Overconfident"}
	case FieldOutcome:
		return []string{"Win", "Loss", "Breakeven"}
	case FieldTP:
		return []string{"Structure", "Liquidity", "Imbalance Fill", "Fibonacci Level"}
	case FieldSL:
		return []string{"Structure", "Volatility Based", "Fixed Pips", "Previous Candle High/Low"}
	}
	return nil
}

// DecodeStrings unpacks a JSON string-array column. Scalars become a
// one-element slice; anything else decodes to nil.
func DecodeStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && strings.TrimSpace(single) != "" {
		return []string{single}
	}
	return nil
}

// EncodeStrings packs a string slice into a JSON column. Nil input encodes as
// an empty array, never as JSON null.
func EncodeStrings(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}
