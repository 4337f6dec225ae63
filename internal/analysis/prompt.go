package analysis

import (
	"fmt"
	"strings"

	"tradejournal/internal/models"
)

const promptHeader = `You are an expert trading strategy analyst. Analyze the following trading journal entries to identify recurring trading patterns.
Your goal is to suggest actionable trading strategies based on combinations of Point of Interest (POI), Reaction to POI, Premarket Conditions, and the Entry Type used.

Journal Entries:
`

const promptFooter = `
Based on these entries, identify and include all discernible trading patterns. For each pattern:
1. Specify the 'poiCombination' and 'reactionToPoiCombination'. Compare tag lists as sets; ordering is meaningless.
2. Specify the 'entryType' most commonly or effectively associated with the pattern's success.
3. If premarket conditions are a strong recurring factor, include the 'premarketConditionCombination'.
4. Formulate an actionable 'strategy': state the trade direction (Long/Short), describe the entry idea aligned with the entry type, suggest take-profit considerations from observed successful TP reasons, and stop-loss considerations from observed SL reasons.
5. Provide a 'confidence' score (0-1) reflecting historical profitability: more Win outcomes, especially with favorable RR ratios, mean higher confidence.
6. List 'exampleTrades' supporting the strategy, prioritizing winning examples.
7. If certain psychology tags consistently accompany wins or losses for a pattern, mention this in the 'strategy' description.

Include low-confidence recurring combinations rather than suppressing them. Only return an empty array if absolutely no recurring patterns can be identified.
`

// renderPrompt lays out one line per entry, dates normalized to YYYY-MM-DD.
func renderPrompt(entries []models.JournalEntry) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for _, entry := range entries {
		fmt.Fprintf(&b, "  - Pair: %s, Date: %s, Direction: %s, Premarket Condition(s): %s, POI: %s, Reaction to POI: %s, Entry Type: %s, Session: %s, Psychology: %s, Outcome: %s",
			entry.Pair,
			entry.DateString(),
			entry.Direction,
			tagsOrNA(models.DecodeStrings(entry.PremarketCondition)),
			tagsOrNA(models.DecodeStrings(entry.POI)),
			tagsOrNA(models.DecodeStrings(entry.ReactionToPOI)),
			entry.EntryType,
			entry.Session,
			tagsOrNA(models.DecodeStrings(entry.Psychology)),
			entry.Outcome,
		)
		if entry.RRRatio != nil {
			fmt.Fprintf(&b, ", RR Ratio: %sR", entry.RRRatio.String())
		}
		if tp := models.DecodeStrings(entry.TP); len(tp) > 0 {
			fmt.Fprintf(&b, ", TP: %s", joinTags(tp))
		}
		if sl := models.DecodeStrings(entry.SL); len(sl) > 0 {
			fmt.Fprintf(&b, ", SL: %s", joinTags(sl))
		}
		b.WriteString("\n")
	}
	b.WriteString(promptFooter)
	return b.String()
}

func tagsOrNA(tags []string) string {
	if len(tags) == 0 {
		return "N/A"
	}
	return joinTags(tags)
}
