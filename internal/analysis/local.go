package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tradejournal/internal/models"
)

// LocalEngine is the deterministic pattern analyzer. It groups entries by the
// {poi, reactionToPoi, entryType, premarketCondition} tag-set combination and
// scores each group from its win/loss record and winning RR. Inclusive
// policy: every combination that appears is emitted, with the confidence
// score carrying the strength signal; no minimum occurrence threshold.
type LocalEngine struct {
	// MaxExamples caps the example trades emitted per strategy. Zero means
	// the default of 3.
	MaxExamples int
}

func (e *LocalEngine) Analyze(ctx context.Context, entries []models.JournalEntry) ([]SuggestedStrategy, error) {
	if len(entries) == 0 {
		return []SuggestedStrategy{}, nil
	}

	groups := map[string]*patternGroup{}
	var keys []string
	for _, entry := range entries {
		poi := canonicalSet(models.DecodeStrings(entry.POI))
		reaction := canonicalSet(models.DecodeStrings(entry.ReactionToPOI))
		premarket := canonicalSet(models.DecodeStrings(entry.PremarketCondition))
		key := groupKey(poi, reaction, entry.EntryType, premarket)
		g, ok := groups[key]
		if !ok {
			g = &patternGroup{
				poi:       poi,
				reaction:  reaction,
				entryType: entry.EntryType,
				premarket: premarket,
			}
			groups[key] = g
			keys = append(keys, key)
		}
		g.entries = append(g.entries, entry)
	}
	sort.Strings(keys)

	maxExamples := e.MaxExamples
	if maxExamples <= 0 {
		maxExamples = 3
	}

	out := make([]SuggestedStrategy, 0, len(keys))
	for _, key := range keys {
		out = append(out, groups[key].strategy(maxExamples))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out, nil
}

type patternGroup struct {
	poi       []string
	reaction  []string
	entryType string
	premarket []string
	entries   []models.JournalEntry
}

func (g *patternGroup) strategy(maxExamples int) SuggestedStrategy {
	var wins, losses int
	var winRRSum float64
	var winRRCount int
	for _, entry := range g.entries {
		switch entry.Outcome {
		case models.OutcomeWin:
			wins++
			if entry.RRRatio != nil && entry.RRRatio.IsPositive() {
				winRRSum += entry.RRRatio.InexactFloat64()
				winRRCount++
			}
		case models.OutcomeLoss:
			losses++
		}
	}
	avgWinRR := 0.0
	if winRRCount > 0 {
		avgWinRR = winRRSum / float64(winRRCount)
	}

	s := SuggestedStrategy{
		PoiCombination:           g.poi,
		ReactionToPoiCombination: g.reaction,
		EntryType:                g.entryType,
		Strategy:                 g.describe(),
		Confidence:               confidenceScore(wins, losses, avgWinRR),
		ExampleTrades:            g.examples(maxExamples),
	}
	if len(g.premarket) > 0 {
		s.PremarketConditionCombination = g.premarket
	}
	return s
}

// confidenceScore maps a group's record into [0,1). Strictly increasing in
// wins (losses fixed) and in average winning RR; non-increasing in losses.
// Breakeven trades are excluded so they neither build nor dilute confidence.
func confidenceScore(wins, losses int, avgWinRR float64) float64 {
	if wins < 0 {
		wins = 0
	}
	if losses < 0 {
		losses = 0
	}
	if avgWinRR < 0 {
		avgWinRR = 0
	}
	winRate := float64(wins) / float64(wins+losses+1)
	rrBoost := avgWinRR / (avgWinRR + 1)
	return winRate * (0.7 + 0.3*rrBoost)
}

func (g *patternGroup) describe() string {
	winners := make([]models.JournalEntry, 0, len(g.entries))
	for _, entry := range g.entries {
		if entry.Outcome == models.OutcomeWin {
			winners = append(winners, entry)
		}
	}
	source := winners
	if len(source) == 0 {
		source = g.entries
	}

	direction := majorityDirection(source)
	tp := observedTags(source, func(e models.JournalEntry) []string { return models.DecodeStrings(e.TP) })
	sl := observedTags(g.entries, func(e models.JournalEntry) []string { return models.DecodeStrings(e.SL) })

	var b strings.Builder
	fmt.Fprintf(&b, "%s setup: take a %s entry when price reacts to %s with %s",
		direction, strings.ToLower(g.entryType), joinTags(g.poi), joinTags(g.reaction))
	if len(g.premarket) > 0 {
		fmt.Fprintf(&b, " after a %s premarket", joinTags(g.premarket))
	}
	b.WriteString(".")
	if len(tp) > 0 {
		fmt.Fprintf(&b, " Take profit toward %s.", joinTags(tp))
	}
	if len(sl) > 0 {
		fmt.Fprintf(&b, " Place the stop loss per %s.", joinTags(sl))
	}
	if psych := dominantWinningPsychology(winners); psych != "" {
		fmt.Fprintf(&b, " Winning occurrences were typically tagged %s.", psych)
	}
	return b.String()
}

// examples prefers winning trades and keeps chronological order within each
// outcome class. The display list is capped; the full group stays available
// through the occurrence counts baked into the confidence.
func (g *patternGroup) examples(max int) []ExampleTrade {
	byPreference := make([]models.JournalEntry, 0, len(g.entries))
	for _, entry := range g.entries {
		if entry.Outcome == models.OutcomeWin {
			byPreference = append(byPreference, entry)
		}
	}
	for _, entry := range g.entries {
		if entry.Outcome != models.OutcomeWin {
			byPreference = append(byPreference, entry)
		}
	}
	if len(byPreference) > max {
		byPreference = byPreference[:max]
	}
	out := make([]ExampleTrade, 0, len(byPreference))
	for _, entry := range byPreference {
		ex := ExampleTrade{Date: entry.DateString(), Outcome: entry.Outcome}
		if entry.RRRatio != nil {
			v := entry.RRRatio.InexactFloat64()
			ex.RRRatio = &v
		}
		out = append(out, ex)
	}
	return out
}

func majorityDirection(entries []models.JournalEntry) string {
	var long, short int
	for _, entry := range entries {
		switch entry.Direction {
		case models.DirectionLong:
			long++
		case models.DirectionShort:
			short++
		}
	}
	if short > long {
		return models.DirectionShort
	}
	return models.DirectionLong
}

// observedTags collects tags in frequency order, most common first.
func observedTags(entries []models.JournalEntry, pick func(models.JournalEntry) []string) []string {
	counts := map[string]int{}
	var order []string
	for _, entry := range entries {
		for _, tag := range pick(entry) {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := counts[tag]; !ok {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}

// dominantWinningPsychology reports a psychology tag present on at least half
// of the winning trades, when there are enough wins to call it a pattern.
func dominantWinningPsychology(winners []models.JournalEntry) string {
	if len(winners) < 2 {
		return ""
	}
	tags := observedTags(winners, func(e models.JournalEntry) []string { return models.DecodeStrings(e.Psychology) })
	if len(tags) == 0 {
		return ""
	}
	count := 0
	for _, entry := range winners {
		for _, tag := range models.DecodeStrings(entry.Psychology) {
			if tag == tags[0] {
				count++
				break
			}
		}
	}
	if count*2 >= len(winners) {
		return tags[0]
	}
	return ""
}

// canonicalSet trims, dedupes and sorts a tag list so two entries with the
// same tags in different order land in the same group.
func canonicalSet(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func groupKey(poi, reaction []string, entryType string, premarket []string) string {
	parts := []string{
		strings.Join(poi, "\x1f"),
		strings.Join(reaction, "\x1f"),
		entryType,
		strings.Join(premarket, "\x1f"),
	}
	return strings.Join(parts, "\x1e")
}

func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
