package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

func tradeEntry(date, outcome string, rr *decimal.Decimal, poi, reaction []string, entryType string) models.JournalEntry {
	e := models.JournalEntry{
		Pair:          "EURUSD",
		Direction:     models.DirectionLong,
		Outcome:       outcome,
		EntryType:     entryType,
		POI:           models.EncodeStrings(poi),
		ReactionToPOI: models.EncodeStrings(reaction),
		RRRatio:       rr,
	}
	e.TradeDate = mustDate(date)
	return e
}

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestLocalAnalyze_EmptyInput(t *testing.T) {
	engine := &LocalEngine{}
	got, err := engine.Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestLocalAnalyze_GroupsIgnoreTagOrder(t *testing.T) {
	entries := []models.JournalEntry{
		tradeEntry("2024-01-02", models.OutcomeWin, dec("2"), []string{"OB", "FVG"}, []string{"Sweep"}, "Limit"),
		tradeEntry("2024-01-03", models.OutcomeWin, dec("3"), []string{"FVG", "OB"}, []string{"Sweep"}, "Limit"),
		tradeEntry("2024-01-04", models.OutcomeLoss, nil, []string{"Breaker"}, []string{"Rejection"}, "Market"),
	}
	engine := &LocalEngine{}
	got, err := engine.Analyze(context.Background(), entries)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 groups, got %d", len(got))
	}
	top := got[0]
	if len(top.PoiCombination) != 2 || top.PoiCombination[0] != "FVG" || top.PoiCombination[1] != "OB" {
		t.Fatalf("poi combination not canonical: %v", top.PoiCombination)
	}
	if len(top.ExampleTrades) != 2 {
		t.Fatalf("want both winning examples, got %d", len(top.ExampleTrades))
	}
}

func TestLocalAnalyze_SortedByConfidence(t *testing.T) {
	entries := []models.JournalEntry{
		tradeEntry("2024-01-02", models.OutcomeLoss, nil, []string{"Weak"}, []string{"Chop"}, "Market"),
		tradeEntry("2024-01-03", models.OutcomeWin, dec("2"), []string{"Strong"}, []string{"Sweep"}, "Limit"),
		tradeEntry("2024-01-04", models.OutcomeWin, dec("2.5"), []string{"Strong"}, []string{"Sweep"}, "Limit"),
	}
	engine := &LocalEngine{}
	got, err := engine.Analyze(context.Background(), entries)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Fatalf("strategies not sorted by confidence: %v then %v", got[i-1].Confidence, got[i].Confidence)
		}
	}
	if got[0].PoiCombination[0] != "Strong" {
		t.Fatalf("winning pattern should rank first, got %v", got[0].PoiCombination)
	}
	if err := validateStrategies(got); err != nil {
		t.Fatalf("local output should satisfy the schema: %v", err)
	}
}

func TestLocalAnalyze_ExamplesPreferWinsAndCap(t *testing.T) {
	entries := []models.JournalEntry{
		tradeEntry("2024-01-02", models.OutcomeLoss, nil, []string{"OB"}, []string{"Sweep"}, "Limit"),
		tradeEntry("2024-01-03", models.OutcomeWin, dec("2"), []string{"OB"}, []string{"Sweep"}, "Limit"),
		tradeEntry("2024-01-04", models.OutcomeLoss, nil, []string{"OB"}, []string{"Sweep"}, "Limit"),
		tradeEntry("2024-01-05", models.OutcomeWin, dec("3"), []string{"OB"}, []string{"Sweep"}, "Limit"),
		tradeEntry("2024-01-06", models.OutcomeBreakeven, nil, []string{"OB"}, []string{"Sweep"}, "Limit"),
	}
	engine := &LocalEngine{}
	got, err := engine.Analyze(context.Background(), entries)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 group, got %d", len(got))
	}
	examples := got[0].ExampleTrades
	if len(examples) != 3 {
		t.Fatalf("examples should be capped at 3, got %d", len(examples))
	}
	if examples[0].Outcome != models.OutcomeWin || examples[1].Outcome != models.OutcomeWin {
		t.Fatalf("winning trades should lead the examples: %+v", examples)
	}
}

func TestConfidenceScore(t *testing.T) {
	// More wins, losses fixed.
	if confidenceScore(3, 1, 2) <= confidenceScore(2, 1, 2) {
		t.Fatalf("confidence should grow with wins")
	}
	// More losses, wins fixed.
	if confidenceScore(2, 3, 2) > confidenceScore(2, 1, 2) {
		t.Fatalf("confidence should not grow with losses")
	}
	// Better winning RR.
	if confidenceScore(2, 1, 3) <= confidenceScore(2, 1, 1) {
		t.Fatalf("confidence should grow with average winning RR")
	}
	// Bounded.
	for _, c := range []float64{confidenceScore(0, 0, 0), confidenceScore(100, 0, 50), confidenceScore(1, 100, 0.5)} {
		if c < 0 || c >= 1 {
			t.Fatalf("confidence %v outside [0,1)", c)
		}
	}
	if confidenceScore(0, 5, 0) != 0 {
		t.Fatalf("all-loss group should score zero")
	}
}

func TestDescribeMentionsDirectionAndStops(t *testing.T) {
	win := tradeEntry("2024-01-03", models.OutcomeWin, dec("2"), []string{"OB"}, []string{"Sweep"}, "Limit")
	win.Direction = models.DirectionShort
	win.TP = models.EncodeStrings([]string{"Prior low"})
	win.SL = models.EncodeStrings([]string{"Above sweep high"})

	engine := &LocalEngine{}
	got, err := engine.Analyze(context.Background(), []models.JournalEntry{win})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	text := got[0].Strategy
	for _, want := range []string{models.DirectionShort, "Prior low", "Above sweep high", "OB", "Sweep"} {
		if !strings.Contains(text, want) {
			t.Fatalf("strategy text missing %q: %s", want, text)
		}
	}
}
