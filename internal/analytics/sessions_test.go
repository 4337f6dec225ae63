package analytics

import (
	"testing"

	"tradejournal/internal/models"
)

func sessionEntry(session string) models.JournalEntry {
	return models.JournalEntry{Session: session, Outcome: models.OutcomeWin}
}

func TestSessionDistribution_Counts(t *testing.T) {
	entries := []models.JournalEntry{
		sessionEntry("London"),
		sessionEntry("London"),
		sessionEntry("New York"),
		sessionEntry(""),
		sessionEntry("   "),
	}
	slices := SessionDistribution(entries)

	total := 0
	byLabel := map[string]int{}
	for _, s := range slices {
		total += s.Count
		byLabel[s.Session] = s.Count
	}
	if total != len(entries) {
		t.Fatalf("bucket sum=%d want=%d", total, len(entries))
	}
	if byLabel["London"] != 2 {
		t.Fatalf("London=%d want=2", byLabel["London"])
	}
	if byLabel[UnknownSession] != 2 {
		t.Fatalf("Unknown=%d want=2 (blank and whitespace sessions)", byLabel[UnknownSession])
	}
}

func TestSessionDistribution_ColorStability(t *testing.T) {
	a := SessionDistribution([]models.JournalEntry{sessionEntry("Asian"), sessionEntry("London")})
	b := SessionDistribution([]models.JournalEntry{sessionEntry("London"), sessionEntry("Overlap"), sessionEntry("Asian")})

	colors := map[string]string{}
	for _, s := range a {
		colors[s.Session] = s.Color
	}
	for _, s := range b {
		if want, ok := colors[s.Session]; ok && s.Color != want {
			t.Fatalf("session %q color changed across calls: %q vs %q", s.Session, s.Color, want)
		}
	}
	if SessionColor("London") != SessionColor("London") {
		t.Fatalf("color derivation not deterministic")
	}
}

func TestSessionDistribution_DeterministicOrder(t *testing.T) {
	entries := []models.JournalEntry{
		sessionEntry("Asian"),
		sessionEntry("London"),
		sessionEntry("London"),
		sessionEntry("Overlap"),
	}
	a := SessionDistribution(entries)
	b := SessionDistribution(entries)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slice %d differs across calls: %+v vs %+v", i, a[i], b[i])
		}
	}
	if a[0].Session != "London" {
		t.Fatalf("order should put highest count first, got %q", a[0].Session)
	}
}
