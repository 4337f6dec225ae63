package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rr(v string) *decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return &d
}

func entry(date, outcome string, ratio *decimal.Decimal) models.JournalEntry {
	return models.JournalEntry{
		TradeDate: day(date),
		Outcome:   outcome,
		RRRatio:   ratio,
	}
}

func TestEquityCurve_OutOfOrderInput(t *testing.T) {
	entries := []models.JournalEntry{
		entry("2024-01-01", models.OutcomeWin, rr("2")),
		entry("2024-01-03", models.OutcomeLoss, rr("1")),
		entry("2024-01-02", models.OutcomeBreakeven, nil),
	}
	points := EquityCurve(entries, time.Now())
	if len(points) != 4 {
		t.Fatalf("len=%d want=4", len(points))
	}
	want := []string{"0", "2", "2", "1"}
	for i, w := range want {
		if points[i].CumulativeRR.String() != w {
			t.Fatalf("point %d cumulative=%s want=%s", i, points[i].CumulativeRR.String(), w)
		}
	}
	if points[0].Label != "Start" {
		t.Fatalf("baseline label=%q want=Start", points[0].Label)
	}
	if points[0].Date != "2023-12-31" {
		t.Fatalf("baseline date=%q want one day before earliest trade", points[0].Date)
	}
	if points[2].Date != "2024-01-02" {
		t.Fatalf("sorted order broken: point 2 date=%q", points[2].Date)
	}
}

func TestEquityCurve_LengthAndBaseline(t *testing.T) {
	for n := 0; n < 5; n++ {
		entries := make([]models.JournalEntry, 0, n)
		for i := 0; i < n; i++ {
			entries = append(entries, entry("2024-02-01", models.OutcomeWin, rr("1.5")))
		}
		points := EquityCurve(entries, time.Now())
		if len(points) != n+1 {
			t.Fatalf("n=%d len=%d want=%d", n, len(points), n+1)
		}
		if !points[0].CumulativeRR.IsZero() {
			t.Fatalf("baseline cumulative=%s want=0", points[0].CumulativeRR.String())
		}
	}
}

func TestEquityCurve_PerEntryDeltas(t *testing.T) {
	entries := []models.JournalEntry{
		entry("2024-03-01", models.OutcomeWin, rr("2.5")),
		entry("2024-03-02", models.OutcomeLoss, rr("1.25")),
		entry("2024-03-03", models.OutcomeBreakeven, rr("3")),
		entry("2024-03-04", models.OutcomeWin, nil),
	}
	points := EquityCurve(entries, time.Now())
	deltas := []string{"2.5", "-1.25", "0", "0"}
	for i, want := range deltas {
		got := points[i+1].CumulativeRR.Sub(points[i].CumulativeRR)
		if got.String() != want {
			t.Fatalf("entry %d delta=%s want=%s", i, got.String(), want)
		}
	}
}

func TestEquityCurve_InputOrderInvariance(t *testing.T) {
	entries := []models.JournalEntry{
		entry("2024-01-05", models.OutcomeWin, rr("1")),
		entry("2024-01-01", models.OutcomeLoss, rr("2")),
		entry("2024-01-09", models.OutcomeWin, rr("0.5")),
		entry("2024-01-03", models.OutcomeBreakeven, nil),
		entry("2024-01-07", models.OutcomeLoss, rr("1.5")),
	}
	now := time.Now()
	base := EquityCurve(entries, now)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]models.JournalEntry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := EquityCurve(shuffled, now)
		if len(got) != len(base) {
			t.Fatalf("trial %d len=%d want=%d", trial, len(got), len(base))
		}
		for i := range base {
			if !got[i].CumulativeRR.Equal(base[i].CumulativeRR) || got[i].Date != base[i].Date {
				t.Fatalf("trial %d point %d = %+v want %+v", trial, i, got[i], base[i])
			}
		}
	}
}

func TestEquityCurve_Rounding(t *testing.T) {
	entries := []models.JournalEntry{
		entry("2024-04-01", models.OutcomeWin, rr("1.005")),
	}
	points := EquityCurve(entries, time.Now())
	if points[1].CumulativeRR.Exponent() < -2 {
		t.Fatalf("cumulative=%s want 2dp rounding", points[1].CumulativeRR.String())
	}
}

func TestInsufficientData(t *testing.T) {
	empty := EquityCurve(nil, time.Now())
	if !InsufficientData(empty) {
		t.Fatalf("baseline-only curve should be insufficient")
	}
	one := EquityCurve([]models.JournalEntry{entry("2024-01-01", models.OutcomeWin, rr("1"))}, time.Now())
	if InsufficientData(one) {
		t.Fatalf("curve with a trade should be sufficient")
	}
}
