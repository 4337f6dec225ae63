package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

// EquityPoint is one step of the cumulative risk-adjusted performance walk.
type EquityPoint struct {
	Index        int             `json:"index"`
	CumulativeRR decimal.Decimal `json:"cumulativeRR"`
	Date         string          `json:"date"`
	Label        string          `json:"label"`
}

// EquityCurve walks the owner's trades in chronological order and accumulates
// signed RR. Wins add their RR, losses subtract it, breakeven and missing RR
// contribute zero. A baseline point at value 0 is prepended, dated one day
// before the earliest trade (now when there are no trades). Pure function:
// identical input yields identical output, and only trade dates matter for
// ordering (ties keep fetch order).
func EquityCurve(entries []models.JournalEntry, now time.Time) []EquityPoint {
	sorted := make([]models.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TradeDate.Before(sorted[j].TradeDate)
	})

	baselineDate := now
	if len(sorted) > 0 {
		baselineDate = sorted[0].TradeDate.AddDate(0, 0, -1)
	}

	points := make([]EquityPoint, 0, len(sorted)+1)
	points = append(points, EquityPoint{
		Index:        0,
		CumulativeRR: decimal.Zero,
		Date:         baselineDate.Format("2006-01-02"),
		Label:        "Start",
	})

	running := decimal.Zero
	for i, entry := range sorted {
		running = running.Add(rrContribution(entry))
		points = append(points, EquityPoint{
			Index:        i + 1,
			CumulativeRR: running.Round(2),
			Date:         entry.DateString(),
			Label:        fmt.Sprintf("Trade %d (%s)", i+1, entry.TradeDate.Format("Jan 02")),
		})
	}
	return points
}

func rrContribution(entry models.JournalEntry) decimal.Decimal {
	if entry.RRRatio == nil || !entry.RRRatio.IsPositive() {
		return decimal.Zero
	}
	switch entry.Outcome {
	case models.OutcomeWin:
		return *entry.RRRatio
	case models.OutcomeLoss:
		return entry.RRRatio.Neg()
	}
	return decimal.Zero
}

// InsufficientData reports the baseline-only state, which callers surface
// differently from a plotted curve.
func InsufficientData(points []EquityPoint) bool {
	return len(points) <= 1
}
