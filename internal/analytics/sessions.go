package analytics

import (
	"hash/fnv"
	"sort"
	"strings"

	"tradejournal/internal/models"
)

// UnknownSession is the bucket for entries with a blank session field.
const UnknownSession = "Unknown"

// sessionPalette holds the chart colors slices are assigned from. A label
// always hashes to the same palette slot, so a session keeps its color across
// reloads and unrelated data changes.
var sessionPalette = []string{
	"#2563eb",
	"#16a34a",
	"#d97706",
	"#dc2626",
	"#7c3aed",
	"#0891b2",
	"#db2777",
	"#65a30d",
}

// SessionSlice is one bucket of the session distribution chart.
type SessionSlice struct {
	Session string `json:"session"`
	Count   int    `json:"count"`
	Color   string `json:"color"`
}

// SessionDistribution counts entries per trading session. Missing or
// whitespace-only sessions land in the Unknown bucket. Output is ordered by
// count descending, then label, so repeated calls are identical.
func SessionDistribution(entries []models.JournalEntry) []SessionSlice {
	counts := map[string]int{}
	for _, entry := range entries {
		label := strings.TrimSpace(entry.Session)
		if label == "" {
			label = UnknownSession
		}
		counts[label]++
	}

	slices := make([]SessionSlice, 0, len(counts))
	for label, count := range counts {
		slices = append(slices, SessionSlice{
			Session: label,
			Count:   count,
			Color:   SessionColor(label),
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Session < slices[j].Session
	})
	return slices
}

// SessionColor derives a stable color for a session label.
func SessionColor(label string) string {
	h := fnv.New32a()
	h.Write([]byte(label))
	return sessionPalette[h.Sum32()%uint32(len(sessionPalette))]
}
