// Package stats aggregates mood records into the statistics dashboard.
package stats

import (
	"fmt"
	"math"

	"wellspring/internal/catalog"
	"wellspring/internal/journal"
)

// Summary counts mood records per category.
type Summary struct {
	Counts       map[catalog.Category]int
	Total        int // records counted in Counts
	TotalRituals int // completed rituals
}

// Compute tallies records. Records with an unknown mood are ignored.
func Compute(records []journal.MoodRecord) Summary {
	s := Summary{Counts: make(map[catalog.Category]int, len(catalog.Categories))}
	for _, c := range catalog.Categories {
		s.Counts[c] = 0
	}
	for _, r := range records {
		if !r.Mood.Valid() {
			continue
		}
		s.Counts[r.Mood]++
		s.Total++
	}
	s.TotalRituals = s.Total
	return s
}

// Percentage returns round(100*count/total), or 0 when total is 0.
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}

// Percent is the share of c among counted records.
func (s Summary) Percent(c catalog.Category) int {
	return Percentage(s.Counts[c], s.Total)
}

// ShareText is the statistics share message.
func ShareText(s Summary) string {
	return fmt.Sprintf("I've completed %d daily rituals! My mood statistics: Grounded %d%%, Driven %d%%, In Flow %d%%.",
		s.TotalRituals, s.Percent(catalog.Grounded), s.Percent(catalog.Driven), s.Percent(catalog.Flow))
}
