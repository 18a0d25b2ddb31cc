// Package temporal assigns each review the moon phase in effect on its
// date. A phase is a half-open interval [start_date, next_start_date):
// the lookup is "most recent phase start_date <= review date", with an
// inclusive lower bound, implemented as a sort-then-binary-search
// rather than a per-review rescan of the phase table.
package temporal

import (
	"sort"

	"github.com/example/lunarlens/internal/models"
)

// JoinStats reports what the join excluded or deduplicated.
type JoinStats struct {
	// DroppedBeforeCoverage counts reviews dated before the earliest
	// phase start. They have no phase in effect and are excluded from
	// the output, never nulled.
	DroppedBeforeCoverage int
	// DuplicateStarts lists phase start dates shared by more than one
	// row. Start dates are unique by construction in the source data,
	// so a duplicate is a data error; the row appearing last in input
	// order wins deterministically.
	DuplicateStarts []models.RowError
}

// Join attaches to each review the PhaseRange with the maximum
// StartDate not exceeding the review's date. Output order follows the
// input review order; callers needing date order must sort. Runs in
// O(P log P + R log P).
func Join(reviews []models.Review, phases []models.PhaseRange) ([]models.JoinedRecord, JoinStats) {
	var stats JoinStats
	if len(phases) == 0 {
		stats.DroppedBeforeCoverage = len(reviews)
		return nil, stats
	}

	sorted := dedupe(phases, &stats)

	joined := make([]models.JoinedRecord, 0, len(reviews))
	for _, r := range reviews {
		// First index whose start date is after the review date; the
		// phase in effect is the one just before it.
		idx := sort.Search(len(sorted), func(i int) bool {
			return sorted[i].StartDate.After(r.Date)
		})
		if idx == 0 {
			stats.DroppedBeforeCoverage++
			continue
		}
		p := sorted[idx-1]
		joined = append(joined, models.JoinedRecord{
			Date:   r.Date,
			Rating: r.Rating,
			Label:  p.Label,
			Code:   p.Code,
		})
	}
	return joined, stats
}

// dedupe sorts phases by start date, keeping input order among equal
// start dates stable so the last input row wins after collapsing.
func dedupe(phases []models.PhaseRange, stats *JoinStats) []models.PhaseRange {
	sorted := make([]models.PhaseRange, len(phases))
	copy(sorted, phases)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	out := sorted[:0]
	for _, p := range sorted {
		if n := len(out); n > 0 && out[n-1].StartDate.Equal(p.StartDate) {
			stats.DuplicateStarts = append(stats.DuplicateStarts, models.RowError{
				Field: "date",
				Value: p.StartDate.Format("2006-01-02"),
				Msg:   "duplicate phase start date, keeping last occurrence",
			})
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
