package models

import "time"

// Rating bounds for a review score.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is a single review observation: the day it was posted and its
// integer star rating. Immutable once loaded.
type Review struct {
	Date   time.Time
	Rating int
}

// JoinedRecord is a Review annotated with the moon phase in effect on
// its date: the PhaseRange with the largest StartDate <= Date. Reviews
// with no qualifying PhaseRange are dropped during the join, not nulled.
type JoinedRecord struct {
	Date   time.Time
	Rating int
	Label  string
	Code   PhaseCode
}

// CycleGroup is a maximal contiguous run of date-sorted JoinedRecords
// spanning one pass through the phase codes. A group is complete only
// if the set of codes observed in Records is exactly {1,2,3,4};
// completeness is set coverage, not sequence shape, since multiple
// reviews can share a phase window.
type CycleGroup struct {
	ID      int
	Records []JoinedRecord
}

// CodeSet returns the set of phase codes observed in the group.
func (g CycleGroup) CodeSet() map[PhaseCode]bool {
	set := make(map[PhaseCode]bool, 4)
	for _, r := range g.Records {
		set[r.Code] = true
	}
	return set
}

// Complete reports whether the group covers all four phases.
func (g CycleGroup) Complete() bool {
	set := g.CodeSet()
	return len(set) == 4 &&
		set[PhaseNewMoon] && set[PhaseFirstQuarter] &&
		set[PhaseFullMoon] && set[PhaseLastQuarter]
}

// TotalRating sums the ratings in the group.
func (g CycleGroup) TotalRating() int {
	total := 0
	for _, r := range g.Records {
		total += r.Rating
	}
	return total
}
