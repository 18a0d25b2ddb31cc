// Package cycles partitions a date-sorted joined series into
// consecutive lunation groups, each spanning one full pass through the
// four phase codes.
package cycles

import "github.com/example/lunarlens/internal/models"

// Partition is the result of grouping: the complete cycle groups plus
// the records excluded for sitting in an incomplete group. The union of
// Complete's records and Excluded equals the input sequence exactly; no
// record is duplicated or silently lost.
type Partition struct {
	Complete []models.CycleGroup
	// Excluded holds records from discarded incomplete groups: the
	// partial leading group before the first 4→1 wrap, the partial
	// trailing group after the last, and any group whose cycle skipped
	// a phase due to missing source data. They remain available to the
	// ungrouped per-phase analysis.
	Excluded []models.JoinedRecord
	// Discarded counts the incomplete groups that were dropped.
	Discarded int
}

// Group scans records once, left to right, carrying (group id,
// previous code). A transition from code 4 back to code 1 starts a new
// group; the very first record opens group 0 regardless of its code,
// which is also what decides the leading partial group. Duplicate or
// out-of-order codes within a group are fine: completeness is set
// coverage over {1,2,3,4}, not sequence shape.
//
// Records must already be sorted ascending by date; Group does not sort
// and produces meaningless boundaries on unsorted input.
func Group(records []models.JoinedRecord) Partition {
	var part Partition
	if len(records) == 0 {
		return part
	}

	groups := []models.CycleGroup{{ID: 0}}
	prev := records[0].Code
	groups[0].Records = append(groups[0].Records, records[0])

	for _, r := range records[1:] {
		if prev == models.PhaseLastQuarter && r.Code == models.PhaseNewMoon {
			groups = append(groups, models.CycleGroup{ID: len(groups)})
		}
		cur := &groups[len(groups)-1]
		cur.Records = append(cur.Records, r)
		prev = r.Code
	}

	for _, g := range groups {
		if g.Complete() {
			part.Complete = append(part.Complete, g)
			continue
		}
		part.Excluded = append(part.Excluded, g.Records...)
		part.Discarded++
	}

	// Renumber so complete groups are contiguous from 0; diagnostics
	// about discarded groups live in Discarded, not in the ids.
	for i := range part.Complete {
		part.Complete[i].ID = i
	}
	return part
}
