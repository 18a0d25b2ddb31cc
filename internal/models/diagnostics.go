package models

import "fmt"

// RowError records a per-row data problem with enough context to locate
// the offending source record.
type RowError struct {
	Row   int    // 1-based data row number in the source file
	Field string // column the problem was found in
	Value string // offending raw value
	Msg   string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %s", e.Row, e.Field, e.Value, e.Msg)
}

// Diagnostics accumulates everything the run excluded or flagged.
// Nothing is retried; the pipeline is a single deterministic pass, so
// this is the only place a dropped record leaves a trace.
type Diagnostics struct {
	ReviewRows int // raw review rows read
	PhaseRows  int // raw phase rows read

	ReviewParseErrors []RowError // unparseable review date or rating
	PhaseParseErrors  []RowError // unparseable phase start date
	UnknownLabels     []RowError // phase label outside the four recognized values
	DuplicateStarts   []RowError // phase rows sharing a start date (last one wins)

	CoverageGap      bool // phase window does not bracket the review window
	DroppedReviews   int  // reviews excluded by the join (date before coverage)
	IncompleteGroups int  // cycle groups discarded for incomplete phase coverage
}

// ParseFailures returns the total count of unparseable rows across both
// source files. Used against the abort threshold: a handful of bad rows
// is isolated dirt, many signals a structural schema problem.
func (d *Diagnostics) ParseFailures() int {
	return len(d.ReviewParseErrors) + len(d.PhaseParseErrors)
}

// Clean reports whether the run saw no data problems at all.
func (d *Diagnostics) Clean() bool {
	return d.ParseFailures() == 0 &&
		len(d.UnknownLabels) == 0 &&
		len(d.DuplicateStarts) == 0 &&
		!d.CoverageGap &&
		d.DroppedReviews == 0
}
