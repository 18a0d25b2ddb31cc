package models

// RawReviewRow is a review row as read from the source file, before
// normalization. Fields are kept as strings so parse failures can be
// reported with the offending text.
type RawReviewRow struct {
	Row    int // 1-based data row number
	Date   string
	Rating string
}

// RawPhaseRow is a moon-phase row as read from the source file.
type RawPhaseRow struct {
	Row   int
	Date  string
	Label string
}
