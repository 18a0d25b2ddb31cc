// Package normalize converts raw source rows into canonical domain
// types: ISO review dates and locale-formatted phase dates both land on
// time.Time at UTC midnight, phase labels become integer codes, and
// ratings are bounds-checked. All functions are pure; running them
// twice on the same input yields identical output.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/example/lunarlens/internal/models"
)

// Date layouts accepted per source. Reviews arrive pre-formatted as ISO
// dates; phase ranges arrive locale-formatted, with and without zero
// padding depending on the export.
const isoLayout = "2006-01-02"

var phaseLayouts = []string{"01/02/2006", "1/2/2006"}

// Reviews normalizes raw review rows. Rows that fail to parse are
// reported via RowError and skipped; the caller decides whether the
// failure count crosses the abort threshold.
func Reviews(rows []models.RawReviewRow) ([]models.Review, []models.RowError) {
	var (
		reviews []models.Review
		errs    []models.RowError
	)
	for _, row := range rows {
		date, err := time.ParseInLocation(isoLayout, strings.TrimSpace(row.Date), time.UTC)
		if err != nil {
			errs = append(errs, models.RowError{
				Row: row.Row, Field: "date", Value: row.Date,
				Msg: "not an ISO date (YYYY-MM-DD)",
			})
			continue
		}

		rating, err := strconv.Atoi(strings.TrimSpace(row.Rating))
		if err != nil || rating < models.RatingMin || rating > models.RatingMax {
			errs = append(errs, models.RowError{
				Row: row.Row, Field: "rating", Value: row.Rating,
				Msg: "not an integer in 1..5",
			})
			continue
		}

		reviews = append(reviews, models.Review{Date: date, Rating: rating})
	}
	return reviews, errs
}

// PhaseResult carries the normalized phase table plus the per-row
// problems surfaced along the way. Unknown labels are kept separate
// from parse errors: a bad date makes the row unusable and it is
// skipped, while an unrecognized label keeps its row (coded as
// PhaseUnknown) but is flagged as a data-entry error in the source
// file that the operator must see.
type PhaseResult struct {
	Phases        []models.PhaseRange
	ParseErrors   []models.RowError
	UnknownLabels []models.RowError
}

// Phases normalizes raw phase rows: parses MM/DD/YYYY start dates and
// maps labels to codes via the fixed four-phase lookup.
func Phases(rows []models.RawPhaseRow) PhaseResult {
	var res PhaseResult
	for _, row := range rows {
		date, ok := parsePhaseDate(row.Date)
		if !ok {
			res.ParseErrors = append(res.ParseErrors, models.RowError{
				Row: row.Row, Field: "date", Value: row.Date,
				Msg: "not a MM/DD/YYYY date",
			})
			continue
		}

		label := strings.TrimSpace(row.Label)
		code, known := models.ParsePhaseLabel(label)
		if !known {
			res.UnknownLabels = append(res.UnknownLabels, models.RowError{
				Row: row.Row, Field: "phase", Value: row.Label,
				Msg: "unrecognized phase label",
			})
		}

		res.Phases = append(res.Phases, models.PhaseRange{
			StartDate: date,
			Label:     label,
			Code:      code,
		})
	}
	return res
}

func parsePhaseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range phaseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CoverageBrackets reports whether the phase table fully brackets the
// review dates: min(phase start) <= min(review date) and
// max(phase start) >= max(review date). This is a precondition check,
// not a correction; when it fails the join will legitimately drop
// reviews and the run must report how many.
func CoverageBrackets(reviews []models.Review, phases []models.PhaseRange) bool {
	if len(reviews) == 0 || len(phases) == 0 {
		return false
	}
	minReview, maxReview := reviews[0].Date, reviews[0].Date
	for _, r := range reviews[1:] {
		if r.Date.Before(minReview) {
			minReview = r.Date
		}
		if r.Date.After(maxReview) {
			maxReview = r.Date
		}
	}
	minPhase, maxPhase := phases[0].StartDate, phases[0].StartDate
	for _, p := range phases[1:] {
		if p.StartDate.Before(minPhase) {
			minPhase = p.StartDate
		}
		if p.StartDate.After(maxPhase) {
			maxPhase = p.StartDate
		}
	}
	return !minPhase.After(minReview) && !maxPhase.Before(maxReview)
}
