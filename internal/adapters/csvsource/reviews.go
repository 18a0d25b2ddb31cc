// Package csvsource implements the tabular source ports over CSV files
// using gota dataframes. Files are opened with scoped handles released
// on every exit path; all parsing of field values is deferred to the
// normalizer so unparseable text can be reported per row.
package csvsource

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/example/lunarlens/internal/models"
)

// ReviewReader reads the review export. Expected columns: a review
// date (ISO YYYY-MM-DD) and an integer rating; matched by header name
// with a positional fallback for headerless-style exports.
type ReviewReader struct {
	DateColumn   string
	RatingColumn string
}

// NewReviewReader returns a reader with the default column names.
func NewReviewReader() *ReviewReader {
	return &ReviewReader{DateColumn: "date", RatingColumn: "rating"}
}

// ReadReviews loads every data row as raw strings.
func (r *ReviewReader) ReadReviews(ctx context.Context, path string) ([]models.RawReviewRow, error) {
	records, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}

	dateIdx, ratingIdx := columnIndices(records[0], r.DateColumn, r.RatingColumn)
	rows := make([]models.RawReviewRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, models.RawReviewRow{
			Row:    i + 1,
			Date:   field(rec, dateIdx),
			Rating: field(rec, ratingIdx),
		})
	}
	return rows, nil
}

// readTable loads a CSV into a string-typed dataframe and returns its
// records, header row first. Type detection is disabled: every value
// stays a string until the normalizer decides what it is.
func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", df.Error())
	}
	records := df.Records()
	if len(records) < 2 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}
	return records, nil
}

// columnIndices resolves two columns by header name, case-insensitive
// substring match, falling back to positions 0 and 1.
func columnIndices(header []string, first, second string) (int, int) {
	firstIdx, secondIdx := 0, 1
	for i, name := range header {
		n := strings.ToLower(strings.TrimSpace(name))
		if strings.Contains(n, strings.ToLower(first)) {
			firstIdx = i
		}
		if strings.Contains(n, strings.ToLower(second)) {
			secondIdx = i
		}
	}
	return firstIdx, secondIdx
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
