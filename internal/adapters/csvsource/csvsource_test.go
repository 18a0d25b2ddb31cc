package csvsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestReadReviews(t *testing.T) {
	path := writeFile(t, "reviews.csv", `date,rating
2024-01-10,4
2024-01-11,5
not-a-date,2
`)

	rows, err := NewReviewReader().ReadReviews(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadReviews() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Raw values pass through untouched; normalization decides validity.
	if rows[0].Date != "2024-01-10" || rows[0].Rating != "4" {
		t.Errorf("row 1 = %+v", rows[0])
	}
	if rows[2].Date != "not-a-date" {
		t.Errorf("row 3 = %+v", rows[2])
	}
	for i, row := range rows {
		if row.Row != i+1 {
			t.Errorf("row number = %d, want %d", row.Row, i+1)
		}
	}
}

func TestReadReviews_ColumnsByName(t *testing.T) {
	// Extra columns and different ordering: columns are matched by
	// header name, not position.
	path := writeFile(t, "reviews.csv", `business_id,stars_rating,review_date
abc,4,2024-01-10
def,5,2024-01-11
`)

	rows, err := NewReviewReader().ReadReviews(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadReviews() error = %v", err)
	}
	if rows[0].Date != "2024-01-10" || rows[0].Rating != "4" {
		t.Errorf("row 1 = %+v", rows[0])
	}
}

func TestReadReviews_MissingFile(t *testing.T) {
	_, err := NewReviewReader().ReadReviews(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadReviews_EmptyFile(t *testing.T) {
	path := writeFile(t, "reviews.csv", "date,rating\n")
	_, err := NewReviewReader().ReadReviews(context.Background(), path)
	if err == nil {
		t.Error("expected error for file with no data rows")
	}
}

func TestReadPhases(t *testing.T) {
	path := writeFile(t, "phases.csv", `date,phase
01/01/2024,New Moon
01/08/2024,First Quarter
01/16/2024,Full Moon
01/23/2024,Last Quarter
01/30/2024,Blood Moon
`)

	rows, err := NewPhaseReader().ReadPhases(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadPhases() error = %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	if rows[0].Date != "01/01/2024" || rows[0].Label != "New Moon" {
		t.Errorf("row 1 = %+v", rows[0])
	}
	// Unknown labels pass through; the normalizer flags them.
	if rows[4].Label != "Blood Moon" {
		t.Errorf("row 5 = %+v", rows[4])
	}
}

func TestReadPhases_CancelledContext(t *testing.T) {
	path := writeFile(t, "phases.csv", "date,phase\n01/01/2024,New Moon\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPhaseReader().ReadPhases(ctx, path); err == nil {
		t.Error("expected context error")
	}
}

func TestColumnIndices(t *testing.T) {
	tests := []struct {
		name       string
		header     []string
		first      string
		second     string
		wantFirst  int
		wantSecond int
	}{
		{
			name:   "exact names",
			header: []string{"date", "rating"},
			first:  "date", second: "rating",
			wantFirst: 0, wantSecond: 1,
		},
		{
			name:   "substring and case insensitive",
			header: []string{"Review_Date", "Star_Rating"},
			first:  "date", second: "rating",
			wantFirst: 0, wantSecond: 1,
		},
		{
			name:   "reordered with extras",
			header: []string{"id", "rating", "date"},
			first:  "date", second: "rating",
			wantFirst: 2, wantSecond: 1,
		},
		{
			name:   "no match falls back to positions",
			header: []string{"a", "b", "c"},
			first:  "date", second: "rating",
			wantFirst: 0, wantSecond: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFirst, gotSecond := columnIndices(tt.header, tt.first, tt.second)
			if gotFirst != tt.wantFirst || gotSecond != tt.wantSecond {
				t.Errorf("columnIndices() = (%d, %d), want (%d, %d)",
					gotFirst, gotSecond, tt.wantFirst, tt.wantSecond)
			}
		})
	}
}
