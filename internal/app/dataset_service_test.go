package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/example/lunarlens/internal/models"
	"github.com/example/lunarlens/internal/ports/primary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockReviewSource implements secondary.ReviewSource for testing.
type mockReviewSource struct {
	rows    []models.RawReviewRow
	readErr error
}

func (m *mockReviewSource) ReadReviews(ctx context.Context, path string) ([]models.RawReviewRow, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.rows, nil
}

// mockPhaseSource implements secondary.PhaseSource for testing.
type mockPhaseSource struct {
	rows    []models.RawPhaseRow
	readErr error
}

func (m *mockPhaseSource) ReadPhases(ctx context.Context, path string) ([]models.RawPhaseRow, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.rows, nil
}

func goodPhaseRows() []models.RawPhaseRow {
	return []models.RawPhaseRow{
		{Row: 1, Date: "01/01/2024", Label: "New Moon"},
		{Row: 2, Date: "01/08/2024", Label: "First Quarter"},
		{Row: 3, Date: "01/16/2024", Label: "Full Moon"},
		{Row: 4, Date: "01/23/2024", Label: "Last Quarter"},
	}
}

func newDatasetService(reviews *mockReviewSource, phases *mockPhaseSource) *DatasetServiceImpl {
	return NewDatasetService(reviews, phases, zap.NewNop())
}

// ============================================================================
// Tests
// ============================================================================

func TestLoadDataset_Normalizes(t *testing.T) {
	reviews := &mockReviewSource{rows: []models.RawReviewRow{
		{Row: 1, Date: "2024-01-10", Rating: "4"},
		{Row: 2, Date: "2024-01-20", Rating: "2"},
	}}
	phases := &mockPhaseSource{rows: goodPhaseRows()}

	dataset, err := newDatasetService(reviews, phases).LoadDataset(context.Background(), primary.DatasetRequest{
		ReviewsPath: "reviews.csv", PhasesPath: "phases.csv", MaxParseFailures: 10,
	})
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if len(dataset.Reviews) != 2 || len(dataset.Phases) != 4 {
		t.Errorf("got %d reviews, %d phases", len(dataset.Reviews), len(dataset.Phases))
	}
	if dataset.Diagnostics.CoverageGap {
		t.Error("unexpected coverage gap")
	}
	if !dataset.Diagnostics.Clean() {
		t.Errorf("diagnostics not clean: %+v", dataset.Diagnostics)
	}
}

func TestLoadDataset_CountsParseFailuresBelowThreshold(t *testing.T) {
	reviews := &mockReviewSource{rows: []models.RawReviewRow{
		{Row: 1, Date: "2024-01-10", Rating: "4"},
		{Row: 2, Date: "not a date", Rating: "4"},
		{Row: 3, Date: "2024-01-12", Rating: "nine"},
	}}
	phases := &mockPhaseSource{rows: goodPhaseRows()}

	dataset, err := newDatasetService(reviews, phases).LoadDataset(context.Background(), primary.DatasetRequest{
		MaxParseFailures: 10,
	})
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if got := dataset.Diagnostics.ParseFailures(); got != 2 {
		t.Errorf("ParseFailures() = %d, want 2", got)
	}
	if len(dataset.Reviews) != 1 {
		t.Errorf("got %d reviews, want 1", len(dataset.Reviews))
	}
}

func TestLoadDataset_AbortsOverThreshold(t *testing.T) {
	reviews := &mockReviewSource{rows: []models.RawReviewRow{
		{Row: 1, Date: "bad", Rating: "4"},
		{Row: 2, Date: "worse", Rating: "4"},
		{Row: 3, Date: "2024-01-10", Rating: "4"},
	}}
	phases := &mockPhaseSource{rows: goodPhaseRows()}

	_, err := newDatasetService(reviews, phases).LoadDataset(context.Background(), primary.DatasetRequest{
		MaxParseFailures: 1,
	})
	if !errors.Is(err, ErrTooManyParseFailures) {
		t.Errorf("error = %v, want ErrTooManyParseFailures", err)
	}
}

func TestLoadDataset_FlagsCoverageGap(t *testing.T) {
	reviews := &mockReviewSource{rows: []models.RawReviewRow{
		{Row: 1, Date: "2023-12-31", Rating: "4"}, // before first phase start
		{Row: 2, Date: "2024-01-10", Rating: "3"},
	}}
	phases := &mockPhaseSource{rows: goodPhaseRows()}

	dataset, err := newDatasetService(reviews, phases).LoadDataset(context.Background(), primary.DatasetRequest{
		MaxParseFailures: 10,
	})
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if !dataset.Diagnostics.CoverageGap {
		t.Error("expected coverage gap to be flagged")
	}
}

func TestLoadDataset_SurfacesUnknownLabels(t *testing.T) {
	rows := append(goodPhaseRows(), models.RawPhaseRow{Row: 5, Date: "01/30/2024", Label: "Blood Moon"})
	reviews := &mockReviewSource{rows: []models.RawReviewRow{{Row: 1, Date: "2024-01-10", Rating: "4"}}}
	phases := &mockPhaseSource{rows: rows}

	dataset, err := newDatasetService(reviews, phases).LoadDataset(context.Background(), primary.DatasetRequest{
		MaxParseFailures: 10,
	})
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if len(dataset.Diagnostics.UnknownLabels) != 1 {
		t.Fatalf("UnknownLabels = %d, want 1", len(dataset.Diagnostics.UnknownLabels))
	}
	if dataset.Diagnostics.UnknownLabels[0].Value != "Blood Moon" {
		t.Errorf("flagged value = %q", dataset.Diagnostics.UnknownLabels[0].Value)
	}
	// The row is kept with an unknown code, not silently dropped.
	if len(dataset.Phases) != 5 {
		t.Errorf("got %d phases, want 5", len(dataset.Phases))
	}
}

func TestLoadDataset_SourceErrors(t *testing.T) {
	readErr := errors.New("file missing")

	t.Run("review source fails", func(t *testing.T) {
		_, err := newDatasetService(&mockReviewSource{readErr: readErr}, &mockPhaseSource{rows: goodPhaseRows()}).
			LoadDataset(context.Background(), primary.DatasetRequest{MaxParseFailures: 10})
		if !errors.Is(err, readErr) {
			t.Errorf("error = %v, want wrapped read error", err)
		}
	})

	t.Run("phase source fails", func(t *testing.T) {
		_, err := newDatasetService(&mockReviewSource{}, &mockPhaseSource{readErr: readErr}).
			LoadDataset(context.Background(), primary.DatasetRequest{MaxParseFailures: 10})
		if !errors.Is(err, readErr) {
			t.Errorf("error = %v, want wrapped read error", err)
		}
	})
}
