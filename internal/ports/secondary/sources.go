// Package secondary defines the secondary ports (driven adapters) for
// the application: the tabular data sources it reads and the artifact
// sinks it writes.
package secondary

import (
	"context"

	"github.com/example/lunarlens/internal/models"
	"github.com/example/lunarlens/internal/ports/primary"
)

// ReviewSource reads the raw review table.
type ReviewSource interface {
	// ReadReviews returns every data row (header excluded) as raw
	// strings, preserving file order and 1-based row numbers.
	ReadReviews(ctx context.Context, path string) ([]models.RawReviewRow, error)
}

// PhaseSource reads the raw moon-phase table.
type PhaseSource interface {
	ReadPhases(ctx context.Context, path string) ([]models.RawPhaseRow, error)
}

// ChartRenderer renders the report's chart artifacts to files under the
// output directory and returns the written paths.
type ChartRenderer interface {
	// ViolinBox draws rating distributions per phase as mirrored
	// density outlines with an inset box plot.
	ViolinBox(samples []primary.PhaseSample, path string) error

	// FacetedHistogram draws one rating histogram per phase on a 2x2
	// grid of aligned panels.
	FacetedHistogram(samples []primary.PhaseSample, path string) error

	// Ridgeline draws per-phase rating density curves stacked with a
	// vertical offset.
	Ridgeline(samples []primary.PhaseSample, path string) error

	// GroupTotals draws total rating per cycle group as a bar chart.
	GroupTotals(groups []models.CycleGroup, path string) error
}

// ReportSink writes the rendered report for human consumption.
type ReportSink interface {
	WriteReport(report *primary.AnalysisReport, path string) error
}
