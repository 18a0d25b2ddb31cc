// Package primary defines the primary ports (driving interfaces) for
// the analysis pipeline, and the request/result types they exchange.
package primary

import (
	"context"
	"time"

	"github.com/example/lunarlens/internal/models"
)

// DatasetService loads and normalizes the two source tables.
type DatasetService interface {
	// LoadDataset runs the Loader and Normalizer stages: read both
	// files, canonicalize dates and phase codes, validate coverage.
	// Per-row problems land in the returned diagnostics; the call
	// fails only on unreadable files or a parse-failure count above
	// the configured threshold, which signals a schema problem rather
	// than isolated bad rows.
	LoadDataset(ctx context.Context, req DatasetRequest) (*Dataset, error)
}

// DatasetRequest names the two input files.
type DatasetRequest struct {
	ReviewsPath string
	PhasesPath  string
	// MaxParseFailures aborts the run when exceeded.
	MaxParseFailures int
}

// Dataset is the normalized, validated input to the analysis stages.
type Dataset struct {
	Reviews     []models.Review
	Phases      []models.PhaseRange
	Diagnostics models.Diagnostics
}

// AnalysisService runs the join, grouping, and test battery over a
// normalized dataset.
type AnalysisService interface {
	Analyze(ctx context.Context, dataset *Dataset, alpha float64) (*AnalysisReport, error)
}

// ReportService renders an AnalysisReport: charts to the output
// directory, the markdown report, and the terminal summary.
type ReportService interface {
	Render(ctx context.Context, report *AnalysisReport, outputDir string) (*RenderedArtifacts, error)
}

// PhaseSample is one phase's ratings, ready for statistics or drawing.
type PhaseSample struct {
	Code    models.PhaseCode
	Label   string
	Ratings []float64
}

// SummaryRow is one line of a descriptive summary table.
type SummaryRow struct {
	Name     string
	N        int
	Mean     float64
	StdDev   float64
	MinDate  time.Time
	MaxDate  time.Time
	Total    int // total rating, reported for cycle groups
}

// HypothesisResult is a test-statistic/p-value pair with context.
type HypothesisResult struct {
	Test       string
	Grouping   string
	Statistic  float64
	DF1        float64
	DF2        float64
	PValue     float64
	EffectSize float64
	Warnings   []string
}

// Rejects reports whether the result rejects its null at alpha.
func (r HypothesisResult) Rejects(alpha float64) bool {
	return r.PValue < alpha
}

// AnalysisReport is everything the reporting stage needs: summary
// tables, test results at both granularities, the grouped and
// ungrouped series for drawing, and the run diagnostics.
type AnalysisReport struct {
	Alpha float64

	PhaseSamples  []PhaseSample
	PhaseSummary  []SummaryRow
	GroupSummary  []SummaryRow
	CycleGroups   []models.CycleGroup
	JoinedRecords []models.JoinedRecord

	// ByPhase and ByGroup each hold the Levene result followed by the
	// mean-comparison test the homogeneity verdict selected.
	ByPhase []HypothesisResult
	ByGroup []HypothesisResult

	Diagnostics models.Diagnostics
}

// RenderedArtifacts lists what Render wrote.
type RenderedArtifacts struct {
	ReportPath string
	ChartPaths []string
}
