package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/example/lunarlens/internal/ports/primary"
	"github.com/example/lunarlens/internal/ports/secondary"
)

// Chart and report file names under the output directory.
const (
	ReportFileName      = "report.md"
	ViolinFileName      = "rating_violin_by_phase.png"
	HistogramFileName   = "rating_hist_by_phase.png"
	RidgelineFileName   = "rating_ridgeline_by_phase.png"
	GroupTotalsFileName = "total_rating_by_cycle_group.png"
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	charts secondary.ChartRenderer
	sink   secondary.ReportSink
	logger *zap.Logger
}

// NewReportService creates a new ReportService with injected renderer
// and sink.
func NewReportService(charts secondary.ChartRenderer, sink secondary.ReportSink, logger *zap.Logger) *ReportServiceImpl {
	return &ReportServiceImpl{charts: charts, sink: sink, logger: logger}
}

// Render writes the four chart artifacts and the markdown report into
// outputDir, creating it if needed.
func (s *ReportServiceImpl) Render(ctx context.Context, report *primary.AnalysisReport, outputDir string) (*primary.RenderedArtifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	artifacts := &primary.RenderedArtifacts{}

	charts := []struct {
		name   string
		render func(path string) error
	}{
		{ViolinFileName, func(p string) error { return s.charts.ViolinBox(report.PhaseSamples, p) }},
		{HistogramFileName, func(p string) error { return s.charts.FacetedHistogram(report.PhaseSamples, p) }},
		{RidgelineFileName, func(p string) error { return s.charts.Ridgeline(report.PhaseSamples, p) }},
		{GroupTotalsFileName, func(p string) error { return s.charts.GroupTotals(report.CycleGroups, p) }},
	}
	for _, c := range charts {
		path := filepath.Join(outputDir, c.name)
		if err := c.render(path); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", c.name, err)
		}
		artifacts.ChartPaths = append(artifacts.ChartPaths, path)
		s.logger.Debug("chart written", zap.String("path", path))
	}

	reportPath := filepath.Join(outputDir, ReportFileName)
	if err := s.sink.WriteReport(report, reportPath); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	artifacts.ReportPath = reportPath
	s.logger.Info("report rendered",
		zap.String("report", reportPath),
		zap.Int("charts", len(artifacts.ChartPaths)))
	return artifacts, nil
}

// Ensure ReportServiceImpl implements the interface
var _ primary.ReportService = (*ReportServiceImpl)(nil)
