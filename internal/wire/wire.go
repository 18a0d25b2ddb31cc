// Package wire provides dependency injection for the lunarlens
// application. It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/example/lunarlens/internal/adapters/charts"
	"github.com/example/lunarlens/internal/adapters/csvsource"
	"github.com/example/lunarlens/internal/adapters/report"
	"github.com/example/lunarlens/internal/app"
	"github.com/example/lunarlens/internal/logging"
	"github.com/example/lunarlens/internal/ports/primary"
)

var (
	datasetService  primary.DatasetService
	analysisService primary.AnalysisService
	reportService   primary.ReportService
	logger          *zap.Logger
	verbose         bool
	once            sync.Once
)

// SetVerbose must be called before the first service accessor; it
// controls the logger the services are built with.
func SetVerbose(v bool) {
	verbose = v
}

// DatasetService returns the singleton DatasetService instance.
func DatasetService() primary.DatasetService {
	once.Do(initServices)
	return datasetService
}

// AnalysisService returns the singleton AnalysisService instance.
func AnalysisService() primary.AnalysisService {
	once.Do(initServices)
	return analysisService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// Logger returns the shared process logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// TerminalSummary returns a new terminal summary writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func TerminalSummary() *report.TerminalSummary {
	return TerminalSummaryWithOutput(os.Stdout)
}

// TerminalSummaryWithOutput returns a terminal summary writing to the
// given output. This variant allows testing or alternate destinations.
func TerminalSummaryWithOutput(out io.Writer) *report.TerminalSummary {
	return report.NewTerminalSummary(out)
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	logger, err = logging.New(verbose)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	// Secondary adapters
	reviewSource := csvsource.NewReviewReader()
	phaseSource := csvsource.NewPhaseReader()
	chartRenderer := charts.NewRenderer()
	reportSink := report.NewMarkdownWriter()

	// Services (primary ports implementation)
	datasetService = app.NewDatasetService(reviewSource, phaseSource, logger)
	analysisService = app.NewAnalysisService(logger)
	reportService = app.NewReportService(chartRenderer, reportSink, logger)
}
