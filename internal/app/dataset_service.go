// Package app implements the primary ports: the pipeline stages wired
// together as services with injected sources, renderers, and sinks.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/lunarlens/internal/core/normalize"
	"github.com/example/lunarlens/internal/ports/primary"
	"github.com/example/lunarlens/internal/ports/secondary"
)

// ErrTooManyParseFailures aborts the run when unparseable rows exceed
// the configured threshold, which signals a structural schema problem
// rather than isolated bad data.
var ErrTooManyParseFailures = errors.New("parse failures exceed threshold")

// DatasetServiceImpl implements the DatasetService interface.
type DatasetServiceImpl struct {
	reviewSource secondary.ReviewSource
	phaseSource  secondary.PhaseSource
	logger       *zap.Logger
}

// NewDatasetService creates a new DatasetService with injected sources.
func NewDatasetService(reviewSource secondary.ReviewSource, phaseSource secondary.PhaseSource, logger *zap.Logger) *DatasetServiceImpl {
	return &DatasetServiceImpl{
		reviewSource: reviewSource,
		phaseSource:  phaseSource,
		logger:       logger,
	}
}

// LoadDataset reads both source tables and normalizes them. Per-row
// problems accumulate in the dataset diagnostics; only unreadable
// files or a parse-failure count above the threshold fail the call.
func (s *DatasetServiceImpl) LoadDataset(ctx context.Context, req primary.DatasetRequest) (*primary.Dataset, error) {
	rawReviews, err := s.reviewSource.ReadReviews(ctx, req.ReviewsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	rawPhases, err := s.phaseSource.ReadPhases(ctx, req.PhasesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load phases: %w", err)
	}

	dataset := &primary.Dataset{}
	dataset.Diagnostics.ReviewRows = len(rawReviews)
	dataset.Diagnostics.PhaseRows = len(rawPhases)

	dataset.Reviews, dataset.Diagnostics.ReviewParseErrors = normalize.Reviews(rawReviews)

	phaseRes := normalize.Phases(rawPhases)
	dataset.Phases = phaseRes.Phases
	dataset.Diagnostics.PhaseParseErrors = phaseRes.ParseErrors
	dataset.Diagnostics.UnknownLabels = phaseRes.UnknownLabels

	for _, rowErr := range dataset.Diagnostics.UnknownLabels {
		s.logger.Warn("unknown phase label in source file",
			zap.Int("row", rowErr.Row),
			zap.String("label", rowErr.Value))
	}

	if failures := dataset.Diagnostics.ParseFailures(); failures > req.MaxParseFailures {
		s.logger.Error("aborting: parse failures exceed threshold",
			zap.Int("failures", failures),
			zap.Int("threshold", req.MaxParseFailures))
		return nil, fmt.Errorf("%w: %d failures over threshold %d",
			ErrTooManyParseFailures, failures, req.MaxParseFailures)
	}

	if !normalize.CoverageBrackets(dataset.Reviews, dataset.Phases) {
		dataset.Diagnostics.CoverageGap = true
		s.logger.Warn("phase coverage does not bracket review dates; the join will drop reviews")
	}

	s.logger.Info("dataset loaded",
		zap.Int("reviews", len(dataset.Reviews)),
		zap.Int("phases", len(dataset.Phases)),
		zap.Int("parse_failures", dataset.Diagnostics.ParseFailures()))
	return dataset, nil
}

// Ensure DatasetServiceImpl implements the interface
var _ primary.DatasetService = (*DatasetServiceImpl)(nil)
