package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/example/lunarlens/internal/core/cycles"
	"github.com/example/lunarlens/internal/core/hypothesis"
	"github.com/example/lunarlens/internal/core/temporal"
	"github.com/example/lunarlens/internal/models"
	"github.com/example/lunarlens/internal/ports/primary"
)

// ErrEmptyJoin means no review had a phase in effect, so there is
// nothing to analyze.
var ErrEmptyJoin = errors.New("no reviews fall inside the phase coverage window")

// AnalysisServiceImpl implements the AnalysisService interface: the
// temporal join, the cycle grouping, and the test battery at both
// granularities.
type AnalysisServiceImpl struct {
	logger *zap.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(logger *zap.Logger) *AnalysisServiceImpl {
	return &AnalysisServiceImpl{logger: logger}
}

// Analyze joins reviews to phases, partitions the series into cycle
// groups, and runs Levene plus the mean-comparison test it selects
// (classic ANOVA under homogeneous variances, Welch's otherwise) once
// by phase and once by cycle group.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, dataset *primary.Dataset, alpha float64) (*primary.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	joined, joinStats := temporal.Join(dataset.Reviews, dataset.Phases)
	if len(joined) == 0 {
		return nil, ErrEmptyJoin
	}

	report := &primary.AnalysisReport{
		Alpha:         alpha,
		JoinedRecords: joined,
		Diagnostics:   dataset.Diagnostics,
	}
	report.Diagnostics.DroppedReviews = joinStats.DroppedBeforeCoverage
	report.Diagnostics.DuplicateStarts = joinStats.DuplicateStarts
	if joinStats.DroppedBeforeCoverage > 0 {
		s.logger.Warn("reviews dropped before phase coverage",
			zap.Int("dropped", joinStats.DroppedBeforeCoverage))
	}
	for range joinStats.DuplicateStarts {
		s.logger.Warn("duplicate phase start date, last occurrence kept")
	}

	// The grouper requires ascending date order; the joiner only
	// preserves input order.
	sorted := make([]models.JoinedRecord, len(joined))
	copy(sorted, joined)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	part := cycles.Group(sorted)
	report.CycleGroups = part.Complete
	report.Diagnostics.IncompleteGroups = part.Discarded
	s.logger.Info("cycle grouping complete",
		zap.Int("complete_groups", len(part.Complete)),
		zap.Int("discarded_groups", part.Discarded),
		zap.Int("excluded_records", len(part.Excluded)))

	report.PhaseSamples = phaseSamples(sorted)
	report.PhaseSummary = phaseSummary(sorted, report.PhaseSamples)
	report.GroupSummary = groupSummary(part.Complete)

	report.ByPhase = runBattery("phase", toSamples(report.PhaseSamples), alpha)
	report.ByGroup = runBattery("cycle-group", groupRatingSamples(part.Complete), alpha)
	return report, nil
}

// runBattery runs Levene first, then the mean-comparison test its
// verdict selects at the given significance level.
func runBattery(grouping string, samples []hypothesis.Sample, alpha float64) []primary.HypothesisResult {
	levene := hypothesis.Levene(grouping, samples)
	results := []primary.HypothesisResult{toResult(levene)}

	if levene.Rejects(alpha) {
		results = append(results, toResult(hypothesis.WelchANOVA(grouping, samples)))
	} else {
		results = append(results, toResult(hypothesis.OneWayANOVA(grouping, samples)))
	}
	return results
}

func toResult(r hypothesis.TestResult) primary.HypothesisResult {
	return primary.HypothesisResult{
		Test:       r.Test,
		Grouping:   r.Grouping,
		Statistic:  r.Statistic,
		DF1:        r.DF1,
		DF2:        r.DF2,
		PValue:     r.PValue,
		EffectSize: r.EffectSize,
		Warnings:   r.Warnings,
	}
}

// phaseSamples collects the ungrouped ratings per phase code, in code
// order. The ungrouped series deliberately includes records from
// incomplete cycle groups.
func phaseSamples(records []models.JoinedRecord) []primary.PhaseSample {
	byCode := map[models.PhaseCode][]float64{}
	for _, r := range records {
		byCode[r.Code] = append(byCode[r.Code], float64(r.Rating))
	}
	codes := []models.PhaseCode{
		models.PhaseNewMoon, models.PhaseFirstQuarter,
		models.PhaseFullMoon, models.PhaseLastQuarter,
	}
	var samples []primary.PhaseSample
	for _, c := range codes {
		if len(byCode[c]) == 0 {
			continue
		}
		samples = append(samples, primary.PhaseSample{
			Code:    c,
			Label:   c.String(),
			Ratings: byCode[c],
		})
	}
	return samples
}

func toSamples(phases []primary.PhaseSample) []hypothesis.Sample {
	out := make([]hypothesis.Sample, len(phases))
	for i, p := range phases {
		out[i] = hypothesis.Sample{Name: p.Label, Values: p.Ratings}
	}
	return out
}

func groupRatingSamples(groups []models.CycleGroup) []hypothesis.Sample {
	out := make([]hypothesis.Sample, len(groups))
	for i, g := range groups {
		values := make([]float64, len(g.Records))
		for j, r := range g.Records {
			values[j] = float64(r.Rating)
		}
		out[i] = hypothesis.Sample{Name: groupName(g.ID), Values: values}
	}
	return out
}

func phaseSummary(records []models.JoinedRecord, samples []primary.PhaseSample) []primary.SummaryRow {
	stats := hypothesis.Describe(toSamples(samples))

	rows := make([]primary.SummaryRow, len(samples))
	for i, sample := range samples {
		row := primary.SummaryRow{
			Name:   sample.Label,
			N:      stats[i].N,
			Mean:   stats[i].Mean,
			StdDev: stats[i].StdDev,
		}
		for _, r := range records {
			if r.Code != sample.Code {
				continue
			}
			if row.MinDate.IsZero() || r.Date.Before(row.MinDate) {
				row.MinDate = r.Date
			}
			if r.Date.After(row.MaxDate) {
				row.MaxDate = r.Date
			}
		}
		rows[i] = row
	}
	return rows
}

func groupSummary(groups []models.CycleGroup) []primary.SummaryRow {
	stats := hypothesis.Describe(groupRatingSamples(groups))

	rows := make([]primary.SummaryRow, len(groups))
	for i, g := range groups {
		rows[i] = primary.SummaryRow{
			Name:    groupName(g.ID),
			N:       stats[i].N,
			Mean:    stats[i].Mean,
			StdDev:  stats[i].StdDev,
			MinDate: g.Records[0].Date,
			MaxDate: g.Records[len(g.Records)-1].Date,
			Total:   g.TotalRating(),
		}
	}
	return rows
}

func groupName(id int) string {
	return fmt.Sprintf("cycle %d", id)
}

// Ensure AnalysisServiceImpl implements the interface
var _ primary.AnalysisService = (*AnalysisServiceImpl)(nil)
