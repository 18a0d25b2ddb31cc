// Package report writes the human-facing outputs: the markdown report
// file and the colorized terminal summary.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/example/lunarlens/internal/ports/primary"
	"github.com/example/lunarlens/internal/ports/secondary"
)

const dateLayout = "2006-01-02"

// MarkdownWriter implements the ReportSink secondary port.
type MarkdownWriter struct{}

// Ensure MarkdownWriter implements the interface
var _ secondary.ReportSink = (*MarkdownWriter)(nil)

// NewMarkdownWriter creates a markdown report sink.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// WriteReport renders the full analysis report to path.
func (w *MarkdownWriter) WriteReport(report *primary.AnalysisReport, path string) error {
	var b strings.Builder

	b.WriteString("# Moon phase vs. review rating\n\n")
	fmt.Fprintf(&b, "Joined records: %d. Complete cycle groups: %d. Significance level: %.2f.\n\n",
		len(report.JoinedRecords), len(report.CycleGroups), report.Alpha)

	b.WriteString("## Summary by phase\n\n")
	writeSummaryTable(&b, report.PhaseSummary, false)

	b.WriteString("## Summary by cycle group\n\n")
	writeSummaryTable(&b, report.GroupSummary, true)

	b.WriteString("## Hypothesis tests by phase\n\n")
	writeTestTable(&b, report.ByPhase, report.Alpha)

	b.WriteString("## Hypothesis tests by cycle group\n\n")
	writeTestTable(&b, report.ByGroup, report.Alpha)

	b.WriteString("## Charts\n\n")
	for _, name := range []string{
		"rating_violin_by_phase.png",
		"rating_hist_by_phase.png",
		"rating_ridgeline_by_phase.png",
		"total_rating_by_cycle_group.png",
	} {
		fmt.Fprintf(&b, "![%s](%s)\n\n", name, name)
	}

	b.WriteString("## Diagnostics\n\n")
	writeDiagnostics(&b, report)

	b.WriteString("## Conclusion\n\n")
	b.WriteString(conclusion(report))

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeSummaryTable(b *strings.Builder, rows []primary.SummaryRow, withTotal bool) {
	if withTotal {
		b.WriteString("| Group | N | Mean | SD | Total | From | To |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
	} else {
		b.WriteString("| Phase | N | Mean | SD | From | To |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
	}
	for _, row := range rows {
		if withTotal {
			fmt.Fprintf(b, "| %s | %d | %.3f | %.3f | %d | %s | %s |\n",
				row.Name, row.N, row.Mean, row.StdDev, row.Total,
				row.MinDate.Format(dateLayout), row.MaxDate.Format(dateLayout))
		} else {
			fmt.Fprintf(b, "| %s | %d | %.3f | %.3f | %s | %s |\n",
				row.Name, row.N, row.Mean, row.StdDev,
				row.MinDate.Format(dateLayout), row.MaxDate.Format(dateLayout))
		}
	}
	b.WriteString("\n")
}

func writeTestTable(b *strings.Builder, results []primary.HypothesisResult, alpha float64) {
	b.WriteString("| Test | Statistic | df1 | df2 | p-value | Verdict |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range results {
		verdict := "fail to reject H0"
		if r.Rejects(alpha) {
			verdict = "reject H0"
		}
		fmt.Fprintf(b, "| %s | %.4f | %.1f | %.1f | %.4f | %s |\n",
			r.Test, r.Statistic, r.DF1, r.DF2, r.PValue, verdict)
	}
	b.WriteString("\n")
	for _, r := range results {
		for _, warning := range r.Warnings {
			fmt.Fprintf(b, "- warning (%s): %s\n", r.Test, warning)
		}
		if r.EffectSize > 0 {
			fmt.Fprintf(b, "- %s eta squared: %.4f\n", r.Test, r.EffectSize)
		}
	}
	b.WriteString("\n")
}

func writeDiagnostics(b *strings.Builder, report *primary.AnalysisReport) {
	d := report.Diagnostics
	fmt.Fprintf(b, "- Source rows: %d reviews, %d phase ranges\n", d.ReviewRows, d.PhaseRows)
	fmt.Fprintf(b, "- Parse failures: %d review, %d phase\n",
		len(d.ReviewParseErrors), len(d.PhaseParseErrors))
	fmt.Fprintf(b, "- Unknown phase labels: %d\n", len(d.UnknownLabels))
	fmt.Fprintf(b, "- Duplicate phase start dates: %d\n", len(d.DuplicateStarts))
	fmt.Fprintf(b, "- Reviews dropped outside phase coverage: %d\n", d.DroppedReviews)
	fmt.Fprintf(b, "- Incomplete cycle groups discarded: %d\n", d.IncompleteGroups)
	for _, rowErr := range d.ReviewParseErrors {
		fmt.Fprintf(b, "  - review %s\n", rowErr.Error())
	}
	for _, rowErr := range d.PhaseParseErrors {
		fmt.Fprintf(b, "  - phase %s\n", rowErr.Error())
	}
	for _, rowErr := range d.UnknownLabels {
		fmt.Fprintf(b, "  - phase %s\n", rowErr.Error())
	}
	b.WriteString("\n")
}

// conclusion narrates the headline result: whether either granularity
// rejected equal means at the configured level.
func conclusion(report *primary.AnalysisReport) string {
	phaseRejects := meanTestRejects(report.ByPhase, report.Alpha)
	groupRejects := meanTestRejects(report.ByGroup, report.Alpha)

	switch {
	case phaseRejects && groupRejects:
		return "Mean ratings differ significantly both across moon phases and across cycle groups at the configured level. The lunar-phase effect warrants a closer look before ruling out confounders.\n"
	case phaseRejects:
		return "Mean ratings differ significantly across moon phases, but not across full cycle groups. The per-phase effect does not persist at cycle granularity.\n"
	case groupRejects:
		return "Mean ratings differ across cycle groups but not across individual phases, which points at drift over time rather than a lunar effect.\n"
	default:
		return "No significant difference in mean ratings was found by phase or by cycle group. The data does not support a lunar-phase effect on review scores.\n"
	}
}

func meanTestRejects(results []primary.HypothesisResult, alpha float64) bool {
	for _, r := range results {
		if r.Test == "levene" {
			continue
		}
		if r.Rejects(alpha) {
			return true
		}
	}
	return false
}
