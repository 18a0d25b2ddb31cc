package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/lunarlens/internal/ports/primary"
)

// TerminalSummary is a thin adapter that prints the analysis headline
// to a writer. It holds no state beyond the output destination.
type TerminalSummary struct {
	out io.Writer
}

// NewTerminalSummary creates a terminal summary writer.
func NewTerminalSummary(out io.Writer) *TerminalSummary {
	return &TerminalSummary{out: out}
}

// Print writes the summary tables, test verdicts, and diagnostics.
func (t *TerminalSummary) Print(rep *primary.AnalysisReport, artifacts *primary.RenderedArtifacts) {
	header := color.New(color.Bold, color.FgCyan)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgYellow)

	header.Fprintln(t.out, "\nMoon phase vs. review rating")
	fmt.Fprintf(t.out, "Joined records: %d, complete cycle groups: %d\n\n",
		len(rep.JoinedRecords), len(rep.CycleGroups))

	fmt.Fprintf(t.out, "%-15s %6s %8s %8s\n", "PHASE", "N", "MEAN", "SD")
	fmt.Fprintln(t.out, "────────────────────────────────────────")
	for _, row := range rep.PhaseSummary {
		fmt.Fprintf(t.out, "%-15s %6d %8.3f %8.3f\n", row.Name, row.N, row.Mean, row.StdDev)
	}
	fmt.Fprintln(t.out)

	printTests := func(title string, results []primary.HypothesisResult) {
		fmt.Fprintf(t.out, "%s:\n", title)
		for _, r := range results {
			verdict := "fail to reject H0"
			c := good
			if r.Rejects(rep.Alpha) {
				verdict = "reject H0"
				c = bad
			}
			fmt.Fprintf(t.out, "  %-12s F=%.4f p=%.4f  ", r.Test, r.Statistic, r.PValue)
			c.Fprintln(t.out, verdict)
			for _, warning := range r.Warnings {
				bad.Fprintf(t.out, "    warning: %s\n", warning)
			}
		}
	}
	printTests("By phase", rep.ByPhase)
	printTests("By cycle group", rep.ByGroup)

	d := rep.Diagnostics
	if !d.Clean() {
		fmt.Fprintln(t.out)
		bad.Fprintln(t.out, "Diagnostics:")
		if n := d.ParseFailures(); n > 0 {
			bad.Fprintf(t.out, "  %d unparseable row(s)\n", n)
		}
		if n := len(d.UnknownLabels); n > 0 {
			bad.Fprintf(t.out, "  %d unknown phase label(s)\n", n)
		}
		if n := len(d.DuplicateStarts); n > 0 {
			bad.Fprintf(t.out, "  %d duplicate phase start date(s)\n", n)
		}
		if d.DroppedReviews > 0 {
			bad.Fprintf(t.out, "  %d review(s) dropped outside phase coverage\n", d.DroppedReviews)
		}
	}

	if artifacts != nil {
		fmt.Fprintln(t.out)
		fmt.Fprintf(t.out, "Report: %s\n", artifacts.ReportPath)
		for _, p := range artifacts.ChartPaths {
			fmt.Fprintf(t.out, "Chart:  %s\n", p)
		}
	}
	fmt.Fprintln(t.out)
}
