package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/lunarlens/internal/ports/primary"
	"github.com/example/lunarlens/internal/wire"
)

// ValidateCmd returns the validate command: Loader and Normalizer only,
// reporting schema and coverage diagnostics without producing a report.
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check both input files without running the analysis",
		Long: `Load and normalize both CSV files, then report what the analysis
would have to work with: row counts, parse failures, unknown phase
labels, and whether the phase table brackets the review dates.

Examples:
  lunarlens validate --reviews reviews.csv --phases moon_phases.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			wire.SetVerbose(cfg.Verbose)

			dataset, err := wire.DatasetService().LoadDataset(cmd.Context(), primary.DatasetRequest{
				ReviewsPath:      cfg.ReviewsPath,
				PhasesPath:       cfg.PhasesPath,
				MaxParseFailures: cfg.MaxParseFailures,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			good := color.New(color.FgGreen)
			bad := color.New(color.FgYellow)

			d := dataset.Diagnostics
			fmt.Fprintf(out, "\nReviews: %d rows, %d normalized\n", d.ReviewRows, len(dataset.Reviews))
			fmt.Fprintf(out, "Phases:  %d rows, %d normalized\n", d.PhaseRows, len(dataset.Phases))

			report := func(count int, what string) {
				if count == 0 {
					good.Fprintf(out, "✓ no %s\n", what)
					return
				}
				bad.Fprintf(out, "✗ %d %s\n", count, what)
			}
			report(len(d.ReviewParseErrors), "unparseable review rows")
			report(len(d.PhaseParseErrors), "unparseable phase rows")
			report(len(d.UnknownLabels), "unknown phase labels")

			if d.CoverageGap {
				bad.Fprintln(out, "✗ phase coverage does not bracket review dates; the join will drop reviews")
			} else {
				good.Fprintln(out, "✓ phase coverage brackets review dates")
			}

			for _, rowErr := range d.ReviewParseErrors {
				fmt.Fprintf(out, "  review %s\n", rowErr.Error())
			}
			for _, rowErr := range d.PhaseParseErrors {
				fmt.Fprintf(out, "  phase %s\n", rowErr.Error())
			}
			for _, rowErr := range d.UnknownLabels {
				fmt.Fprintf(out, "  phase %s\n", rowErr.Error())
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	addDatasetFlags(cmd)
	return cmd
}
