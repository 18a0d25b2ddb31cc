// Package cli provides the cobra commands. Commands handle flag
// parsing and output formatting but delegate all pipeline logic to the
// application services.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/lunarlens/internal/config"
	"github.com/example/lunarlens/internal/ports/primary"
	"github.com/example/lunarlens/internal/wire"
)

// resolveConfig merges the optional .lunarlens/config.json with flag
// overrides. Flags win; the config file is optional and its absence is
// not an error.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if cwd, err := os.Getwd(); err == nil {
		if loaded, err := config.LoadConfig(cwd); err == nil {
			cfg = loaded
		}
	}

	if v, _ := cmd.Flags().GetString("reviews"); v != "" {
		cfg.ReviewsPath = v
	}
	if v, _ := cmd.Flags().GetString("phases"); v != "" {
		cfg.PhasesPath = v
	}
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		cfg.OutputDir = v
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Alpha, _ = cmd.Flags().GetFloat64("alpha")
	}
	if cmd.Flags().Changed("max-parse-failures") {
		cfg.MaxParseFailures, _ = cmd.Flags().GetInt("max-parse-failures")
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addDatasetFlags(cmd *cobra.Command) {
	cmd.Flags().String("reviews", "", "Path to the reviews CSV (date, rating)")
	cmd.Flags().String("phases", "", "Path to the moon phases CSV (date, phase)")
	cmd.Flags().Int("max-parse-failures", config.DefaultMaxParseFailures, "Abort when unparseable rows exceed this count")
	cmd.Flags().Bool("verbose", false, "Enable debug logging")
}

// AnalyzeCmd returns the analyze command
func AnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis and render the report",
		Long: `Run the full pipeline: load both CSV files, normalize dates and
phase codes, join each review to the moon phase in effect on its date,
partition the series into complete lunation groups, run the hypothesis
test battery at both granularities, and render the charts and the
markdown report.

Examples:
  lunarlens analyze --reviews reviews.csv --phases moon_phases.csv
  lunarlens analyze --reviews reviews.csv --phases moon_phases.csv --out report --alpha 0.01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			wire.SetVerbose(cfg.Verbose)
			ctx := cmd.Context()

			dataset, err := wire.DatasetService().LoadDataset(ctx, primary.DatasetRequest{
				ReviewsPath:      cfg.ReviewsPath,
				PhasesPath:       cfg.PhasesPath,
				MaxParseFailures: cfg.MaxParseFailures,
			})
			if err != nil {
				return err
			}

			rep, err := wire.AnalysisService().Analyze(ctx, dataset, cfg.Alpha)
			if err != nil {
				return err
			}

			artifacts, err := wire.ReportService().Render(ctx, rep, cfg.OutputDir)
			if err != nil {
				return err
			}

			wire.TerminalSummary().Print(rep, artifacts)
			return nil
		},
	}

	addDatasetFlags(cmd)
	cmd.Flags().String("out", config.DefaultOutputDir, "Output directory for the report and charts")
	cmd.Flags().Float64("alpha", config.DefaultAlpha, "Significance level for the hypothesis tests")
	return cmd
}

// InitCmd returns the init command, which writes a starter config.
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter .lunarlens/config.json in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			if err := config.SaveConfig(cwd, config.Default()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Wrote .lunarlens/config.json")
			return nil
		},
	}
}
