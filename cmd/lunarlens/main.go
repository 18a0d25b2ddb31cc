package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/lunarlens/internal/cli"
	"github.com/example/lunarlens/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "lunarlens",
		Short:   "lunarlens - moon phase vs. review rating analysis",
		Version: version.String(),
		Long: `lunarlens joins restaurant review ratings with historical moon-phase
date ranges and asks whether lunar phase correlates with review scores:
descriptive statistics, Levene's test, one-way ANOVA (Welch's when
variances are unequal), and distribution charts, rendered as a markdown
report.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.AnalyzeCmd())
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.InitCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
