package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/lunarlens/internal/models"
	"github.com/example/lunarlens/internal/ports/primary"
)

func sampleReport() *primary.AnalysisReport {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}
	return &primary.AnalysisReport{
		Alpha: 0.05,
		JoinedRecords: []models.JoinedRecord{
			{Date: day(2), Rating: 4, Code: models.PhaseNewMoon, Label: "New Moon"},
			{Date: day(9), Rating: 3, Code: models.PhaseFirstQuarter, Label: "First Quarter"},
		},
		PhaseSummary: []primary.SummaryRow{
			{Name: "New Moon", N: 10, Mean: 3.5, StdDev: 1.2, MinDate: day(1), MaxDate: day(7)},
			{Name: "First Quarter", N: 12, Mean: 3.8, StdDev: 0.9, MinDate: day(8), MaxDate: day(15)},
		},
		GroupSummary: []primary.SummaryRow{
			{Name: "cycle 0", N: 22, Mean: 3.6, StdDev: 1.1, Total: 80, MinDate: day(1), MaxDate: day(29)},
		},
		CycleGroups: []models.CycleGroup{{ID: 0}},
		ByPhase: []primary.HypothesisResult{
			{Test: "levene", Grouping: "phase", Statistic: 0.8, DF1: 3, DF2: 18, PValue: 0.5},
			{Test: "anova", Grouping: "phase", Statistic: 1.2, DF1: 3, DF2: 18, PValue: 0.33, EffectSize: 0.17},
		},
		ByGroup: []primary.HypothesisResult{
			{Test: "levene", Grouping: "cycle-group", Statistic: 4.1, DF1: 1, DF2: 20, PValue: 0.03},
			{Test: "welch-anova", Grouping: "cycle-group", Statistic: 6.0, DF1: 1, DF2: 11.2, PValue: 0.02,
				Warnings: []string{"group \"cycle 1\" has 1 observation(s), need at least 2"}},
		},
		Diagnostics: models.Diagnostics{
			ReviewRows:     25,
			PhaseRows:      9,
			DroppedReviews: 3,
			UnknownLabels:  []models.RowError{{Row: 5, Field: "phase", Value: "Blood Moon", Msg: "unrecognized phase label"}},
		},
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	if err := NewMarkdownWriter().WriteReport(sampleReport(), path); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	content := string(data)

	wantFragments := []string{
		"# Moon phase vs. review rating",
		"## Summary by phase",
		"| New Moon | 10 | 3.500 | 1.200 | 2024-01-01 | 2024-01-07 |",
		"## Summary by cycle group",
		"| cycle 0 | 22 | 3.600 | 1.100 | 80 | 2024-01-01 | 2024-01-29 |",
		"## Hypothesis tests by phase",
		"| levene | 0.8000 | 3.0 | 18.0 | 0.5000 | fail to reject H0 |",
		"| anova | 1.2000 | 3.0 | 18.0 | 0.3300 | fail to reject H0 |",
		"anova eta squared: 0.1700",
		"## Hypothesis tests by cycle group",
		"| welch-anova | 6.0000 | 1.0 | 11.2 | 0.0200 | reject H0 |",
		"warning (welch-anova):",
		"rating_violin_by_phase.png",
		"total_rating_by_cycle_group.png",
		"Reviews dropped outside phase coverage: 3",
		"Blood Moon",
		"## Conclusion",
	}
	for _, want := range wantFragments {
		if !strings.Contains(content, want) {
			t.Errorf("report missing fragment %q", want)
		}
	}
}

func TestConclusion(t *testing.T) {
	base := sampleReport()

	tests := []struct {
		name        string
		phasePValue float64
		groupPValue float64
		wantPhrase  string
	}{
		{name: "neither rejects", phasePValue: 0.4, groupPValue: 0.4, wantPhrase: "does not support"},
		{name: "phase rejects", phasePValue: 0.01, groupPValue: 0.4, wantPhrase: "across moon phases"},
		{name: "group rejects", phasePValue: 0.4, groupPValue: 0.01, wantPhrase: "drift over time"},
		{name: "both reject", phasePValue: 0.01, groupPValue: 0.01, wantPhrase: "closer look"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := *base
			rep.ByPhase = []primary.HypothesisResult{
				{Test: "levene", PValue: 0.5},
				{Test: "anova", PValue: tt.phasePValue},
			}
			rep.ByGroup = []primary.HypothesisResult{
				{Test: "levene", PValue: 0.5},
				{Test: "anova", PValue: tt.groupPValue},
			}
			got := conclusion(&rep)
			if !strings.Contains(got, tt.wantPhrase) {
				t.Errorf("conclusion %q missing %q", got, tt.wantPhrase)
			}
		})
	}
}

// Levene rejecting must not count as a mean-difference finding.
func TestConclusion_IgnoresLevene(t *testing.T) {
	rep := *sampleReport()
	rep.ByPhase = []primary.HypothesisResult{
		{Test: "levene", PValue: 0.001},
		{Test: "welch-anova", PValue: 0.9},
	}
	rep.ByGroup = []primary.HypothesisResult{
		{Test: "levene", PValue: 0.001},
		{Test: "welch-anova", PValue: 0.9},
	}

	if got := conclusion(&rep); !strings.Contains(got, "does not support") {
		t.Errorf("conclusion %q should report no effect", got)
	}
}
