package charts

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/lunarlens/internal/models"
	"github.com/example/lunarlens/internal/ports/primary"
)

func testSamples() []primary.PhaseSample {
	return []primary.PhaseSample{
		{Code: models.PhaseNewMoon, Label: "New Moon", Ratings: []float64{1, 2, 3, 3, 4}},
		{Code: models.PhaseFirstQuarter, Label: "First Quarter", Ratings: []float64{2, 3, 4, 4, 5}},
		{Code: models.PhaseFullMoon, Label: "Full Moon", Ratings: []float64{3, 3, 3, 4, 5}},
		{Code: models.PhaseLastQuarter, Label: "Last Quarter", Ratings: []float64{1, 1, 2, 5, 5}},
	}
}

func testGroups() []models.CycleGroup {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	group := func(id int, ratings ...int) models.CycleGroup {
		g := models.CycleGroup{ID: id}
		for i, r := range ratings {
			g.Records = append(g.Records, models.JoinedRecord{
				Date:   base.AddDate(0, 0, id*30+i),
				Rating: r,
				Code:   models.PhaseCode(i%4 + 1),
			})
		}
		return g
	}
	return []models.CycleGroup{group(0, 4, 3, 5, 2), group(1, 1, 2, 3, 4)}
}

func assertPNGWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("chart file is empty")
	}
}

func TestRenderer_WritesCharts(t *testing.T) {
	r := NewRenderer()
	dir := t.TempDir()

	tests := []struct {
		name   string
		render func(path string) error
	}{
		{"violin", func(p string) error { return r.ViolinBox(testSamples(), p) }},
		{"hist", func(p string) error { return r.FacetedHistogram(testSamples(), p) }},
		{"ridgeline", func(p string) error { return r.Ridgeline(testSamples(), p) }},
		{"bars", func(p string) error { return r.GroupTotals(testGroups(), p) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".png")
			if err := tt.render(path); err != nil {
				t.Fatalf("render error: %v", err)
			}
			assertPNGWritten(t, path)
		})
	}
}

func TestDensityCurve(t *testing.T) {
	values := []float64{2, 3, 3, 4}
	xs, ys := densityCurve(values, ratingLo, ratingHi, kdeSteps)

	if len(xs) != kdeSteps || len(ys) != kdeSteps {
		t.Fatalf("got %d/%d points, want %d", len(xs), len(ys), kdeSteps)
	}
	if xs[0] != ratingLo || xs[len(xs)-1] != ratingHi {
		t.Errorf("x range = [%v, %v], want [%v, %v]", xs[0], xs[len(xs)-1], ratingLo, ratingHi)
	}

	// Density must peak near the sample mode and be non-negative
	// everywhere.
	peakX, peakY := 0.0, 0.0
	for i := range xs {
		if ys[i] < 0 {
			t.Fatalf("negative density at x=%v", xs[i])
		}
		if ys[i] > peakY {
			peakX, peakY = xs[i], ys[i]
		}
	}
	if math.Abs(peakX-3) > 0.5 {
		t.Errorf("density peaks at %v, want near 3", peakX)
	}

	// Approximate unit mass over the support.
	var mass float64
	step := (ratingHi - ratingLo) / float64(kdeSteps-1)
	for _, y := range ys {
		mass += y * step
	}
	if mass < 0.8 || mass > 1.1 {
		t.Errorf("density mass = %v, want about 1", mass)
	}
}

func TestDensityCurve_Degenerate(t *testing.T) {
	if xs, ys := densityCurve(nil, ratingLo, ratingHi, kdeSteps); xs != nil || ys != nil {
		t.Error("expected nil curves for empty sample")
	}

	// A constant sample still yields a curve thanks to the bandwidth
	// floor.
	xs, ys := densityCurve([]float64{3, 3, 3}, ratingLo, ratingHi, kdeSteps)
	if len(xs) == 0 {
		t.Fatal("expected a curve for constant sample")
	}
	if maxFloat(ys) == 0 {
		t.Error("expected nonzero density for constant sample")
	}
}

func TestRenderer_FewerThanFourPhases(t *testing.T) {
	r := NewRenderer()
	samples := testSamples()[:2]
	dir := t.TempDir()

	for name, render := range map[string]func(string) error{
		"violin.png": func(p string) error { return r.ViolinBox(samples, p) },
		"hist.png":   func(p string) error { return r.FacetedHistogram(samples, p) },
		"ridge.png":  func(p string) error { return r.Ridgeline(samples, p) },
	} {
		path := filepath.Join(dir, name)
		if err := render(path); err != nil {
			t.Errorf("%s render error: %v", name, err)
			continue
		}
		assertPNGWritten(t, path)
	}
}
