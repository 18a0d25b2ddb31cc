// Package charts renders the report's chart artifacts with gonum/plot.
// Violin and ridgeline shapes are built from a kernel density estimate
// of the per-phase ratings; box, histogram, and bar charts use the
// stock plotters.
package charts

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/example/lunarlens/internal/models"
	"github.com/example/lunarlens/internal/ports/primary"
	"github.com/example/lunarlens/internal/ports/secondary"
)

// Rating axis bounds with margin for density tails.
const (
	ratingLo = 0.5
	ratingHi = 5.5
	kdeSteps = 120
)

// phasePalette colors the four phases consistently across charts.
var phasePalette = []color.NRGBA{
	{R: 0x35, G: 0x4f, B: 0x8c, A: 0xff}, // New Moon
	{R: 0x3f, G: 0x8c, B: 0x5a, A: 0xff}, // First Quarter
	{R: 0xc9, G: 0x9a, B: 0x2e, A: 0xff}, // Full Moon
	{R: 0x9c, G: 0x46, B: 0x3d, A: 0xff}, // Last Quarter
}

func phaseColor(i int) color.NRGBA {
	return phasePalette[i%len(phasePalette)]
}

func fillColor(i int) color.NRGBA {
	c := phaseColor(i)
	c.A = 0x55
	return c
}

// Renderer implements the ChartRenderer secondary port.
type Renderer struct{}

// Ensure Renderer implements the interface
var _ secondary.ChartRenderer = (*Renderer)(nil)

// NewRenderer creates a chart renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// ViolinBox draws one violin per phase (mirrored KDE outline) with an
// inset box plot, phases along the X axis.
func (r *Renderer) ViolinBox(samples []primary.PhaseSample, path string) error {
	p := plot.New()
	p.Title.Text = "Rating distribution by moon phase"
	p.Y.Label.Text = "Rating"
	p.Y.Min, p.Y.Max = ratingLo, ratingHi

	labels := make([]string, len(samples))
	for i, sample := range samples {
		labels[i] = sample.Label

		ys, ds := densityCurve(sample.Ratings, ratingLo, ratingHi, kdeSteps)
		if peak := maxFloat(ds); peak > 0 {
			// Half a slot wide at the densest point.
			scale := 0.4 / peak
			outline := make(plotter.XYs, 0, 2*len(ys))
			for j := range ys {
				outline = append(outline, plotter.XY{X: float64(i) - ds[j]*scale, Y: ys[j]})
			}
			for j := len(ys) - 1; j >= 0; j-- {
				outline = append(outline, plotter.XY{X: float64(i) + ds[j]*scale, Y: ys[j]})
			}
			violin, err := plotter.NewPolygon(outline)
			if err != nil {
				return fmt.Errorf("failed to build violin outline: %w", err)
			}
			violin.Color = fillColor(i)
			violin.LineStyle.Color = phaseColor(i)
			p.Add(violin)
		}

		box, err := plotter.NewBoxPlot(vg.Points(12), float64(i), plotter.Values(sample.Ratings))
		if err != nil {
			return fmt.Errorf("failed to build box plot: %w", err)
		}
		p.Add(box)
	}
	p.NominalX(labels...)

	return p.Save(7*vg.Inch, 5*vg.Inch, path)
}

// FacetedHistogram draws one rating histogram per phase on an aligned
// 2x2 grid of panels.
func (r *Renderer) FacetedHistogram(samples []primary.PhaseSample, path string) error {
	const rows, cols = 2, 2
	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, cols)
		for j := range plots[i] {
			plots[i][j] = plot.New()
		}
	}

	for i, sample := range samples {
		if i >= rows*cols {
			break
		}
		p := plots[i/cols][i%cols]
		p.Title.Text = sample.Label
		p.X.Label.Text = "Rating"
		p.Y.Label.Text = "Count"
		p.X.Min, p.X.Max = ratingLo, ratingHi

		hist, err := plotter.NewHist(plotter.Values(sample.Ratings), 5)
		if err != nil {
			return fmt.Errorf("failed to build histogram for %s: %w", sample.Label, err)
		}
		hist.FillColor = fillColor(i)
		hist.LineStyle.Color = phaseColor(i)
		p.Add(hist)
	}

	img := vgimg.New(10*vg.Inch, 7*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 2, PadY: vg.Millimeter * 2,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter,
		PadLeft: vg.Millimeter, PadRight: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			plots[row][col].Draw(canvases[row][col])
		}
	}
	return writePNG(img, path)
}

// Ridgeline stacks the per-phase rating density curves with a vertical
// offset, first phase on top.
func (r *Renderer) Ridgeline(samples []primary.PhaseSample, path string) error {
	p := plot.New()
	p.Title.Text = "Rating density by moon phase"
	p.X.Label.Text = "Rating"
	p.X.Min, p.X.Max = ratingLo, ratingHi
	p.Y.Tick.Marker = ridgeTicks{samples: samples}

	// Normalize every ridge to the same height so the offset spacing
	// stays readable regardless of sample size.
	const ridgeHeight = 0.8
	for i, sample := range samples {
		offset := float64(len(samples) - 1 - i)
		xs, ds := densityCurve(sample.Ratings, ratingLo, ratingHi, kdeSteps)
		peak := maxFloat(ds)
		if peak == 0 {
			continue
		}
		ridge := make(plotter.XYs, 0, len(xs)+2)
		ridge = append(ridge, plotter.XY{X: ratingLo, Y: offset})
		for j := range xs {
			ridge = append(ridge, plotter.XY{X: xs[j], Y: offset + ds[j]/peak*ridgeHeight})
		}
		ridge = append(ridge, plotter.XY{X: ratingHi, Y: offset})

		poly, err := plotter.NewPolygon(ridge)
		if err != nil {
			return fmt.Errorf("failed to build ridge for %s: %w", sample.Label, err)
		}
		poly.Color = fillColor(i)
		poly.LineStyle.Color = phaseColor(i)
		p.Add(poly)
	}

	return p.Save(7*vg.Inch, 5*vg.Inch, path)
}

// GroupTotals draws total rating per complete cycle group.
func (r *Renderer) GroupTotals(groups []models.CycleGroup, path string) error {
	p := plot.New()
	p.Title.Text = "Total rating by cycle group"
	p.Y.Label.Text = "Total rating"

	totals := make(plotter.Values, len(groups))
	labels := make([]string, len(groups))
	for i, g := range groups {
		totals[i] = float64(g.TotalRating())
		labels[i] = fmt.Sprintf("%d", g.ID)
	}

	bars, err := plotter.NewBarChart(totals, vg.Points(18))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = phasePalette[0]
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(7*vg.Inch, 5*vg.Inch, path)
}

func writePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

// ridgeTicks labels each ridge baseline with its phase name.
type ridgeTicks struct {
	samples []primary.PhaseSample
}

func (t ridgeTicks) Ticks(_, _ float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, len(t.samples))
	for i, s := range t.samples {
		ticks = append(ticks, plot.Tick{
			Value: float64(len(t.samples) - 1 - i),
			Label: s.Label,
		})
	}
	return ticks
}
