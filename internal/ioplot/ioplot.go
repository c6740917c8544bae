// Package ioplot draws forest plots of odds-ratio results.
package ioplot

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/cathapult/cathapult/pkg/enrich"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	width     = 10 * vg.Inch
	minHeight = 6 * vg.Inch
	rowHeight = 0.275 * vg.Inch
)

var (
	sigColor   = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	otherColor = color.Gray{Y: 0x80}
)

// Size returns the canvas size for n rows.
func Size(n int) (vg.Length, vg.Length) {
	return width, max(minHeight, vg.Length(n)*rowHeight)
}

// Format returns the image format implied by the file extension, png when
// there is none.
func Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}

// New builds a forest plot with one row per feature: a point at the log2
// odds ratio and a horizontal line across its confidence interval.
func New(rows []enrich.ForestRow) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, NothingToPlotError()
	}

	p := plot.New()
	p.Title.Text = "Feature Enrichment Odds Ratio"
	p.X.Label.Text = "Odds Ratio (log2 scale)\n(Group 1 vs Group 2)"
	p.Y.Label.Text = "Feature"

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	p.Add(grid)

	ref, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: -0.5},
		{X: 0, Y: float64(len(rows)) - 0.5},
	})
	if err != nil {
		return nil, PlotError(err)
	}
	ref.LineStyle.Color = color.Black
	ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(ref)

	labels := make([]string, len(rows))
	points := make(plotter.XYs, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
		points[i] = plotter.XY{X: r.Log2OR, Y: float64(i)}

		ci, err := plotter.NewLine(plotter.XYs{
			{X: r.Lower, Y: float64(i)},
			{X: r.Upper, Y: float64(i)},
		})
		if err != nil {
			return nil, PlotError(err)
		}
		ci.LineStyle.Color = color.Black
		ci.LineStyle.Width = vg.Points(1)
		p.Add(ci)
	}

	sc, err := plotter.NewScatter(points)
	if err != nil {
		return nil, PlotError(err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c := color.Color(otherColor)
		if rows[i].Significant {
			c = sigColor
		}
		return draw.GlyphStyle{
			Color:  c,
			Radius: vg.Points(3.5),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(sc)

	p.NominalY(labels...)
	p.Y.Min = -0.5
	p.Y.Max = float64(len(rows)) - 0.5
	return p, nil
}

// Save draws rows and writes the image to path. The image format follows
// the file extension.
func Save(path string, rows []enrich.ForestRow) error {
	p, err := New(rows)
	if err != nil {
		return err
	}

	w, h := Size(len(rows))
	wt, err := p.WriterTo(w, h, Format(path))
	if err != nil {
		return PlotError(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return PlotError(err)
	}
	if _, err = wt.WriteTo(f); err != nil {
		_ = f.Close()
		return PlotError(err)
	}
	if err = f.Close(); err != nil {
		return PlotError(err)
	}
	return nil
}
