package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultMargin pads each axis by 10% of the data range
const DefaultMargin = 0.1

// Figure is a 2D plot with a line series and a scatter series
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Line   plotter.XYs
	Points plotter.XYs
	Margin float64 // Fraction of the data range added on each side of both axes
}

// Limits are the axis ranges of a figure
type Limits struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Limits returns the scatter data range (or the line range if there are no points)
// padded by Margin on every side
func (f *Figure) Limits() Limits {
	data := f.Points
	if len(data) == 0 {
		data = f.Line
	}
	if len(data) == 0 {
		return Limits{}
	}

	xmin, xmax, ymin, ymax := plotter.XYRange(data)
	xmin, xmax = pad(xmin, xmax, f.Margin)
	ymin, ymax = pad(ymin, ymax, f.Margin)
	return Limits{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
}

// pad widens [lo, hi] by margin times its width. A zero-width range is padded
// relative to its magnitude, or by margin itself at zero.
func pad(lo, hi, margin float64) (float64, float64) {
	w := hi - lo
	if w == 0 {
		w = math.Abs(hi)
	}
	if w == 0 {
		w = 1
	}
	return lo - w*margin, hi + w*margin
}

// Plot builds the gonum plot for the figure
func (f *Figure) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel

	if len(f.Line) > 0 {
		line, err := plotter.NewLine(f.Line)
		if err != nil {
			return nil, fmt.Errorf("failed to create line: %w", err)
		}
		p.Add(line)
	}

	if len(f.Points) > 0 {
		scatter, err := plotter.NewScatter(f.Points)
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.CrossGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(scatter)
	}

	lim := f.Limits()
	p.X.Min, p.X.Max = lim.XMin, lim.XMax
	p.Y.Min, p.Y.Max = lim.YMin, lim.YMax

	return p, nil
}

// Save renders the figure to an image file; the format follows the file extension
func (f *Figure) Save(path string, width, height vg.Length) error {
	p, err := f.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// SemiLogFigure plots samples against ln(x) together with curve evaluated at
// n points evenly spaced in ln(x) across the sample range
func SemiLogFigure(title string, xs, ys []float64, curve func(x float64) float64, n int) (*Figure, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("sample length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("no samples to plot")
	}
	if n < 2 {
		return nil, fmt.Errorf("curve needs at least 2 points, got %d", n)
	}

	points := make(plotter.XYs, len(xs))
	for i, x := range xs {
		if x <= 0 {
			return nil, fmt.Errorf("sample %d: x = %g has no logarithm", i, x)
		}
		points[i] = plotter.XY{X: math.Log(x), Y: ys[i]}
	}

	lo, hi, _, _ := plotter.XYRange(points)
	line := make(plotter.XYs, n)
	for i := range line {
		lx := lo + float64(i)*(hi-lo)/float64(n-1)
		line[i] = plotter.XY{X: lx, Y: curve(math.Exp(lx))}
	}

	return &Figure{
		Title:  title,
		XLabel: "log(x)",
		YLabel: "y",
		Line:   line,
		Points: points,
		Margin: DefaultMargin,
	}, nil
}
