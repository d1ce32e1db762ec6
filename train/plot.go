package train

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

type plotConfig struct {
	title  string
	width  vg.Length
	height vg.Length
}

// PlotOption configures SavePlot.
type PlotOption func(*plotConfig)

// WithTitle sets the plot title.
func WithTitle(title string) PlotOption {
	return func(c *plotConfig) {
		c.title = title
	}
}

// WithSize sets the canvas size.
func WithSize(width, height vg.Length) PlotOption {
	return func(c *plotConfig) {
		c.width = width
		c.height = height
	}
}

var (
	trainColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	valColor   = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// SavePlot draws the training and validation loss curves against epoch and
// writes them to path. The image format follows the file extension
// (.png, .svg, .pdf, ...).
func SavePlot(h History, path string, opts ...PlotOption) error {
	if h.Train.Len() == 0 && h.Validation.Len() == 0 {
		return errors.NewModelError("SavePlot", "history is empty", errors.ErrEmptyData)
	}

	cfg := plotConfig{title: "Loss", width: 6 * vg.Inch, height: 4 * vg.Inch}
	for _, o := range opts {
		o(&cfg)
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Loss"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	series := []struct {
		name   string
		record LossRecord
		color  color.Color
		shape  draw.GlyphDrawer
	}{
		{"train", h.Train, trainColor, draw.CircleGlyph{}},
		{"validation", h.Validation, valColor, draw.CrossGlyph{}},
	}
	for _, s := range series {
		if s.record.Len() == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(curve(s.record))
		if err != nil {
			return errors.Wrapf(err, "plot %s loss", s.name)
		}
		line.Color = s.color
		line.LineStyle.Width = vg.Points(1.5)
		points.Color = s.color
		points.Shape = s.shape
		p.Add(line, points)
		p.Legend.Add(s.name, line, points)
	}

	if err := p.Save(cfg.width, cfg.height, path); err != nil {
		return errors.Wrapf(err, "save plot to %s", path)
	}
	return nil
}

func curve(r LossRecord) plotter.XYs {
	pts := make(plotter.XYs, r.Len())
	for i, v := range r.Values() {
		pts[i] = plotter.XY{X: float64(i + 1), Y: v}
	}
	return pts
}
