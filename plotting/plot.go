// Package plotting renders series and forecasts to image files.
package plotting

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Naren8520/mlforecast/forecast"
	"github.com/Naren8520/mlforecast/pkg/errors"
)

// palette cycles across model lines. History is always drawn in the first
// color.
var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

// Options controls the rendered figure.
type Options struct {
	Title string
	// MaxHistory limits how many trailing history points are drawn per
	// series. Zero draws the full history.
	MaxHistory int
	Width      vg.Length
	Height     vg.Length
}

func (o *Options) fill() {
	if o.Width == 0 {
		o.Width = 10 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 4 * vg.Inch
	}
}

// Series draws the history of one series together with every model's
// forecast for it. A nil preds draws the history alone.
func Series(history *forecast.Table, preds *forecast.Predictions, id string, opts *Options) (*plot.Plot, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.fill()

	hist := history.Filter(id)
	if hist.Len() == 0 {
		return nil, errors.NewValueError("plotting.Series", "series "+id+" not found in history")
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = id
	}
	p.X.Label.Text = "ds"
	p.Y.Label.Text = "y"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Legend.Top = true

	start := 0
	if opts.MaxHistory > 0 && hist.Len() > opts.MaxHistory {
		start = hist.Len() - opts.MaxHistory
	}
	histXY := make(plotter.XYs, 0, hist.Len()-start)
	for i := start; i < hist.Len(); i++ {
		if math.IsNaN(hist.Y[i]) {
			continue
		}
		histXY = append(histXY, plotter.XY{X: float64(hist.Time[i].Unix()), Y: hist.Y[i]})
	}
	histLine, err := plotter.NewLine(histXY)
	if err != nil {
		return nil, errors.Wrap(err, "drawing history")
	}
	histLine.Color = palette[0]
	p.Add(histLine)
	p.Legend.Add("y", histLine)

	if preds == nil {
		return p, nil
	}
	for m, name := range preds.Models {
		vals := preds.Values[name]
		xy := make(plotter.XYs, 0, len(vals))
		for i, pid := range preds.ID {
			if pid != id || math.IsNaN(vals[i]) {
				continue
			}
			xy = append(xy, plotter.XY{X: float64(preds.Time[i].Unix()), Y: vals[i]})
		}
		line, err := plotter.NewLine(xy)
		if err != nil {
			return nil, errors.Wrapf(err, "drawing forecast %s", name)
		}
		line.Color = palette[(m+1)%len(palette)]
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(line)
		p.Legend.Add(name, line)
	}

	return p, nil
}

// SavePNG renders the plot to a PNG file.
func SavePNG(p *plot.Plot, path string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	opts.fill()
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return errors.Wrapf(err, "saving plot to %s", path)
	}
	return nil
}
