// Package avaplot draws amplitude-versus-angle curves (modeled, observed
// and fitted reflection amplitudes and phases) to PNG images.
package avaplot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/plot"
	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/bob-anderson-ok/zoeppritz/modeling"
)

// Curve is one named set of (angle, value) pairs.
type Curve struct {
	Name   string
	Angles []float64 // degrees
	Values []float64
	Points bool // draw markers only, as for observed data
}

// Figure is one panel of a rendered image.
type Figure struct {
	Title  string
	YLabel string
	Curves []Curve
}

// ErrNoData is returned when a figure has nothing to draw.
var ErrNoData = errors.New("avaplot: no data to plot")

var palette = []color.RGBA{
	{R: 0, G: 0, B: 255, A: 255},     // blue
	{R: 255, G: 0, B: 0, A: 255},     // red
	{R: 0, G: 140, B: 0, A: 255},     // green
	{R: 120, G: 120, B: 120, A: 255}, // gray
}

// StepTicks places a tick every Step units, labelled with Format.
type StepTicks struct {
	Step   float64
	Format string
}

// Ticks implements plot.Ticker.
func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	first := math.Ceil(min/t.Step - 1e-9)
	for i := first; i*t.Step <= max+t.Step*1e-9; i++ {
		v := i * t.Step
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

// niceStep rounds span/8 to 1, 2 or 5 times a power of ten.
func niceStep(span float64) float64 {
	if !(span > 0) {
		return 1
	}
	raw := span / 8
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f < 1.5:
		return mag
	case f < 3.5:
		return 2 * mag
	case f < 7.5:
		return 5 * mag
	}
	return 10 * mag
}

func tickFormat(step float64) string {
	decimals := int(math.Max(0, -math.Floor(math.Log10(step))))
	return fmt.Sprintf("%%.%df", decimals)
}

func setFonts(p *plot.Plot) {
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)
}

func (f Figure) plot() (*plot.Plot, error) {
	p := plot.New()
	setFonts(p)
	p.Title.Text = f.Title
	p.X.Label.Text = "incidence angle (degrees)"
	p.Y.Label.Text = f.YLabel
	p.Add(plotter.NewGrid())

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, c := range f.Curves {
		if len(c.Angles) != len(c.Values) {
			return nil, fmt.Errorf("avaplot: curve %q has %d angles and %d values", c.Name, len(c.Angles), len(c.Values))
		}
		if len(c.Angles) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(c.Angles))
		for j := range c.Angles {
			pts[j].X = c.Angles[j]
			pts[j].Y = c.Values[j]
			xMin, xMax = math.Min(xMin, c.Angles[j]), math.Max(xMax, c.Angles[j])
			yMin, yMax = math.Min(yMin, c.Values[j]), math.Max(yMax, c.Values[j])
		}

		col := palette[i%len(palette)]
		if c.Points {
			scatter, err := plotter.NewScatter(pts)
			if err != nil {
				return nil, err
			}
			scatter.Shape = draw.CircleGlyph{}
			scatter.Radius = vg.Points(2.5)
			scatter.Color = col
			p.Add(scatter)
			if c.Name != "" {
				p.Legend.Add(c.Name, scatter)
			}
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = col
		line.Width = vg.Points(1.5)
		p.Add(line)
		if c.Name != "" {
			p.Legend.Add(c.Name, line)
		}
	}
	if math.IsInf(xMin, 1) {
		return nil, ErrNoData
	}

	p.X.Tick.Marker = StepTicks{Step: 10, Format: "%.0f"}
	yStep := niceStep(yMax - yMin)
	p.Y.Tick.Marker = StepTicks{Step: yStep, Format: tickFormat(yStep)}
	p.Legend.Top = true

	// dashed zero line
	if yMin <= 0 && yMax >= 0 {
		hline, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: 0}, {X: xMax, Y: 0}})
		if err != nil {
			return nil, err
		}
		hline.Dashes = []vg.Length{
			vg.Points(6), // dash length
			vg.Points(4), // gap length
		}
		hline.Color = color.RGBA{R: 0, G: 0, B: 0, A: 255} // black
		p.Add(hline)
	}
	return p, nil
}

// Render draws the figures stacked top to bottom into a wPx×hPx image.
func Render(figures []Figure, wPx, hPx float64) (image.Image, error) {
	if len(figures) == 0 {
		return nil, ErrNoData
	}
	plots := make([][]*plot.Plot, len(figures))
	for i, f := range figures {
		p, err := f.plot()
		if err != nil {
			return nil, err
		}
		plots[i] = []*plot.Plot{p}
	}

	// Choose a "virtual" size in vg units and map to pixels via DPI.
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: len(figures), Cols: 1, PadY: vg.Points(12), PadTop: vg.Points(4), PadBottom: vg.Points(4)}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return c.Image(), nil
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

// SampleFigures returns an amplitude panel and a phase panel for modeled
// samples.
func SampleFigures(title string, samples []modeling.Sample) []Figure {
	angles := make([]float64, len(samples))
	amps := make([]float64, len(samples))
	phases := make([]float64, len(samples))
	for i, s := range samples {
		angles[i], amps[i], phases[i] = s.Angle, s.Amplitude, s.Phase
	}
	return []Figure{
		{Title: title, YLabel: "amplitude", Curves: []Curve{{Angles: angles, Values: amps}}},
		{Title: "Phase", YLabel: "phase (degrees)", Curves: []Curve{{Angles: angles, Values: phases}}},
	}
}

// FitFigure compares observed amplitudes with the amplitudes of a fitted
// model on the same angles.
func FitFigure(title string, angles, observed, fitted []float64) Figure {
	return Figure{
		Title:  title,
		YLabel: "amplitude",
		Curves: []Curve{
			{Name: "observed", Angles: angles, Values: observed, Points: true},
			{Name: "fitted", Angles: angles, Values: fitted},
		},
	}
}
