package export

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/calview-cli/internal/dataset"
	"github.com/KaramelBytes/calview-cli/internal/variables"
)

// ErrNoSeries reports that none of the selected variables has a column of
// the requested kind, so there is nothing to draw.
var ErrNoSeries = errors.New("no selected variable has a column of the requested kind")

// ThemeProvider exposes the active color scheme to the renderer.
type ThemeProvider interface {
	DarkMode() bool
}

// Bounds are explicit visible plot bounds supplied by the caller.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// ChartOptions controls chart rendering.
type ChartOptions struct {
	Width  int // 0 picks 1280
	Height int // 0 picks 640
	// Bounds overrides the data-derived axis ranges when non-nil.
	Bounds *Bounds
	Theme  ThemeProvider
}

// Fixed series palette, matching the viewer's ten colors.
var palette = []drawing.Color{
	{R: 255, A: 255},                 // red
	{B: 255, A: 255},                 // blue
	{G: 255, A: 255},                 // green
	{R: 255, G: 165, A: 255},         // orange
	{R: 128, B: 128, A: 255},         // purple
	{R: 165, G: 42, B: 42, A: 255},   // brown
	{R: 255, G: 255, A: 255},         // yellow
	{R: 255, G: 192, B: 203, A: 255}, // pink
	{R: 96, G: 96, B: 96, A: 255},    // dark gray
	{R: 0, G: 128, B: 128, A: 255},   // teal
}

// SeriesColor returns the palette color for a variable's assigned slot.
func SeriesColor(v *variables.Variable) drawing.Color {
	return palette[v.Color%len(palette)]
}

// RenderChart draws the same series WriteCSV would emit as a PNG line chart:
// one line per selected variable that has a column of the requested kind,
// points only where the record carries the column. Axis ranges come from
// opts.Bounds when given, otherwise from the data range with a 10% margin on
// the value axis.
func RenderChart(w io.Writer, ds *dataset.Dataset, vars []*variables.Variable, kind Kind, opts ChartOptions) error {
	var series []chart.Series
	yMin, yMax := 0.0, 0.0
	xMin, xMax := 0.0, 0.0
	first := true
	for _, v := range vars {
		col := kind.column(v)
		if col == "" {
			continue
		}
		var xs, ys []float64
		for _, r := range ds.Records {
			val, ok := r.Fields[col]
			if !ok {
				continue
			}
			x := float64(r.Iteration)
			xs = append(xs, x)
			ys = append(ys, val)
			if first {
				yMin, yMax = val, val
				xMin, xMax = x, x
				first = false
				continue
			}
			if val < yMin {
				yMin = val
			}
			if val > yMax {
				yMax = val
			}
			if x < xMin {
				xMin = x
			}
			if x > xMax {
				xMax = x
			}
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    v.Name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: SeriesColor(v), StrokeWidth: 2},
		})
	}
	if len(series) == 0 {
		return ErrNoSeries
	}

	var xRange, yRange *chart.ContinuousRange
	if opts.Bounds != nil {
		xRange = &chart.ContinuousRange{Min: opts.Bounds.XMin, Max: opts.Bounds.XMax}
		yRange = &chart.ContinuousRange{Min: opts.Bounds.YMin, Max: opts.Bounds.YMax}
	} else {
		pad := (yMax - yMin) * 0.10
		if pad == 0 {
			pad = 1 // flat series still needs visible height
		}
		yRange = &chart.ContinuousRange{Min: yMin - pad, Max: yMax + pad}
		if xMax == xMin {
			xMax = xMin + 1
		}
		xRange = &chart.ContinuousRange{Min: xMin, Max: xMax}
	}

	width := opts.Width
	if width <= 0 {
		width = 1280
	}
	height := opts.Height
	if height <= 0 {
		height = 640
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("%s vs %s", kind, dataset.IterationColumn),
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: dataset.IterationColumn, Range: xRange},
		YAxis:  chart.YAxis{Name: string(kind), Range: yRange},
		Series: series,
		Background: chart.Style{
			Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28},
		},
	}
	if opts.Theme != nil && opts.Theme.DarkMode() {
		applyDarkScheme(&ch)
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func applyDarkScheme(ch *chart.Chart) {
	bg := drawing.Color{R: 24, G: 24, B: 28, A: 255}
	fg := drawing.Color{R: 220, G: 220, B: 224, A: 255}
	ch.Background.FillColor = bg
	ch.Background.FontColor = fg
	ch.Canvas = chart.Style{FillColor: bg, FontColor: fg}
	ch.TitleStyle = chart.Style{FontColor: fg}
	ch.XAxis.Style = chart.Style{FontColor: fg, StrokeColor: fg}
	ch.YAxis.Style = chart.Style{FontColor: fg, StrokeColor: fg}
}
