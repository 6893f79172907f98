package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToRender is returned when a plan has no categories to draw
var ErrNothingToRender = errors.New("nothing to render: no vehicle types")

// Options sets the pixel size of a rendered figure
type Options struct {
	Width  int
	Height int
	DPI    float64
}

var dashboardBarColor = drawing.ColorFromHex("1f77b4")

// Dashboard draws one bar chart per panel and tiles them into a single figure
func Dashboard(plan DashboardPlan, opts Options) (image.Image, error) {
	if len(plan.Panels) == 0 || len(plan.Panels[0].Categories) == 0 {
		return nil, ErrNothingToRender
	}

	cellWidth := opts.Width / plan.Cols
	cellHeight := opts.Height / plan.Rows

	grid := image.NewRGBA(image.Rect(0, 0, cellWidth*plan.Cols, cellHeight*plan.Rows))
	draw.Draw(grid, grid.Bounds(), image.White, image.Point{}, draw.Src)

	for _, p := range plan.Panels {
		img, err := renderPanel(p, cellWidth, cellHeight, opts.DPI)
		if err != nil {
			return nil, fmt.Errorf("failed to render panel %q: %w", p.Title, err)
		}
		cell := image.Rect(p.Col*cellWidth, p.Row*cellHeight, (p.Col+1)*cellWidth, (p.Row+1)*cellHeight)
		draw.Draw(grid, cell, img, img.Bounds().Min, draw.Over)
	}
	return grid, nil
}

func renderPanel(p Panel, width, height int, dpi float64) (image.Image, error) {
	bars := make([]chart.Value, len(p.Categories))
	for i, name := range p.Categories {
		bars[i] = chart.Value{
			Value: p.Values[i],
			Label: name,
			Style: chart.Style{FillColor: dashboardBarColor, StrokeColor: dashboardBarColor, StrokeWidth: 1},
		}
	}

	lo, hi := valueRange(p.Values)
	barWidth := width / (2 * len(p.Categories))
	if barWidth > 80 {
		barWidth = 80
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bc := chart.BarChart{
		Title:    p.Title,
		Width:    width,
		Height:   height,
		DPI:      dpi,
		BarWidth: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return decode(&buf)
}

// valueRange returns a y range that always includes zero and is never empty
func valueRange(values []float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi + (hi-lo)*0.1
}

func decode(buf *bytes.Buffer) (image.Image, error) {
	img, err := png.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered chart: %w", err)
	}
	return img, nil
}

// WritePNG encodes img to path
func WritePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
