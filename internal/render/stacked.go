package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrFigureTooSmall is returned when the labels leave no room for the plot area
var ErrFigureTooSmall = errors.New("figure too small for chart layout")

const (
	modeFontSize      = 10.0
	modeTitleFontSize = 14.0
	modeMargin        = 12
	modeTickLength    = 5
	modeMaxTicks      = 5

	legendSwatch = 14
	legendRowGap = 8
)

// modeLayout is the pixel geometry of the stacked chart, derived from the measured labels
type modeLayout struct {
	plot       chart.Box
	slot       float64 // horizontal space per category
	gap        int     // space between neighbouring bars
	legendLeft int
	yRange     *chart.ContinuousRange
	ticks      []float64
	tickFormat string
}

// bar returns the left and right pixel edges of category i
func (l modeLayout) bar(i int) (int, int) {
	left := l.plot.Left + int(float64(i)*l.slot) + l.gap/2
	right := l.plot.Left + int(float64(i+1)*l.slot) - (l.gap - l.gap/2)
	if right <= left {
		right = left + 1
	}
	return left, right
}

// y maps a stacked value to an image row
func (l modeLayout) y(v float64) int {
	return l.plot.Bottom - l.yRange.Translate(v)
}

// Modes draws the stacked time-in-mode chart. Bars keep their absolute heights
// against a shared value axis, with the first series on the baseline.
func Modes(plan ModePlan, opts Options) (image.Image, error) {
	if len(plan.Categories) == 0 {
		return nil, ErrNothingToRender
	}

	r, style, layout, err := newModeCanvas(plan, opts)
	if err != nil {
		return nil, err
	}

	fillBox(r, chart.Box{Top: 0, Left: 0, Right: opts.Width, Bottom: opts.Height}, chart.ColorWhite)
	drawModeBars(r, plan, layout)
	drawModeAxes(r, plan, layout, style, opts)
	drawModeLegend(r, plan, layout, style)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to render mode chart: %w", err)
	}
	return decode(&buf)
}

// newModeCanvas creates the raster renderer and measures the layout on it
func newModeCanvas(plan ModePlan, opts Options) (chart.Renderer, chart.Style, modeLayout, error) {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, chart.Style{}, modeLayout{}, fmt.Errorf("failed to load chart font: %w", err)
	}

	r, err := chart.PNG(opts.Width, opts.Height)
	if err != nil {
		return nil, chart.Style{}, modeLayout{}, fmt.Errorf("failed to create renderer: %w", err)
	}
	r.SetDPI(opts.DPI)

	style := chart.Style{Font: font, FontSize: modeFontSize, FontColor: chart.ColorBlack}
	layout, err := layoutModes(r, plan, opts, style)
	if err != nil {
		return nil, chart.Style{}, modeLayout{}, err
	}
	return r, style, layout, nil
}

func layoutModes(r chart.Renderer, plan ModePlan, opts Options, style chart.Style) (modeLayout, error) {
	step, top := niceScale(maxTotal(plan))
	l := modeLayout{tickFormat: tickFormat(step)}
	for v := 0.0; v <= top+step/2; v += step {
		l.ticks = append(l.ticks, v)
	}

	title := style
	title.FontSize = modeTitleFontSize
	title.WriteTextOptionsToRenderer(r)
	titleHeight := r.MeasureText(plan.Title).Height()

	style.WriteTextOptionsToRenderer(r)
	textHeight := r.MeasureText("Ag").Height()

	tickWidth := 0
	for _, t := range l.ticks {
		tickWidth = maxInt(tickWidth, r.MeasureText(fmt.Sprintf(l.tickFormat, t)).Width())
	}
	categoryWidth := 0
	for _, c := range plan.Categories {
		categoryWidth = maxInt(categoryWidth, r.MeasureText(c).Width())
	}
	legendWidth := r.MeasureText(plan.LegendTitle).Width()
	for _, s := range plan.Series {
		legendWidth = maxInt(legendWidth, legendSwatch+6+r.MeasureText(s.Label).Width())
	}

	rad := plan.TickRotationDegrees * math.Pi / 180
	labelDrop := int(math.Ceil(float64(categoryWidth)*math.Sin(rad) + float64(textHeight)*math.Cos(rad)))

	l.plot = chart.Box{
		Top:    modeMargin + titleHeight + modeMargin,
		Left:   modeMargin + textHeight + modeMargin + tickWidth + modeTickLength + 4,
		Right:  opts.Width - modeMargin - legendWidth - 2*modeMargin,
		Bottom: opts.Height - modeMargin - textHeight - modeMargin - labelDrop - modeTickLength - 4,
	}
	if l.plot.Right <= l.plot.Left || l.plot.Bottom <= l.plot.Top {
		return modeLayout{}, fmt.Errorf("%w: %dx%d", ErrFigureTooSmall, opts.Width, opts.Height)
	}
	l.legendLeft = l.plot.Right + 2*modeMargin

	l.slot = float64(l.plot.Width()) / float64(len(plan.Categories))
	l.gap = int(l.slot / 4)
	l.yRange = &chart.ContinuousRange{Min: 0, Max: top, Domain: l.plot.Height()}
	return l, nil
}

func drawModeBars(r chart.Renderer, plan ModePlan, l modeLayout) {
	for i := range plan.Categories {
		left, right := l.bar(i)
		base := 0.0
		for _, s := range plan.Series {
			v := s.Values[i]
			if v <= 0 {
				continue
			}
			fillBox(r, chart.Box{Top: l.y(base + v), Left: left, Right: right, Bottom: l.y(base)}, drawing.ColorFromHex(s.Color))
			base += v
		}
	}
}

func drawModeAxes(r chart.Renderer, plan ModePlan, l modeLayout, style chart.Style, opts Options) {
	r.SetStrokeColor(chart.ColorBlack)
	r.SetStrokeWidth(1)
	r.MoveTo(l.plot.Left, l.plot.Top)
	r.LineTo(l.plot.Left, l.plot.Bottom)
	r.LineTo(l.plot.Right, l.plot.Bottom)
	r.Stroke()

	for _, t := range l.ticks {
		y := l.y(t)
		r.SetStrokeColor(chart.ColorBlack)
		r.SetStrokeWidth(1)
		r.MoveTo(l.plot.Left-modeTickLength, y)
		r.LineTo(l.plot.Left, y)
		r.Stroke()

		style.WriteTextOptionsToRenderer(r)
		label := fmt.Sprintf(l.tickFormat, t)
		b := r.MeasureText(label)
		r.Text(label, l.plot.Left-modeTickLength-4-b.Width(), y+b.Height()/2)
	}

	rad := plan.TickRotationDegrees * math.Pi / 180
	for i, c := range plan.Categories {
		left, right := l.bar(i)
		center := (left + right) / 2
		r.SetStrokeColor(chart.ColorBlack)
		r.SetStrokeWidth(1)
		r.MoveTo(center, l.plot.Bottom)
		r.LineTo(center, l.plot.Bottom+modeTickLength)
		r.Stroke()

		// Rotated labels end under their tick, rising to the right
		style.WriteTextOptionsToRenderer(r)
		b := r.MeasureText(c)
		x := center - int(float64(b.Width())*math.Cos(rad))
		y := l.plot.Bottom + modeTickLength + 4 + int(float64(b.Width())*math.Sin(rad)) + b.Height()/2
		r.SetTextRotation(-rad)
		r.Text(c, x, y)
		r.ClearTextRotation()
	}

	title := style
	title.FontSize = modeTitleFontSize
	title.WriteTextOptionsToRenderer(r)
	tb := r.MeasureText(plan.Title)
	r.Text(plan.Title, (opts.Width-tb.Width())/2, modeMargin+tb.Height())

	style.WriteTextOptionsToRenderer(r)
	xb := r.MeasureText(plan.XLabel)
	r.Text(plan.XLabel, l.plot.Left+(l.plot.Width()-xb.Width())/2, opts.Height-modeMargin)

	yb := r.MeasureText(plan.YLabel)
	r.SetTextRotation(-math.Pi / 2)
	r.Text(plan.YLabel, modeMargin+yb.Height(), l.plot.Top+(l.plot.Height()+yb.Width())/2)
	r.ClearTextRotation()
}

// drawModeLegend lists the series top-down in plan order
func drawModeLegend(r chart.Renderer, plan ModePlan, l modeLayout, style chart.Style) {
	top := l.plot.Top

	style.WriteTextOptionsToRenderer(r)
	r.Text(plan.LegendTitle, l.legendLeft, top+legendSwatch)
	top += legendSwatch + legendRowGap

	for _, s := range plan.Series {
		fillBox(r, chart.Box{Top: top, Left: l.legendLeft, Right: l.legendLeft + legendSwatch, Bottom: top + legendSwatch}, drawing.ColorFromHex(s.Color))

		style.WriteTextOptionsToRenderer(r)
		r.Text(s.Label, l.legendLeft+legendSwatch+6, top+legendSwatch-2)
		top += legendSwatch + legendRowGap
	}
}

func fillBox(r chart.Renderer, b chart.Box, c drawing.Color) {
	r.SetFillColor(c)
	r.MoveTo(b.Left, b.Top)
	r.LineTo(b.Right, b.Top)
	r.LineTo(b.Right, b.Bottom)
	r.LineTo(b.Left, b.Bottom)
	r.Close()
	r.Fill()
}

// maxTotal is the tallest stacked bar; non-positive segments are not drawn and do not count
func maxTotal(plan ModePlan) float64 {
	best := 0.0
	for i := range plan.Categories {
		total := 0.0
		for _, s := range plan.Series {
			if v := s.Values[i]; v > 0 {
				total += v
			}
		}
		best = math.Max(best, total)
	}
	return best
}

// niceScale picks a 1/2/5 tick step and an axis top that covers max in at most modeMaxTicks steps
func niceScale(max float64) (float64, float64) {
	if max <= 0 {
		return 0.2, 1
	}
	raw := max / modeMaxTicks
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var step float64
	switch f := raw / mag; {
	case f <= 1:
		step = mag
	case f <= 2:
		step = 2 * mag
	case f <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	return step, math.Ceil(max/step-1e-9) * step
}

func tickFormat(step float64) string {
	decimals := int(-math.Floor(math.Log10(step)))
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%%.%df", decimals)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
