package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/roman-kulish/bandplan-vswr/internal/bandplan"
)

const (
	defaultWidth = 1600
	minWidth     = 600

	titleHeight  = 40
	plotHeight   = 140
	plotPadding  = 4 // keeps VSWR 1 off the frame
	stripHeight  = 36
	tickHeight   = 22
	panelSpacing = 18
	panelHeight  = plotHeight + stripHeight + tickHeight

	tickMarkHeight = 5
	curveWidth     = 2.0
	dashLength     = 6
	dashGap        = 4

	legendRowHeight = 22
	swatchWidth     = 28
	swatchHeight    = 12
	legendSpacing   = 24

	// Default border sizes in pixels
	defaultTopBorder    = 20
	defaultLeftBorder   = 70
	defaultBottomBorder = 40
	defaultRightBorder  = 30
)

// BorderConfig defines the sizes of white space around the panels
type BorderConfig struct {
	Top    int // Space above the title
	Left   int // Space for the VSWR scale
	Bottom int // Space for the information bar
	Right  int // Right padding
}

// RenderConfig holds all configuration options for chart rasterisation
type RenderConfig struct {
	Width        int // Image width in pixels
	Palette      *Palette
	BorderConfig BorderConfig
}

// ChartRenderer draws a Chart on an image.
type ChartRenderer struct {
	config RenderConfig
}

// NewChartRenderer creates a new chart renderer with the given configuration
func NewChartRenderer(config RenderConfig) (*ChartRenderer, error) {
	if config.Width == 0 {
		config.Width = defaultWidth
	}
	if config.Width < minWidth {
		return nil, fmt.Errorf("image width %d is below the minimum of %d pixels", config.Width, minWidth)
	}
	if config.Palette == nil {
		config.Palette = NewPalette(ClassicTheme)
	}
	if config.BorderConfig.Top == 0 {
		config.BorderConfig.Top = defaultTopBorder
	}
	if config.BorderConfig.Left == 0 {
		config.BorderConfig.Left = defaultLeftBorder
	}
	if config.BorderConfig.Bottom == 0 {
		config.BorderConfig.Bottom = defaultBottomBorder
	}
	if config.BorderConfig.Right == 0 {
		config.BorderConfig.Right = defaultRightBorder
	}

	return &ChartRenderer{config: config}, nil
}

type legendItem struct {
	LegendEntry
	x, row int
}

// Render creates an image of the chart
func (r *ChartRenderer) Render(chart *Chart) (*image.RGBA, error) {
	if chart == nil {
		return nil, errors.New("chart required")
	}

	ann, err := newAnnotator()
	if err != nil {
		return nil, fmt.Errorf("creating annotator: %w", err)
	}
	defer ann.Close()

	borders := r.config.BorderConfig
	contentWidth := r.config.Width - borders.Left - borders.Right

	legend, rows := r.layoutLegend(ann, chart.Legend, contentWidth)

	height := borders.Top + titleHeight +
		len(chart.Panels)*(panelHeight+panelSpacing) +
		rows*legendRowHeight + borders.Bottom

	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	ann.attach(img)

	if err = ann.drawCentered(chart.Title, r.config.Width/2, borders.Top+titleHeight/2, titleFontSize, foregroundColor); err != nil {
		return nil, fmt.Errorf("drawing title: %w", err)
	}

	y := borders.Top + titleHeight
	for _, panel := range chart.Panels {
		plot := image.Rect(borders.Left, y, borders.Left+contentWidth, y+plotHeight)
		if err = r.drawPanel(img, ann, panel, plot); err != nil {
			return nil, fmt.Errorf("drawing panel %s: %w", panel.Title, err)
		}
		y += panelHeight + panelSpacing
	}

	if err = r.drawLegend(img, ann, legend, image.Pt(borders.Left, y)); err != nil {
		return nil, fmt.Errorf("drawing legend: %w", err)
	}

	if chart.Footer != "" {
		if err = ann.drawLeftAligned(chart.Footer, borders.Left, height-borders.Bottom/2, fontSize, foregroundColor); err != nil {
			return nil, fmt.Errorf("drawing info bar: %w", err)
		}
	}

	return img, nil
}

// layoutLegend flows legend entries left to right, wrapping at width.
func (r *ChartRenderer) layoutLegend(ann *annotator, entries []LegendEntry, width int) ([]legendItem, int) {
	if len(entries) == 0 {
		return nil, 0
	}

	items := make([]legendItem, len(entries))
	x, row := 0, 0
	for i, e := range entries {
		textWidth, _ := ann.measure(e.Label, fontSize)
		itemWidth := swatchWidth + 6 + textWidth

		if x > 0 && x+itemWidth > width {
			x, row = 0, row+1
		}
		items[i] = legendItem{LegendEntry: e, x: x, row: row}
		x += itemWidth + legendSpacing
	}
	return items, row + 1
}

func (r *ChartRenderer) drawLegend(img *image.RGBA, ann *annotator, items []legendItem, origin image.Point) error {
	for _, item := range items {
		x := origin.X + item.x
		centerY := origin.Y + item.row*legendRowHeight + legendRowHeight/2

		swatch := image.Rect(x, centerY-swatchHeight/2, x+swatchWidth, centerY+swatchHeight/2)
		fillRect(img, swatch, item.Color)

		if err := ann.drawLeftAligned(item.Label, x+swatchWidth+6, centerY, fontSize, foregroundColor); err != nil {
			return err
		}
	}
	return nil
}

// axes maps frequency and VSWR onto the plot area of a panel
type axes struct {
	plot image.Rectangle
	view bandplan.FrequencyRange
	yMax float64
}

func (a axes) x(hz float64) float64 {
	return float64(a.plot.Min.X) + (hz-a.view.From)/a.view.Width()*float64(a.plot.Dx())
}

func (a axes) y(vswr float64) float64 {
	top := float64(a.plot.Min.Y + plotPadding)
	bottom := float64(a.plot.Max.Y - plotPadding)
	v := math.Max(1, math.Min(vswr, a.yMax))
	return bottom - (v-1)/(a.yMax-1)*(bottom-top)
}

// clampX converts a frequency to a column inside the plot
func (a axes) clampX(hz float64) int {
	x := math.Round(a.x(hz))
	return int(math.Max(float64(a.plot.Min.X), math.Min(x, float64(a.plot.Max.X))))
}

func (r *ChartRenderer) drawPanel(img *image.RGBA, ann *annotator, p Panel, plot image.Rectangle) error {
	ax := axes{plot: plot, view: p.View, yMax: p.YMax}
	strip := image.Rect(plot.Min.X, plot.Max.Y, plot.Max.X, plot.Max.Y+stripHeight)

	for _, t := range p.XTicks {
		if p.View.Contains(t) {
			vline(img, ax.clampX(t), plot.Min.Y, plot.Max.Y, gridColor)
		}
	}
	for _, v := range p.YTicks {
		hline(img, plot.Min.X, plot.Max.X, int(math.Round(ax.y(v))), gridColor)
	}
	for _, v := range p.References {
		dashedHline(img, plot.Min.X, plot.Max.X, int(math.Round(ax.y(v))), foregroundColor)
	}

	for _, s := range p.Series {
		points := make([][2]float64, len(s.Points))
		for i, pt := range s.Points {
			points[i] = [2]float64{ax.x(pt.Frequency), ax.y(pt.VSWR)}
		}
		drawPolyline(img, plot, points, curveWidth, s.Color)
	}

	if err := r.drawStrip(img, ann, p, ax, strip); err != nil {
		return err
	}

	frame(img, plot, foregroundColor)
	frame(img, strip, foregroundColor)

	_, ascent := ann.measure(p.Title, fontSize)
	if err := ann.drawText(p.Title, plot.Min.X+6, plot.Min.Y+ascent+4, fontSize, foregroundColor); err != nil {
		return err
	}

	for _, t := range p.XTicks {
		if !p.View.Contains(t) {
			continue
		}
		x := ax.clampX(t)
		vline(img, x, strip.Max.Y, strip.Max.Y+tickMarkHeight, foregroundColor)
		if err := ann.drawCentered(frequencyLabel(t, p.TickPrecision), x, strip.Max.Y+tickHeight/2+2, smallFontSize, foregroundColor); err != nil {
			return err
		}
	}

	for _, v := range p.YTicks {
		y := int(math.Round(ax.y(v)))
		hline(img, plot.Min.X-tickMarkHeight, plot.Min.X, y, foregroundColor)
		if err := ann.drawRightAligned(vswrLabel(v), plot.Min.X-tickMarkHeight-3, y, smallFontSize, foregroundColor); err != nil {
			return err
		}
	}

	return nil
}

// drawStrip draws the sub-bands of a band panel, or the band markers of an
// overview panel, under the plot. Labels that do not fit are left out.
func (r *ChartRenderer) drawStrip(img *image.RGBA, ann *annotator, p Panel, ax axes, strip image.Rectangle) error {
	for _, seg := range p.Segments {
		top, bottom := seg.Lane.Span()
		rect := image.Rect(
			ax.clampX(seg.From),
			strip.Min.Y+int(math.Round(top*stripHeight)),
			ax.clampX(seg.To),
			strip.Min.Y+int(math.Round(bottom*stripHeight)),
		)
		if rect.Empty() {
			continue
		}
		fillRect(img, rect, r.config.Palette.ModeColor(seg.Mode))

		if seg.Label == "" {
			continue
		}
		if width, ascent := ann.measure(seg.Label, smallFontSize); width+4 > rect.Dx() || ascent > rect.Dy() {
			continue
		}
		center := rect.Min.Add(rect.Max).Div(2)
		if err := ann.drawCentered(seg.Label, center.X, center.Y, smallFontSize, foregroundColor); err != nil {
			return err
		}
	}

	labelEnd := math.MinInt
	for _, m := range p.Markers {
		x0, x1 := ax.clampX(m.From), ax.clampX(m.To)
		if x1-x0 < 2 {
			x1 = x0 + 2
		}
		fillRect(img, image.Rect(x0, strip.Min.Y, x1, strip.Min.Y+stripHeight/2), r.config.Palette.OverviewColor())

		width, _ := ann.measure(m.Label, smallFontSize)
		center := (x0 + x1) / 2
		if center-width/2 <= labelEnd {
			continue
		}
		if err := ann.drawCentered(m.Label, center, strip.Min.Y+3*stripHeight/4, smallFontSize, foregroundColor); err != nil {
			return err
		}
		labelEnd = center + width/2 + 2
	}

	return nil
}

// drawPolyline strokes the polyline with anti-aliasing, clipped to the plot.
func drawPolyline(img *image.RGBA, plot image.Rectangle, points [][2]float64, width float64, c color.Color) {
	if len(points) == 0 {
		return
	}

	w, h := float64(plot.Dx()), float64(plot.Dy())
	half := width / 2
	origin := [2]float64{float64(plot.Min.X), float64(plot.Min.Y)}

	z := vector.NewRasterizer(plot.Dx(), plot.Dy())

	local := func(p [2]float64) [2]float64 {
		return [2]float64{p[0] - origin[0], p[1] - origin[1]}
	}

	square := func(p [2]float64) {
		if p[0] < 0 || p[0] > w || p[1] < 0 || p[1] > h {
			return
		}
		z.MoveTo(float32(p[0]-half), float32(p[1]+half))
		z.LineTo(float32(p[0]+half), float32(p[1]+half))
		z.LineTo(float32(p[0]+half), float32(p[1]-half))
		z.LineTo(float32(p[0]-half), float32(p[1]-half))
		z.ClosePath()
	}

	square(local(points[0]))
	for i := 1; i < len(points); i++ {
		p0, p1, ok := clipSegment(local(points[i-1]), local(points[i]), w, h)
		if !ok {
			continue
		}

		dx, dy := p1[0]-p0[0], p1[1]-p0[1]
		length := math.Hypot(dx, dy)
		if length > 0 {
			nx, ny := -dy/length*half, dx/length*half
			z.MoveTo(float32(p0[0]+nx), float32(p0[1]+ny))
			z.LineTo(float32(p1[0]+nx), float32(p1[1]+ny))
			z.LineTo(float32(p1[0]-nx), float32(p1[1]-ny))
			z.LineTo(float32(p0[0]-nx), float32(p0[1]-ny))
			z.ClosePath()
		}
		square(p1)
	}

	z.Draw(img, plot, image.NewUniform(c), image.Point{})
}

// clipSegment clips the segment a-b to the rectangle [0, w] x [0, h] using the
// Liang-Barsky algorithm.
func clipSegment(a, b [2]float64, w, h float64) ([2]float64, [2]float64, bool) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a[0]},
		{dx, w - a[0]},
		{-dy, a[1]},
		{dy, h - a[1]},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}

	return [2]float64{a[0] + t0*dx, a[1] + t0*dy}, [2]float64{a[0] + t1*dx, a[1] + t1*dy}, true
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func hline(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x < x1; x++ {
		img.Set(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		img.Set(x, y, c)
	}
}

func dashedHline(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x < x1; x++ {
		if (x-x0)%(dashLength+dashGap) < dashLength {
			img.Set(x, y, c)
		}
	}
}

func frame(img *image.RGBA, rect image.Rectangle, c color.Color) {
	hline(img, rect.Min.X, rect.Max.X, rect.Min.Y, c)
	hline(img, rect.Min.X, rect.Max.X, rect.Max.Y-1, c)
	vline(img, rect.Min.X, rect.Min.Y, rect.Max.Y, c)
	vline(img, rect.Max.X-1, rect.Min.Y, rect.Max.Y, c)
}
