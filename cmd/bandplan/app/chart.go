package app

import (
	"fmt"
	"image/color"
	"slices"
	"sort"

	"github.com/roman-kulish/bandplan-vswr/internal/bandplan"
	"github.com/roman-kulish/bandplan-vswr/internal/scan"
)

const (
	defaultTitle           = "Canadian Band Plan with VSWR"
	defaultVSWRMax         = 5.0
	defaultOverviewVSWRMax = 10.0

	// humanizedTicks formats tick labels with an SI prefix instead of a
	// fixed number of MHz decimals.
	humanizedTicks = -1
)

var (
	bandVSWRTicks     = []float64{1, 3, 5, 10}
	overviewVSWRTicks = []float64{1, 3, 5, 10, 15, 20, 25}
	referenceVSWR     = []float64{1, 3}
)

// overviewReferences adds the VSWR 10 line when the overview axis reaches it.
func overviewReferences(yMax float64) []float64 {
	if yMax >= 10 {
		return append(slices.Clone(referenceVSWR), 10)
	}
	return referenceVSWR
}

// overview windows drawn ahead of the band panels
var overviews = []struct {
	title    string
	view     bandplan.FrequencyRange
	tickStep float64
}{
	{"HF", bandplan.FrequencyRange{From: 0, To: 55 * bandplan.MHz}, 5 * bandplan.MHz},
	{"VHF and UHF", bandplan.FrequencyRange{From: 100 * bandplan.MHz, To: 500 * bandplan.MHz}, 50 * bandplan.MHz},
}

// Point is a single vertex of a VSWR curve.
type Point struct {
	Frequency float64 // Hz
	VSWR      float64 // Clipped to the panel's YMax
}

// Series is the part of one scan visible on a panel.
type Series struct {
	Label  string
	Color  color.RGBA
	Points []Point
}

// Marker is a labelled frequency range drawn as a solid bar, used for the
// bands of an overview panel.
type Marker struct {
	bandplan.FrequencyRange
	Label string
}

// Panel is one linear frequency axis of the chart.
type Panel struct {
	Title         string
	View          bandplan.FrequencyRange
	YMax          float64
	YTicks        []float64
	References    []float64 // VSWR values drawn as dashed lines
	XTicks        []float64
	TickPrecision int
	Segments      []bandplan.Segment
	Markers       []Marker
	Series        []Series
}

// LegendEntry maps a curve colour to its source.
type LegendEntry struct {
	Label string
	Color color.RGBA
}

// Chart is the layout model of the report, independent of the raster it is
// drawn on.
type Chart struct {
	Title  string
	Footer string
	Panels []Panel
	Legend []LegendEntry
}

// ChartConfig holds the layout options of a chart.
type ChartConfig struct {
	Title           string
	VSWRMax         float64
	OverviewVSWRMax float64
	Palette         *Palette
}

// NewChart lays the plan out as two overview panels followed by one panel per
// band and overlays every scan on the panels it overlaps. Without scans the
// chart still holds every panel and an empty legend.
func NewChart(plan bandplan.Plan, scans []*scan.Scan, config ChartConfig) *Chart {
	if config.Title == "" {
		config.Title = defaultTitle
	}
	if config.VSWRMax <= 1 {
		config.VSWRMax = defaultVSWRMax
	}
	if config.OverviewVSWRMax <= 1 {
		config.OverviewVSWRMax = defaultOverviewVSWRMax
	}
	if config.Palette == nil {
		config.Palette = NewPalette(ClassicTheme)
	}

	chart := Chart{
		Title:  config.Title,
		Footer: footer(scans),
		Panels: make([]Panel, 0, len(overviews)+len(plan)),
	}

	colors := config.Palette.Series(len(scans))
	for i, s := range scans {
		chart.Legend = append(chart.Legend, LegendEntry{Label: s.Name, Color: colors[i]})
	}

	for _, o := range overviews {
		p := Panel{
			Title:         o.title,
			View:          o.view,
			YMax:          config.OverviewVSWRMax,
			YTicks:        ticksUpTo(overviewVSWRTicks, config.OverviewVSWRMax),
			References:    overviewReferences(config.OverviewVSWRMax),
			XTicks:        stepTicks(o.view, o.tickStep),
			TickPrecision: humanizedTicks,
		}
		for _, b := range plan.Within(o.view.From, o.view.To) {
			p.Markers = append(p.Markers, Marker{FrequencyRange: b.FrequencyRange, Label: string(b.Name)})
		}
		chart.Panels = append(chart.Panels, p)
	}

	for _, b := range plan {
		chart.Panels = append(chart.Panels, Panel{
			Title:         string(b.Name),
			View:          b.View,
			YMax:          config.VSWRMax,
			YTicks:        ticksUpTo(bandVSWRTicks, config.VSWRMax),
			References:    referenceVSWR,
			XTicks:        slices.Clone(b.Ticks),
			TickPrecision: b.TickPrecision,
			Segments:      slices.Clone(b.Segments),
		})
	}

	for i := range chart.Panels {
		p := &chart.Panels[i]
		for j, s := range scans {
			if series, ok := visibleSeries(s, p.View, p.YMax); ok {
				series.Color = colors[j]
				p.Series = append(p.Series, series)
			}
		}
	}

	return &chart
}

// visibleSeries cuts the part of a scan overlapping the view. The samples
// just outside the view are kept so the curve reaches the panel edges.
func visibleSeries(s *scan.Scan, view bandplan.FrequencyRange, yMax float64) (Series, bool) {
	n := len(s.Samples)
	if n == 0 {
		return Series{}, false
	}

	low, high := s.FrequencyRange()
	if low > view.To || high < view.From {
		return Series{}, false
	}

	first := sort.Search(n, func(i int) bool { return s.Samples[i].Frequency >= view.From })
	last := sort.Search(n, func(i int) bool { return s.Samples[i].Frequency > view.To }) - 1

	first = max(first-1, 0)
	last = min(last+1, n-1)

	series := Series{
		Label:  s.Name,
		Points: make([]Point, 0, last-first+1),
	}
	for _, sample := range s.Samples[first : last+1] {
		series.Points = append(series.Points, Point{
			Frequency: sample.Frequency,
			VSWR:      min(sample.VSWR, yMax),
		})
	}
	return series, true
}

func ticksUpTo(ticks []float64, limit float64) []float64 {
	var out []float64
	for _, t := range ticks {
		if t <= limit {
			out = append(out, t)
		}
	}
	return out
}

func stepTicks(view bandplan.FrequencyRange, step float64) []float64 {
	var ticks []float64
	for i := 0; ; i++ {
		t := view.From + float64(i)*step
		if t > view.To {
			break
		}
		ticks = append(ticks, t)
	}
	return ticks
}

func footer(scans []*scan.Scan) string {
	if len(scans) == 0 {
		return "No scans found, band plan only"
	}

	low, high := scans[0].FrequencyRange()
	for _, s := range scans[1:] {
		l, h := s.FrequencyRange()
		low, high = min(low, l), max(high, h)
	}

	noun := "scans"
	if len(scans) == 1 {
		noun = "scan"
	}
	return fmt.Sprintf("%d %s; Freq: %s - %s", len(scans), noun, humanHz(low), humanHz(high))
}
