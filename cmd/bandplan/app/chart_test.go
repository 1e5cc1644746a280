package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roman-kulish/bandplan-vswr/internal/bandplan"
	"github.com/roman-kulish/bandplan-vswr/internal/scan"
)

// scanOf builds a scan from (MHz, VSWR) pairs.
func scanOf(name string, points ...[2]float64) *scan.Scan {
	s := &scan.Scan{Name: name, ReferenceImpedance: scan.DefaultReferenceImpedance}
	for _, p := range points {
		s.Samples = append(s.Samples, scan.Sample{Frequency: p[0] * bandplan.MHz, VSWR: p[1]})
	}
	return s
}

func panelByTitle(t *testing.T, chart *Chart, title string) Panel {
	t.Helper()

	for _, p := range chart.Panels {
		if p.Title == title {
			return p
		}
	}
	require.Failf(t, "panel not found", "no panel titled %q", title)
	return Panel{}
}

func TestNewChart_NoScans(t *testing.T) {
	plan := bandplan.Canada()
	chart := NewChart(plan, nil, ChartConfig{})

	require.Len(t, chart.Panels, len(plan)+2)
	assert.Equal(t, defaultTitle, chart.Title)
	assert.Empty(t, chart.Legend)
	assert.NotEmpty(t, chart.Footer)

	assert.Equal(t, "HF", chart.Panels[0].Title)
	assert.Equal(t, "VHF and UHF", chart.Panels[1].Title)
	for i, b := range plan {
		p := chart.Panels[i+2]
		assert.Equal(t, string(b.Name), p.Title)
		assert.Equal(t, b.View, p.View)
		assert.Equal(t, defaultVSWRMax, p.YMax)
		assert.Equal(t, []float64{1, 3, 5}, p.YTicks)
		assert.Equal(t, []float64{1, 3}, p.References)
		assert.Len(t, p.Segments, len(b.Segments))
	}

	for _, p := range chart.Panels {
		assert.Empty(t, p.Series, p.Title)
	}
}

func TestNewChart_OverviewMarkers(t *testing.T) {
	chart := NewChart(bandplan.Canada(), nil, ChartConfig{})

	var hf, vhf []string
	for _, m := range chart.Panels[0].Markers {
		hf = append(hf, m.Label)
	}
	for _, m := range chart.Panels[1].Markers {
		vhf = append(vhf, m.Label)
	}

	assert.Equal(t, []string{"2200m", "630m", "160m", "80m", "60m", "40m", "30m", "20m", "17m", "15m", "12m", "10m", "6m"}, hf)
	assert.Equal(t, []string{"2m", "1.25m", "70cm"}, vhf)

	assert.Equal(t, defaultOverviewVSWRMax, chart.Panels[0].YMax)
	assert.Equal(t, []float64{1, 3, 5, 10}, chart.Panels[0].YTicks)
	assert.Equal(t, humanizedTicks, chart.Panels[0].TickPrecision)
	assert.Len(t, chart.Panels[0].XTicks, 12) // 0 to 55 MHz every 5 MHz
}

func TestNewChart_OverlappingScans(t *testing.T) {
	dipole := scanOf("dipole.asd", [2]float64{13.9, 4}, [2]float64{14.1, 1.2}, [2]float64{14.3, 12})
	vertical := scanOf("vertical.asd", [2]float64{14.0, 2}, [2]float64{14.2, 1.5}, [2]float64{14.35, 2.5})

	chart := NewChart(bandplan.Canada(), []*scan.Scan{dipole, vertical}, ChartConfig{})

	require.Len(t, chart.Legend, 2)
	assert.Equal(t, "dipole.asd", chart.Legend[0].Label)
	assert.Equal(t, "vertical.asd", chart.Legend[1].Label)
	assert.NotEqual(t, chart.Legend[0].Color, chart.Legend[1].Color)

	p := panelByTitle(t, chart, "20m")
	require.Len(t, p.Series, 2)
	assert.Equal(t, "dipole.asd", p.Series[0].Label)
	assert.Equal(t, chart.Legend[0].Color, p.Series[0].Color)
	assert.Equal(t, "vertical.asd", p.Series[1].Label)
	assert.Equal(t, chart.Legend[1].Color, p.Series[1].Color)

	// values above the axis are clipped to its top
	assert.Equal(t, defaultVSWRMax, p.Series[0].Points[2].VSWR)
	assert.Equal(t, defaultOverviewVSWRMax, chart.Panels[0].Series[0].Points[2].VSWR)

	assert.Len(t, chart.Panels[0].Series, 2, "HF overview")
	assert.Empty(t, chart.Panels[1].Series, "VHF overview")
	assert.Empty(t, panelByTitle(t, chart, "40m").Series)
	assert.Equal(t, "2 scans; Freq: 13.90 MHz - 14.35 MHz", chart.Footer)
}

func TestNewChart_Config(t *testing.T) {
	chart := NewChart(bandplan.Canada(), nil, ChartConfig{
		Title:           "Shack",
		VSWRMax:         3,
		OverviewVSWRMax: 25,
	})

	assert.Equal(t, "Shack", chart.Title)
	assert.Equal(t, []float64{1, 3, 5, 10, 15, 20, 25}, chart.Panels[0].YTicks)
	assert.Equal(t, []float64{1, 3}, panelByTitle(t, chart, "2m").YTicks)
}

func TestVisibleSeries(t *testing.T) {
	view := bandplan.FrequencyRange{From: 13.98 * bandplan.MHz, To: 14.37 * bandplan.MHz}
	s := scanOf("wide.asd",
		[2]float64{13.90, 3}, [2]float64{13.95, 2.5}, [2]float64{14.00, 2},
		[2]float64{14.10, 1.5}, [2]float64{14.20, 1.2}, [2]float64{14.30, 1.8},
		[2]float64{14.40, 2.4}, [2]float64{14.50, 3.5},
	)

	series, ok := visibleSeries(s, view, 5)
	require.True(t, ok)
	require.Len(t, series.Points, 6)
	assert.InDelta(t, 13.95*bandplan.MHz, series.Points[0].Frequency, 1)
	assert.InDelta(t, 14.40*bandplan.MHz, series.Points[5].Frequency, 1)
}

func TestVisibleSeries_SpanningView(t *testing.T) {
	view := bandplan.FrequencyRange{From: 10.100 * bandplan.MHz, To: 10.150 * bandplan.MHz}
	s := scanOf("coarse.asd", [2]float64{9, 3}, [2]float64{11, 2})

	series, ok := visibleSeries(s, view, 5)
	require.True(t, ok)
	assert.Len(t, series.Points, 2)
}

func TestVisibleSeries_OutsideView(t *testing.T) {
	view := bandplan.FrequencyRange{From: 13.98 * bandplan.MHz, To: 14.37 * bandplan.MHz}

	_, ok := visibleSeries(scanOf("40m.asd", [2]float64{7.0, 1.5}, [2]float64{7.3, 2}), view, 5)
	assert.False(t, ok)

	_, ok = visibleSeries(scanOf("empty.asd"), view, 5)
	assert.False(t, ok)
}

func TestNewChart_OverviewReferences(t *testing.T) {
	chart := NewChart(bandplan.Canada(), nil, ChartConfig{})
	for _, p := range chart.Panels[:2] {
		assert.Equal(t, []float64{1, 3, 10}, p.References, p.Title)
	}
	assert.Equal(t, []float64{1, 3}, panelByTitle(t, chart, "20m").References)

	chart = NewChart(bandplan.Canada(), nil, ChartConfig{OverviewVSWRMax: 5})
	assert.Equal(t, []float64{1, 3}, chart.Panels[0].References)
	assert.Equal(t, []float64{1, 3}, referenceVSWR)
}
