package app

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roman-kulish/bandplan-vswr/internal/bandplan"
	"github.com/roman-kulish/bandplan-vswr/internal/scan"
)

func containsColor(img *image.RGBA, c color.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				return true
			}
		}
	}
	return false
}

func TestChartRenderer_NoScans(t *testing.T) {
	chart := NewChart(bandplan.Canada(), nil, ChartConfig{})

	renderer, err := NewChartRenderer(RenderConfig{Width: 800})
	require.NoError(t, err)

	img, err := renderer.Render(chart)
	require.NoError(t, err)

	wantHeight := defaultTopBorder + titleHeight + len(chart.Panels)*(panelHeight+panelSpacing) + defaultBottomBorder
	assert.Equal(t, image.Rect(0, 0, 800, wantHeight), img.Bounds())

	// sub-band colours are drawn as solid fills
	palette := NewPalette(ClassicTheme)
	for _, mode := range []bandplan.Mode{bandplan.ModeCW, bandplan.ModeDigital, bandplan.ModePhone} {
		assert.True(t, containsColor(img, palette.ModeColor(mode)), mode)
	}
}

func TestChartRenderer_LegendSwatches(t *testing.T) {
	scans := []*scan.Scan{
		scanOf("dipole.asd", [2]float64{13.9, 4}, [2]float64{14.1, 1.2}, [2]float64{14.3, 12}),
		scanOf("vertical.asd", [2]float64{14.0, 2}, [2]float64{14.2, 1.5}, [2]float64{14.35, 2.5}),
	}
	chart := NewChart(bandplan.Canada(), scans, ChartConfig{})

	renderer, err := NewChartRenderer(RenderConfig{Width: 800})
	require.NoError(t, err)

	img, err := renderer.Render(chart)
	require.NoError(t, err)

	wantHeight := defaultTopBorder + titleHeight + len(chart.Panels)*(panelHeight+panelSpacing) + legendRowHeight + defaultBottomBorder
	assert.Equal(t, wantHeight, img.Bounds().Dy())

	for _, entry := range chart.Legend {
		assert.True(t, containsColor(img, entry.Color), entry.Label)
	}
}

func TestChartRenderer_Grayscale(t *testing.T) {
	palette := NewPalette(GrayscaleTheme)
	chart := NewChart(bandplan.Canada(), nil, ChartConfig{Palette: palette})

	renderer, err := NewChartRenderer(RenderConfig{Width: 800, Palette: palette})
	require.NoError(t, err)

	img, err := renderer.Render(chart)
	require.NoError(t, err)

	assert.True(t, containsColor(img, palette.ModeColor(bandplan.ModePhone)))
	assert.False(t, containsColor(img, classicModeColors[bandplan.ModePhone]))
}

func TestNewChartRenderer_Width(t *testing.T) {
	_, err := NewChartRenderer(RenderConfig{Width: 100})
	assert.Error(t, err)

	r, err := NewChartRenderer(RenderConfig{})
	require.NoError(t, err)
	assert.Equal(t, defaultWidth, r.config.Width)
}

func TestChartRenderer_NilChart(t *testing.T) {
	r, err := NewChartRenderer(RenderConfig{})
	require.NoError(t, err)

	_, err = r.Render(nil)
	assert.Error(t, err)
}

func TestClipSegment(t *testing.T) {
	a, b, ok := clipSegment([2]float64{10, 10}, [2]float64{20, 20}, 100, 50)
	require.True(t, ok)
	assert.Equal(t, [2]float64{10, 10}, a)
	assert.Equal(t, [2]float64{20, 20}, b)

	a, b, ok = clipSegment([2]float64{-50, 25}, [2]float64{150, 25}, 100, 50)
	require.True(t, ok)
	assert.InDelta(t, 0, a[0], 1e-9)
	assert.InDelta(t, 100, b[0], 1e-9)
	assert.InDelta(t, 25, b[1], 1e-9)

	_, _, ok = clipSegment([2]float64{-50, 10}, [2]float64{-10, 40}, 100, 50)
	assert.False(t, ok)
}

func TestFrequencyLabel(t *testing.T) {
	tests := []struct {
		hz        float64
		precision int
		want      string
	}{
		{14.1 * bandplan.MHz, 3, "14.100"},
		{0.1357 * bandplan.MHz, 4, "0.1357"},
		{50 * bandplan.MHz, 1, "50.0"},
		{0, humanizedTicks, "0"},
		{5 * bandplan.MHz, humanizedTicks, "5 MHz"},
		{150 * bandplan.MHz, humanizedTicks, "150 MHz"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, frequencyLabel(tt.hz, tt.precision))
	}
}

func TestPalette(t *testing.T) {
	classic := NewPalette(ClassicTheme)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xa0, B: 0x7a, A: 0xff}, classic.ModeColor(bandplan.ModeCW))
	assert.Equal(t, classic.ModeColor(bandplan.ModeUnallocated), classic.ModeColor("unknown"))

	assert.Nil(t, classic.Series(0))

	colors := classic.Series(5)
	require.Len(t, colors, 5)
	seen := map[color.RGBA]struct{}{}
	for _, c := range colors {
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 5)

	gray := NewPalette(GrayscaleTheme)
	for _, mode := range []bandplan.Mode{bandplan.ModeCW, bandplan.ModeDigital, bandplan.ModePhone, bandplan.ModeTV} {
		c := gray.ModeColor(mode)
		assert.InDelta(t, c.R, c.G, 1, mode)
		assert.InDelta(t, c.G, c.B, 1, mode)
	}
}
