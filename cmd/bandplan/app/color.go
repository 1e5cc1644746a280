package app

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/roman-kulish/bandplan-vswr/internal/bandplan"
)

// ColorTheme represents a predefined color scheme for the chart:
// - ClassicTheme: the RAC band plan colours with a rainbow of scan curves
// - GrayscaleTheme: print friendly, sub-bands and curves in shades of grey
type ColorTheme string

const (
	ClassicTheme   ColorTheme = "classic"
	GrayscaleTheme ColorTheme = "grayscale"
)

var validColorThemes = map[ColorTheme]struct{}{
	ClassicTheme:   {},
	GrayscaleTheme: {},
}

var (
	foregroundColor = color.RGBA{A: 0xff}
	gridColor       = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	backgroundColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// classic colours, named after the matplotlib colours of the printed plan
var classicModeColors = map[bandplan.Mode]color.RGBA{
	bandplan.ModeCW:          {R: 0xff, G: 0xa0, B: 0x7a, A: 0xff}, // lightsalmon
	bandplan.ModeDigital:     {R: 0x87, G: 0xce, B: 0xfa, A: 0xff}, // lightskyblue
	bandplan.ModePhone:       {R: 0x32, G: 0xcd, B: 0x32, A: 0xff}, // limegreen
	bandplan.ModeTV:          {R: 0xdd, G: 0xa0, B: 0xdd, A: 0xff}, // plum
	bandplan.ModeBeacon:      {R: 0xff, G: 0xe4, B: 0xe1, A: 0xff}, // mistyrose
	bandplan.ModeMisc:        {R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, // gold
	bandplan.ModeUnallocated: {R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}, // whitesmoke
}

var overviewColor = color.RGBA{A: 0xff}

// Palette resolves the colours of one theme.
type Palette struct {
	theme ColorTheme
	modes map[bandplan.Mode]color.RGBA
}

// NewPalette creates the palette of a theme; unknown themes fall back to
// the classic one.
func NewPalette(theme ColorTheme) *Palette {
	p := Palette{
		theme: theme,
		modes: make(map[bandplan.Mode]color.RGBA, len(classicModeColors)),
	}

	for mode, c := range classicModeColors {
		if theme == GrayscaleTheme {
			c = grayscale(c)
		}
		p.modes[mode] = c
	}
	return &p
}

// ModeColor returns the fill colour of a sub-band.
func (p *Palette) ModeColor(mode bandplan.Mode) color.RGBA {
	if c, ok := p.modes[mode]; ok {
		return c
	}
	return p.modes[bandplan.ModeUnallocated]
}

// OverviewColor returns the colour of band markers on the overview panels.
func (p *Palette) OverviewColor() color.RGBA {
	return overviewColor
}

// Series returns n distinct curve colours. The classic theme spreads hues
// evenly around the wheel starting from red; grayscale spreads the value
// between black and mid grey.
func (p *Palette) Series(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}

	colors := make([]color.RGBA, n)
	for i := range colors {
		var c colorful.Color
		switch p.theme {
		case GrayscaleTheme:
			c = colorful.Hsv(0, 0, 0.6*float64(i)/float64(n))
		default:
			c = colorful.Hsv(360*float64(i)/float64(n), 0.9, 0.85)
		}
		colors[i] = toRGBA(c)
	}
	return colors
}

// grayscale keeps the perceived lightness of a colour and drops its hue.
func grayscale(c color.RGBA) color.RGBA {
	cf, _ := colorful.MakeColor(c)
	l, _, _ := cf.Lab()
	return toRGBA(colorful.Lab(l, 0, 0))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
