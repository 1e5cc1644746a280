package app

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	dpi           float64 = 72
	fontSize      float64 = 13
	smallFontSize float64 = 10
	titleFontSize float64 = 18
)

type annotator struct {
	context *freetype.Context
	font    *truetype.Font
	faces   map[float64]font.Face
}

func newAnnotator() (*annotator, error) {
	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(fontSize)
	ctx.SetHinting(font.HintingFull)
	ctx.SetSrc(image.NewUniform(foregroundColor))

	return &annotator{
		context: ctx,
		font:    parsedFont,
		faces:   make(map[float64]font.Face),
	}, nil
}

// attach sets the image text is drawn on.
func (a *annotator) attach(dst *image.RGBA) {
	a.context.SetClip(dst.Bounds())
	a.context.SetDst(dst)
}

func (a *annotator) Close() error {
	for size, face := range a.faces {
		if err := face.Close(); err != nil {
			return err
		}
		delete(a.faces, size)
	}
	return nil
}

func (a *annotator) face(size float64) font.Face {
	face, ok := a.faces[size]
	if !ok {
		face = truetype.NewFace(a.font, &truetype.Options{
			Size:    size,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		a.faces[size] = face
	}
	return face
}

// measure returns the advance width of the text and the ascent of the face
// in pixels.
func (a *annotator) measure(text string, size float64) (width, ascent int) {
	face := a.face(size)
	return font.MeasureString(face, text).Ceil(), face.Metrics().Ascent.Ceil()
}

// drawText draws text with its baseline starting at (x, y).
func (a *annotator) drawText(text string, x, y int, size float64, c color.Color) error {
	a.context.SetFontSize(size)
	a.context.SetSrc(image.NewUniform(c))

	if _, err := a.context.DrawString(text, freetype.Pt(x, y)); err != nil {
		return fmt.Errorf("drawing %q: %w", text, err)
	}
	return nil
}

// drawCentered draws text horizontally centred on x and vertically centred
// on y.
func (a *annotator) drawCentered(text string, x, y int, size float64, c color.Color) error {
	width, ascent := a.measure(text, size)
	return a.drawText(text, x-width/2, y+ascent/2, size, c)
}

// drawLeftAligned draws text starting at x, vertically centred on y.
func (a *annotator) drawLeftAligned(text string, x, y int, size float64, c color.Color) error {
	_, ascent := a.measure(text, size)
	return a.drawText(text, x, y+ascent/2, size, c)
}

// drawRightAligned draws text ending at x, vertically centred on y.
func (a *annotator) drawRightAligned(text string, x, y int, size float64, c color.Color) error {
	width, ascent := a.measure(text, size)
	return a.drawText(text, x-width, y+ascent/2, size, c)
}

// frequencyLabel formats a tick. A non-negative precision prints MHz with a
// fixed number of decimals; humanizedTicks picks an SI prefix.
func frequencyLabel(hz float64, precision int) string {
	if precision < 0 {
		if hz == 0 {
			return "0"
		}
		f, suffix := humanize.ComputeSI(hz)
		return humanize.FtoaWithDigits(f, 3) + " " + suffix + "Hz"
	}
	return strconv.FormatFloat(hz/1e6, 'f', precision, 64)
}

func humanHz(hz float64) string {
	f, suffix := humanize.ComputeSI(hz)
	return fmt.Sprintf("%0.2f %sHz", f, suffix)
}

func vswrLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
