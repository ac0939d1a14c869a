package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"slip-print/pkg/layout"
)

// PNG rasterizes the form for an on-screen preview. Positions are the top of
// the text, as with GDI's default TextOut alignment.
type PNG struct {
	DPI float64

	img *image.NRGBA
}

// NewPNG returns a target rasterizing at dpi.
func NewPNG(dpi float64) *PNG {
	return &PNG{DPI: dpi}
}

// Begin allocates a white page the size of the form.
func (p *PNG) Begin(page layout.PageSize) error {
	if p.DPI <= 0 {
		return fmt.Errorf("png: invalid resolution %v", p.DPI)
	}
	w := layout.TwipsToPixels(layout.CmToTwips(page.Width), p.DPI)
	h := layout.TwipsToPixels(layout.CmToTwips(page.Height), p.DPI)
	p.img = imaging.New(w, h, color.White)
	return nil
}

// TextOut draws text in the 7x13 bitmap font.
func (p *PNG) TextOut(x, y int, text string) error {
	if p.img == nil {
		return fmt.Errorf("png: TextOut before Begin")
	}
	face := basicfont.Face7x13
	top := layout.TwipsToPixels(-y, p.DPI)
	d := font.Drawer{
		Dst:  p.img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(layout.TwipsToPixels(x, p.DPI), top+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

// Image returns the raster drawn so far.
func (p *PNG) Image() image.Image {
	return p.img
}

// End encodes the page as PNG.
func (p *PNG) End() ([]byte, error) {
	if p.img == nil {
		return nil, fmt.Errorf("png: End before Begin")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, p.img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
