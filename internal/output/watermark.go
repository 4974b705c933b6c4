package output

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const watermarkMargin = 4

var watermarkColor = color.RGBA{R: 0x8b, G: 0x94, B: 0x9e, A: 0xff}

// drawWatermark writes text in the bottom-right corner of dst.
func drawWatermark(dst *image.Paletted, text string) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(watermarkColor),
		Face: face,
	}
	width := d.MeasureString(text).Ceil()
	b := dst.Bounds()
	x := b.Max.X - width - watermarkMargin
	y := b.Max.Y - watermarkMargin - face.Descent
	if x < b.Min.X {
		x = b.Min.X
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
