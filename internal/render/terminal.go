package render

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/gh-space-shooter/internal/core"
)

// HalfBlock is the glyph used for two stacked pixels: the foreground paints
// the upper half, the background the lower.
const HalfBlock = '▀'

// asciiRamp orders glyphs from dark to bright.
const asciiRamp = " .:-=+*#%@"

// Downscaler shrinks frames to terminal size. It keeps its scratch buffer
// between calls, so one Downscaler must not be shared between goroutines.
type Downscaler struct {
	buf *image.RGBA
}

// fit returns the largest size with the aspect ratio of src inside w x h.
func fit(src image.Rectangle, w, h int) image.Point {
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 || w <= 0 || h <= 0 {
		return image.Point{}
	}
	if w*sh <= h*sw {
		return image.Pt(w, max(1, w*sh/sw))
	}
	return image.Pt(max(1, h*sw/sh), h)
}

func (d *Downscaler) scale(src image.Image, size image.Point) *image.RGBA {
	r := image.Rectangle{Max: size}
	if d.buf == nil || d.buf.Bounds() != r {
		d.buf = image.NewRGBA(r)
	}
	draw.NearestNeighbor.Scale(d.buf, r, src, src.Bounds(), draw.Src, nil)
	return d.buf
}

// ToScreen paints src centred on scr, two pixels per cell.
func (d *Downscaler) ToScreen(src image.Image, scr *core.Screen) {
	scr.Clear()
	size := fit(src.Bounds(), scr.Width(), scr.Height()*2)
	if size.X == 0 {
		return
	}
	img := d.scale(src, size)

	ox := (scr.Width() - size.X) / 2
	oy := (scr.Height() - (size.Y+1)/2) / 2
	for y := 0; y < size.Y; y += 2 {
		for x := 0; x < size.X; x++ {
			top := nrgba(img.RGBAAt(x, y))
			bottom := top
			if y+1 < size.Y {
				bottom = nrgba(img.RGBAAt(x, y+1))
			}
			scr.Set(ox+x, oy+y/2, core.Cell{Rune: HalfBlock, FG: top, BG: bottom})
		}
	}
}

// ASCII renders src as plain text width characters wide. Terminal glyphs
// are about twice as tall as wide, so rows are halved.
func (d *Downscaler) ASCII(src image.Image, width int) string {
	b := src.Bounds()
	if width <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}
	height := max(1, width*b.Dy()/b.Dx()/2)
	img := d.scale(src, image.Pt(width, height))

	var sb strings.Builder
	sb.Grow((width + 1) * height)
	for y := 0; y < height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			sb.WriteByte(asciiRamp[rampIndex(img.RGBAAt(x, y))])
		}
	}
	return sb.String()
}

// rampIndex maps perceived luminance to a glyph index.
func rampIndex(c color.RGBA) int {
	lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	return lum * (len(asciiRamp) - 1) / 255
}

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
