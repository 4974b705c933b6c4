package output

import (
	"image"
	"image/color"
	"image/color/palette"
)

// newPalette builds a 256 colour palette: the colours frames are drawn
// with, a gray ramp for stars, and the web-safe cube for blends.
func newPalette(exact []color.Color) color.Palette {
	p := make(color.Palette, 0, 256)
	seen := make(map[color.RGBA]bool)
	add := func(c color.Color) {
		r, g, b, _ := c.RGBA()
		k := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
		if seen[k] || len(p) == cap(p) {
			return
		}
		seen[k] = true
		p = append(p, k)
	}
	for _, c := range exact {
		add(c)
	}
	for i := 0; i < 32; i++ {
		v := uint8(i * 255 / 31)
		add(color.RGBA{R: v, G: v, B: v, A: 0xff})
	}
	for _, c := range palette.WebSafe {
		add(c)
	}
	return p
}

// quantizer maps RGBA pixels to palette indices. Frames reuse a handful of
// colours, so lookups are memoised.
type quantizer struct {
	palette color.Palette
	cache   map[uint32]uint8
}

func newQuantizer(p color.Palette) *quantizer {
	return &quantizer{palette: p, cache: make(map[uint32]uint8)}
}

func (q *quantizer) index(r, g, b uint8) uint8 {
	key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if i, ok := q.cache[key]; ok {
		return i
	}
	i := uint8(q.palette.Index(color.RGBA{R: r, G: g, B: b, A: 0xff}))
	q.cache[key] = i
	return i
}

// Paletted converts an opaque RGBA frame.
func (q *quantizer) Paletted(src *image.RGBA) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), q.palette)
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+b.Dx()*4]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()]
		for x := range out {
			out[x] = q.index(row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return dst
}
