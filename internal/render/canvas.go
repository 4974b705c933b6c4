// Package render turns simulation state into pixel frames and pixel frames
// into terminal cells.
package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
)

const ellipseSegments = 24

// Canvas paints onto an RGBA frame. Rectangles and points snap to whole
// pixels; polygons and ellipses are anti-aliased by the vector rasterizer.
type Canvas struct {
	img *image.RGBA
	z   vector.Rasterizer
}

var _ game.Canvas = (*Canvas)(nil)

// NewCanvas allocates a canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the backing frame. It is overwritten by the next Clear.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the whole frame with an opaque colour.
func (c *Canvas) Clear(bg color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// Point blends a single pixel.
func (c *Canvas) Point(x, y float64, col color.NRGBA) {
	px, py := int(math.Floor(x)), int(math.Floor(y))
	c.fill(image.Rect(px, py, px+1, py+1), col)
}

// FillRect blends the pixels from (x0, y0) to (x1, y1) inclusive.
func (c *Canvas) FillRect(x0, y0, x1, y1 float64, col color.NRGBA) {
	r := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Floor(x1))+1, int(math.Floor(y1))+1,
	)
	c.fill(r, col)
}

func (c *Canvas) fill(r image.Rectangle, col color.NRGBA) {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() || col.A == 0 {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// FillEllipse fills the ellipse inscribed in the inclusive box.
func (c *Canvas) FillEllipse(x0, y0, x1, y1 float64, col color.NRGBA) {
	cx, cy := (x0+x1+1)/2, (y0+y1+1)/2
	rx, ry := (x1-x0+1)/2, (y1-y0+1)/2
	if rx <= 0 || ry <= 0 {
		return
	}
	pts := make([]game.Vec, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = game.Vec{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	c.FillPolygon(pts, col)
}

// FillPolygon fills a closed polygon. The rasterizer only covers the
// visible part of the polygon's bounding box.
func (c *Canvas) FillPolygon(pts []game.Vec, col color.NRGBA) {
	if len(pts) < 3 || col.A == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
	clip := box.Intersect(c.img.Bounds())
	if clip.Empty() {
		return
	}

	// The rasterizer origin sits at clip.Min; path segments outside the
	// clip are clamped by the rasterizer.
	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	c.z.Reset(clip.Dx(), clip.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, clip, image.NewUniform(col), image.Point{})
}
