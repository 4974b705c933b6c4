package render

import (
	"image"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
)

// Scene is anything that paints itself through the game contracts.
type Scene interface {
	Render(canvas game.Canvas, ctx game.RenderContext)
}

// Renderer draws scenes into a single reused frame.
type Renderer struct {
	ctx    *Context
	canvas *Canvas
}

// NewRenderer sizes a frame for the given grid width and ship row.
func NewRenderer(ctx *Context, columns, shipRow int) *Renderer {
	size := ctx.FrameSize(columns, shipRow)
	return &Renderer{ctx: ctx, canvas: NewCanvas(size.X, size.Y)}
}

// Frame clears the buffer and paints the scene into it.
// The returned image is reused by the next call.
func (r *Renderer) Frame(s Scene) *image.RGBA {
	r.canvas.Clear(r.ctx.Background())
	s.Render(r.canvas, r.ctx)
	return r.canvas.Image()
}

// Size returns the frame size in pixels.
func (r *Renderer) Size() image.Point {
	return r.canvas.Image().Bounds().Size()
}
