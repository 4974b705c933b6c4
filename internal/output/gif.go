package output

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"iter"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
	"github.com/vovakirdan/gh-space-shooter/internal/render"
)

// GIF encodes an infinitely looping animated GIF.
type GIF struct {
	opts    Options
	palette color.Palette
}

// NewGIF creates a GIF encoder for frames drawn with the default palette.
func NewGIF(opts Options) *GIF {
	return NewGIFWithPalette(opts, render.DefaultPalette())
}

// NewGIFWithPalette creates a GIF encoder whose palette reproduces the
// given render colours exactly.
func NewGIFWithPalette(opts Options, p render.Palette) *GIF {
	exact := []color.Color{p.Background, p.Ship, p.Bullet, game.ImpactColor, game.DestroyColor, watermarkColor}
	for _, c := range p.Levels {
		exact = append(exact, c)
	}
	return &GIF{opts: opts, palette: newPalette(exact)}
}

// Delay returns the per-frame delay in hundredths of a second.
func (g *GIF) Delay() int {
	fps := g.opts.FPS
	if fps <= 0 {
		fps = 25
	}
	return max(1, 100/fps)
}

// Encode implements Encoder.
func (g *GIF) Encode(frames iter.Seq[*image.RGBA]) ([]byte, error) {
	q := newQuantizer(g.palette)
	anim := &gif.GIF{LoopCount: 0}
	delay := g.Delay()

	for frame := range frames {
		p := q.Paletted(frame)
		if g.opts.Watermark {
			drawWatermark(p, g.opts.WatermarkText)
		}
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}
	if len(anim.Image) == 0 {
		return nil, ErrNoFrames
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, fmt.Errorf("%w: gif: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// MediaType implements Encoder.
func (g *GIF) MediaType() string { return "image/gif" }

// Extension implements Encoder.
func (g *GIF) Extension() string { return "gif" }
