package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"iter"

	"github.com/vovakirdan/gh-space-shooter/internal/render"
)

// PNG keeps the final frame as a still poster.
type PNG struct {
	opts    Options
	palette render.Palette
}

// NewPNG creates a poster encoder.
func NewPNG(opts Options) *PNG {
	return &PNG{opts: opts, palette: render.DefaultPalette()}
}

// WithPalette sets the colours the watermarked poster is quantised to.
func (p *PNG) WithPalette(palette render.Palette) *PNG {
	p.palette = palette
	return p
}

// Encode implements Encoder. Every frame is consumed so the run completes.
func (p *PNG) Encode(frames iter.Seq[*image.RGBA]) ([]byte, error) {
	var last *image.RGBA
	for frame := range frames {
		if last == nil {
			last = image.NewRGBA(frame.Bounds())
		}
		copy(last.Pix, frame.Pix)
	}
	if last == nil {
		return nil, ErrNoFrames
	}

	out := image.Image(last)
	if p.opts.Watermark {
		q := newQuantizer(NewGIFWithPalette(p.opts, p.palette).palette)
		paletted := q.Paletted(last)
		drawWatermark(paletted, p.opts.WatermarkText)
		out = paletted
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("%w: png: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// MediaType implements Encoder.
func (p *PNG) MediaType() string { return "image/png" }

// Extension implements Encoder.
func (p *PNG) Extension() string { return "png" }
