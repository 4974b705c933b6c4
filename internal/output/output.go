// Package output encodes frame sequences into distributable images.
package output

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for formats without an encoder.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrEncode wraps every failure while encoding.
	ErrEncode = errors.New("encode failed")
	// ErrNoFrames is returned when the sequence yields nothing.
	ErrNoFrames = errors.New("no frames to encode")
)

// Encoder turns frames into an encoded payload.
// Frames may share one buffer, so encoders copy what they keep.
type Encoder interface {
	Encode(frames iter.Seq[*image.RGBA]) ([]byte, error)
	MediaType() string
	Extension() string
}

// Format names an output format.
type Format string

const (
	FormatGIF  Format = "gif"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// Options configures the encoders.
type Options struct {
	FPS           int
	Watermark     bool
	WatermarkText string
}

// Resolve returns the encoder for a format name. An empty name means GIF.
// WebP is recognised but has no encoder.
func Resolve(format string, opts Options) (Encoder, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case "", FormatGIF:
		return NewGIF(opts), nil
	case FormatPNG:
		return NewPNG(opts), nil
	case FormatWebP:
		return nil, fmt.Errorf("%w: webp encoding is not available, use gif or png", ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Formats lists the formats with an encoder.
func Formats() []Format {
	return []Format{FormatGIF, FormatPNG}
}
