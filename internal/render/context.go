package render

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// Layout is the pixel geometry of the grid.
type Layout struct {
	CellSize int
	Spacing  int
	Padding  int
}

// DefaultLayout returns 12px cells with 3px gaps and a 40px border.
func DefaultLayout() Layout {
	return Layout{CellSize: 12, Spacing: 3, Padding: 40}
}

// Palette holds every colour used while drawing.
type Palette struct {
	Levels     [4]color.NRGBA // Enemy colour by health 1..4
	Ship       color.NRGBA
	Bullet     color.NRGBA
	Background color.NRGBA
}

// DefaultPalette returns the dark contribution-graph colours.
func DefaultPalette() Palette {
	return Palette{
		Levels: [4]color.NRGBA{
			mustHex("#0e4429"),
			mustHex("#006d32"),
			mustHex("#26a641"),
			mustHex("#39d353"),
		},
		Ship:       mustHex("#58a6ff"),
		Bullet:     mustHex("#ffdf00"),
		Background: mustHex("#0d1117"),
	}
}

// Context implements game.RenderContext for a layout and palette.
type Context struct {
	layout  Layout
	palette Palette
}

// NewContext creates a rendering context.
func NewContext(layout Layout, palette Palette) *Context {
	return &Context{layout: layout, palette: palette}
}

// CellPosition returns the top-left pixel of a grid position.
func (c *Context) CellPosition(col, row float64) (float64, float64) {
	pitch := float64(c.layout.CellSize + c.layout.Spacing)
	pad := float64(c.layout.Padding)
	return pad + col*pitch, pad + row*pitch
}

// CellSize returns the cell edge in pixels.
func (c *Context) CellSize() int {
	return c.layout.CellSize
}

// EnemyColor returns the colour for a health level.
func (c *Context) EnemyColor(health int) (color.NRGBA, bool) {
	if health < 1 || health > len(c.palette.Levels) {
		return color.NRGBA{}, false
	}
	return c.palette.Levels[health-1], true
}

// ShipColor returns the ship's base colour.
func (c *Context) ShipColor() color.NRGBA {
	return c.palette.Ship
}

// BulletColor returns the bullet colour.
func (c *Context) BulletColor() color.NRGBA {
	return c.palette.Bullet
}

// Background returns the frame background colour.
func (c *Context) Background() color.NRGBA {
	return c.palette.Background
}

// FrameSize returns the pixel size of a frame showing columns weeks and
// every row down to the ship.
func (c *Context) FrameSize(columns, shipRow int) image.Point {
	pitch := c.layout.CellSize + c.layout.Spacing
	w := 2*c.layout.Padding + max(columns, 1)*pitch - c.layout.Spacing
	h := 2*c.layout.Padding + (shipRow+1)*pitch
	return image.Pt(w, h)
}

// ParseHex parses "#rrggbb" or "rrggbb" into an opaque colour.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex formats an opaque colour as "#rrggbb".
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
