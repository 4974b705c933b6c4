package game

import (
	"math/rand"

	"github.com/vovakirdan/gh-space-shooter/internal/core"
)

// Star is one background particle.
type Star struct {
	X, Y       float64
	Brightness float64 // 0.2..1.0
	Size       int     // 1 or 2 pixels
	Speed      float64 // Rows per step
}

// Starfield is the slowly falling background. It never interacts with the
// rest of the scene.
type Starfield struct {
	stars   []Star
	columns int
	bottom  float64
	rng     *rand.Rand
}

// Size choices are biased toward single-pixel stars.
var starSizes = [...]int{1, 1, 1, 2}

// NewStarfield scatters count stars over the play area. The area spans the
// grid columns plus a margin of two on each side and reaches four rows
// below the ship.
func NewStarfield(columns, shipRow, count int, rng *rand.Rand) *Starfield {
	f := &Starfield{
		stars:   make([]Star, 0, count),
		columns: max(columns, 1),
		bottom:  float64(shipRow + 4),
		rng:     rng,
	}
	for range count {
		x := f.randomX()
		y := -2 + rng.Float64()*(f.bottom+2)
		brightness := 0.2 + rng.Float64()*0.8
		size := starSizes[rng.Intn(len(starSizes))]
		f.stars = append(f.stars, Star{
			X:          x,
			Y:          y,
			Brightness: brightness,
			Size:       size,
			Speed:      0.02 + brightness*0.03,
		})
	}
	return f
}

func (f *Starfield) randomX() float64 {
	return -2 + f.rng.Float64()*float64(f.columns+4)
}

// Stars returns the current particles. The slice must not be modified.
func (f *Starfield) Stars() []Star {
	return f.stars
}

// Advance drops every star by its speed and recycles the ones that fell
// past the bottom at the top with a new column.
func (f *Starfield) Advance(*Step) Outcome {
	for i := range f.stars {
		s := &f.stars[i]
		s.Y += s.Speed
		if s.Y > f.bottom {
			s.Y = -2
			s.X = f.randomX()
		}
	}
	return keep()
}

// Render paints each star as a point, or a small square for size 2.
func (f *Starfield) Render(canvas Canvas, ctx RenderContext) {
	for _, s := range f.stars {
		x, y := ctx.CellPosition(s.X, s.Y)
		c := core.Gray(s.Brightness)
		if s.Size == 1 {
			canvas.Point(x, y, c)
			continue
		}
		size := float64(s.Size)
		canvas.FillRect(x, y, x+size-1, y+size-1, c)
	}
}
