package game

import "image/color"

// Vec is a point in pixel space.
type Vec struct {
	X, Y float64
}

// Canvas is the painting surface a frame is drawn on.
// Rectangle and ellipse bounds are inclusive, so FillRect(0, 0, 1, 1, c)
// covers a 2x2 pixel block.
type Canvas interface {
	Point(x, y float64, c color.NRGBA)
	FillRect(x0, y0, x1, y1 float64, c color.NRGBA)
	FillEllipse(x0, y0, x1, y1 float64, c color.NRGBA)
	FillPolygon(pts []Vec, c color.NRGBA)
}

// RenderContext maps grid space to pixels and supplies the palette.
type RenderContext interface {
	// CellPosition returns the top-left pixel of a (possibly fractional) cell.
	CellPosition(col, row float64) (x, y float64)
	CellSize() int
	// EnemyColor reports false for health levels without a palette entry.
	EnemyColor(health int) (color.NRGBA, bool)
	ShipColor() color.NRGBA
	BulletColor() color.NRGBA
}

// Step is what an entity may read while it advances.
type Step struct {
	// Targets is the enemy collection as it stood at the start of the pass.
	// Damage dealt earlier in the same pass is already reflected in health.
	Targets []*Enemy
}

// Outcome reports what an entity wants done after advancing.
// The owning State applies it; entities never touch sibling collections.
type Outcome struct {
	Remove bool
	Spawn  []*Explosion
	Hit    int // Enemy ID to damage, or NoHit
}

// NoHit marks an Outcome without a collision.
const NoHit = -1

func keep() Outcome {
	return Outcome{Hit: NoHit}
}

// Entity is implemented by every member of the scene:
// Starfield, Enemy, Bullet, Explosion and Ship.
type Entity interface {
	// Advance moves the entity one step. It must not draw.
	Advance(step *Step) Outcome
	// Render paints the current state. It must not mutate.
	Render(canvas Canvas, ctx RenderContext)
}
