package game

import (
	"github.com/vovakirdan/gh-space-shooter/internal/core"
)

// Ship is the player's avatar. It glides between columns at a fixed speed
// and fires straight up.
type Ship struct {
	X        float64
	TargetX  float64
	Cooldown int
	row      int
	speed    float64
	reload   int
}

func newShip(column int, p Params) *Ship {
	x := float64(column)
	return &Ship{
		X:       x,
		TargetX: x,
		row:     p.ShipRow,
		speed:   p.ShipSpeed,
		reload:  p.ShootCooldown,
	}
}

// MoveTo sets the column the ship flies toward.
func (s *Ship) MoveTo(column int) {
	s.TargetX = float64(column)
}

// IsMoving reports whether the ship has not reached its target column.
func (s *Ship) IsMoving() bool {
	return s.X != s.TargetX
}

// CanShoot reports whether the weapon has cooled down.
func (s *Ship) CanShoot() bool {
	return s.Cooldown == 0
}

// Column returns the column the ship is currently over.
func (s *Ship) Column() int {
	return core.RoundToInt(s.X)
}

// Advance moves toward the target without passing it and ticks the cooldown.
func (s *Ship) Advance(*Step) Outcome {
	s.X = core.Approach(s.X, s.TargetX, s.speed)
	if s.Cooldown > 0 {
		s.Cooldown--
	}
	return keep()
}

func (s *Ship) shoot(id int, p Params) *Bullet {
	s.Cooldown = s.reload
	return newBullet(id, s.Column(), p)
}

// Render paints the ship centred on its column in the ship row.
func (s *Ship) Render(canvas Canvas, ctx RenderContext) {
	x, y := ctx.CellPosition(s.X, float64(s.row))
	size := float64(ctx.CellSize())
	cx := x + float64(ctx.CellSize()/2)
	w, h := size, size
	base := ctx.ShipColor()

	// Engine glow
	canvas.FillEllipse(cx-3, y+h-4, cx+3, y+h+2, core.Shade(base, 40, 40, 60))

	// Wings
	wing := core.Shade(base, -30, -30, -30)
	canvas.FillPolygon([]Vec{
		{cx - 2, y + h*0.4},
		{x - 2, y + h*0.7},
		{x + 2, y + h*0.8},
	}, wing)
	canvas.FillPolygon([]Vec{
		{cx + 2, y + h*0.4},
		{x + w + 2, y + h*0.7},
		{x + w - 2, y + h*0.8},
	}, wing)

	// Body, light to dark from the nose back
	canvas.FillPolygon([]Vec{
		{cx, y},
		{cx - 4, y + h*0.35},
		{cx + 4, y + h*0.35},
	}, core.Shade(base, 30, 30, 40))
	// Corners go around the quad; row order (-4, +4, -5, +5) would cross.
	canvas.FillPolygon([]Vec{
		{cx - 4, y + h*0.35},
		{cx + 4, y + h*0.35},
		{cx + 5, y + h*0.7},
		{cx - 5, y + h*0.7},
	}, base)
	canvas.FillPolygon([]Vec{
		{cx - 5, y + h*0.7},
		{cx + 5, y + h*0.7},
		{cx + 4, y + h},
		{cx - 4, y + h},
	}, core.Shade(base, -20, -20, -20))

	// Cockpit
	canvas.FillEllipse(cx-2, y+h*0.25, cx+2, y+h*0.45, core.Shade(base, 80, 100, 120))
}
