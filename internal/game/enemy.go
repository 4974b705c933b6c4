package game

import (
	"image/color"
)

// DestroyColor is the base colour of the blast left by a destroyed enemy.
var DestroyColor = color.NRGBA{R: 0x39, G: 0xd3, B: 0x53, A: 0xff}

// Enemy is a stationary target on a grid cell.
type Enemy struct {
	ID     int
	Col    int
	Row    int
	Health int
}

// TakeDamage removes one point of health. At zero the enemy asks to be
// removed and leaves a destruction blast behind.
func (e *Enemy) TakeDamage() Outcome {
	if e.Health <= 0 {
		return keep()
	}
	e.Health--
	if e.Health > 0 {
		return keep()
	}
	return Outcome{
		Remove: true,
		Spawn:  []*Explosion{NewExplosion(float64(e.Col), float64(e.Row), EffectDestruction, DestroyColor)},
		Hit:    NoHit,
	}
}

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool {
	return e.Health > 0
}

// Advance is a no-op; enemies do not move.
func (e *Enemy) Advance(*Step) Outcome {
	return keep()
}

// Render fills the enemy's cell with the colour for its health.
func (e *Enemy) Render(canvas Canvas, ctx RenderContext) {
	x, y := ctx.CellPosition(float64(e.Col), float64(e.Row))
	c, ok := ctx.EnemyColor(e.Health)
	if !ok {
		c, _ = ctx.EnemyColor(1)
	}
	size := float64(ctx.CellSize())
	canvas.FillRect(x, y, x+size, y+size, c)
}
