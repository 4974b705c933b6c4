package game

import (
	"image/color"

	"github.com/vovakirdan/gh-space-shooter/internal/core"
)

// ImpactColor is the base colour of the spark left where a bullet hits.
var ImpactColor = color.NRGBA{R: 0xff, G: 0xdf, B: 0x00, A: 0xff}

const trailLength = 5

// Bullet travels straight up its column until it hits an enemy or leaves
// the field.
type Bullet struct {
	ID    int
	Col   int
	Row   float64
	speed float64
	exit  float64
}

func newBullet(id, col int, p Params) *Bullet {
	return &Bullet{
		ID:    id,
		Col:   col,
		Row:   float64(p.ShipRow - 1),
		speed: p.BulletSpeed,
		exit:  p.BulletExitRow,
	}
}

// Advance moves the bullet up and checks for a collision.
// The first living enemy in collection order that shares the column and
// sits at or below the bullet's row is hit.
func (b *Bullet) Advance(step *Step) Outcome {
	b.Row -= b.speed
	if target := b.collide(step.Targets); target != nil {
		return Outcome{
			Remove: true,
			Spawn:  []*Explosion{NewExplosion(float64(b.Col), b.Row, EffectImpact, ImpactColor)},
			Hit:    target.ID,
		}
	}
	if b.Row < b.exit {
		return Outcome{Remove: true, Hit: NoHit}
	}
	return keep()
}

func (b *Bullet) collide(targets []*Enemy) *Enemy {
	for _, e := range targets {
		if e.Col == b.Col && float64(e.Row) >= b.Row && e.Alive() {
			return e
		}
	}
	return nil
}

// Render draws a fading trail behind the bullet, then the bullet itself.
func (b *Bullet) Render(canvas Canvas, ctx RenderContext) {
	for i := range trailLength {
		row := b.Row + float64(trailLength-i)*b.speed/2
		fade := float64(i+1) / trailLength * 0.7
		b.renderAt(canvas, ctx, row, fade)
	}
	b.renderAt(canvas, ctx, b.Row, 1)
}

func (b *Bullet) renderAt(canvas Canvas, ctx RenderContext, row, opacity float64) {
	x, y := ctx.CellPosition(float64(b.Col), row)
	half := float64(ctx.CellSize() / 2)
	x += half
	y += half
	canvas.FillRect(x-0.5, y-3, x+0.5, y+3, core.WithAlpha(ctx.BulletColor(), opacity))
}
