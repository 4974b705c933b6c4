package game

import (
	"image/color"

	"github.com/vovakirdan/gh-space-shooter/internal/core"
)

// EffectKind selects the size and lifetime of an explosion.
type EffectKind uint8

const (
	EffectImpact      EffectKind = iota // Bullet hit
	EffectDestruction                   // Enemy destroyed
)

// String returns the string representation of the kind.
func (k EffectKind) String() string {
	switch k {
	case EffectImpact:
		return "impact"
	case EffectDestruction:
		return "destruction"
	default:
		return "unknown"
	}
}

type effectShape struct {
	particles int
	radius    float64
	life      int
}

var effectShapes = map[EffectKind]effectShape{
	EffectImpact:      {particles: 4, radius: 8, life: 6},
	EffectDestruction: {particles: 8, radius: 15, life: 10},
}

// Explosion is a short-lived particle burst.
type Explosion struct {
	X, Y  float64
	Kind  EffectKind
	Color color.NRGBA
	Age   int
	shape effectShape
}

// NewExplosion creates a burst at a grid position. Unknown kinds are
// treated as EffectImpact.
func NewExplosion(x, y float64, kind EffectKind, c color.NRGBA) *Explosion {
	shape, ok := effectShapes[kind]
	if !ok {
		kind = EffectImpact
		shape = effectShapes[EffectImpact]
	}
	return &Explosion{
		X:     x,
		Y:     y,
		Kind:  kind,
		Color: c,
		shape: shape,
	}
}

// MaxAge is the age at which the explosion is removed.
func (e *Explosion) MaxAge() int {
	return e.shape.life
}

// Advance ages the explosion and asks for removal when its life is over.
func (e *Explosion) Advance(*Step) Outcome {
	if e.Age < e.shape.life {
		e.Age++
	}
	return Outcome{Remove: e.Age >= e.shape.life, Hit: NoHit}
}

// Render draws the particles expanding outward and fading. Particles are
// thrown into the four diagonal quadrants rather than around a circle.
func (e *Explosion) Render(canvas Canvas, ctx RenderContext) {
	progress := float64(e.Age) / float64(e.shape.life)
	fade := 1 - progress

	cx, cy := ctx.CellPosition(e.X, e.Y)
	half := float64(ctx.CellSize() / 2)
	cx += half
	cy += half

	distance := progress * e.shape.radius
	size := float64(int((1-progress*0.5)*3) + 1)
	c := core.Fade(e.Color, fade)

	for i := range e.shape.particles {
		sx := float64(i%2*2 - 1)
		sy := float64((i/2)%2*2 - 1)
		px := float64(int(cx + distance*sx))
		py := float64(int(cy + distance*sy))
		canvas.FillRect(px-size, py-size, px+size, py+size, c)
	}

	if e.Age < 3 {
		flash := float64(int((1 - progress*2) * 4))
		canvas.FillEllipse(cx-flash, cy-flash, cx+flash, cy+flash, core.WithAlpha(e.Color, 1-progress*2))
	}
}
