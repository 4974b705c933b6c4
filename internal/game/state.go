// Package game implements the space shooter simulation: a ship sweeping an
// activity grid and shooting down the enemies placed on its active cells.
// It is deterministic and UI-agnostic; all randomness comes from the
// injected source and all drawing goes through Canvas.
package game

import (
	"math/rand"

	"github.com/vovakirdan/gh-space-shooter/internal/core"
)

// Stats counts what happened during a run.
type Stats struct {
	Steps     int
	Shots     int
	Hits      int
	Destroyed int
}

// HitEvent records a bullet striking an enemy.
type HitEvent struct {
	BulletID int
	EnemyID  int
	Col      int
	Row      int
	Health   int // Health left after the hit
}

// StepResult contains information about what happened during a step.
type StepResult struct {
	Step      int
	Hits      []HitEvent
	Destroyed []int // Enemy IDs removed this step
	Expired   int   // Bullets that left the field
	Complete  bool
}

// State owns every entity of one run.
type State struct {
	params    Params
	columns   int
	starfield *Starfield
	ship      *Ship
	enemies   []*Enemy
	bullets   []*Bullet
	effects   []*Explosion
	nextShot  int
	stats     Stats
}

// NewState validates the grid and builds the initial scene from it.
// Enemies are created column by column, top to bottom, one per active cell.
// Nothing is built when the grid or the parameters are rejected.
func NewState(grid Grid, params Params, rng *rand.Rand) (*State, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	columns := grid.Columns()
	s := &State{
		params:    params,
		columns:   columns,
		starfield: NewStarfield(columns, params.ShipRow, params.StarCount, rng),
		ship:      newShip(core.Clamp(params.ShipStartColumn, 0, max(columns-1, 0)), params),
		enemies:   make([]*Enemy, 0, grid.ActiveCells()),
	}
	for c, week := range grid.Weeks {
		for r, v := range week {
			if v <= 0 {
				continue
			}
			s.enemies = append(s.enemies, &Enemy{ID: len(s.enemies), Col: c, Row: r, Health: v})
		}
	}
	return s, nil
}

// CanAct reports whether the ship is idle and ready to fire, which is when
// a policy command is accepted.
func (s *State) CanAct() bool {
	return !s.ship.IsMoving() && s.ship.CanShoot()
}

// IsComplete reports whether every enemy has been destroyed.
func (s *State) IsComplete() bool {
	return len(s.enemies) == 0
}

// HasActivity reports whether bullets or explosions are still in flight.
func (s *State) HasActivity() bool {
	return len(s.bullets) > 0 || len(s.effects) > 0
}

// Shoot fires a bullet from the ship's column and restarts the cooldown.
// It does not check readiness; use Apply for validated commands.
func (s *State) Shoot() {
	s.bullets = append(s.bullets, s.ship.shoot(s.nextShot, s.params))
	s.nextShot++
	s.stats.Shots++
}

// Apply executes a policy command after checking it is legal.
func (s *State) Apply(cmd Command) error {
	switch cmd.Kind {
	case CommandIdle:
		return nil
	case CommandMove:
		if cmd.Column < 0 || cmd.Column >= s.columns {
			return invalidCommand("BAD_COLUMN", "column %d outside [0, %d]", cmd.Column, s.columns-1)
		}
		s.ship.MoveTo(cmd.Column)
		return nil
	case CommandShoot:
		if !s.ship.CanShoot() {
			return invalidCommand("COOLDOWN", "shot requested with %d steps of cooldown left", s.ship.Cooldown)
		}
		s.Shoot()
		return nil
	default:
		return invalidCommand("UNKNOWN", "unknown command kind %d", cmd.Kind)
	}
}

// Advance moves the whole scene one step.
//
// Order: starfield, ship, enemies, bullets, explosions. Damage from a hit
// lands immediately so later bullets in the same pass see it, but every
// removal and every new explosion is applied in one sweep after the pass.
// Explosions spawned during the step therefore first appear at age 0.
func (s *State) Advance() StepResult {
	s.stats.Steps++
	result := StepResult{Step: s.stats.Steps}
	step := &Step{Targets: s.enemies}

	s.starfield.Advance(step)
	s.ship.Advance(step)
	for _, e := range s.enemies {
		e.Advance(step)
	}

	var spawned []*Explosion
	bulletGone := make([]bool, len(s.bullets))
	for i, b := range s.bullets {
		out := b.Advance(step)
		bulletGone[i] = out.Remove
		spawned = append(spawned, out.Spawn...)
		if out.Hit == NoHit {
			if out.Remove {
				result.Expired++
			}
			continue
		}
		target := s.enemyByID(out.Hit)
		if target == nil {
			continue
		}
		dmg := target.TakeDamage()
		s.stats.Hits++
		result.Hits = append(result.Hits, HitEvent{
			BulletID: b.ID,
			EnemyID:  target.ID,
			Col:      target.Col,
			Row:      target.Row,
			Health:   target.Health,
		})
		spawned = append(spawned, dmg.Spawn...)
	}

	effectGone := make([]bool, len(s.effects))
	for i, fx := range s.effects {
		effectGone[i] = fx.Advance(step).Remove
	}

	// Sweep
	alive := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Alive() {
			alive = append(alive, e)
			continue
		}
		result.Destroyed = append(result.Destroyed, e.ID)
		s.stats.Destroyed++
	}
	clear(s.enemies[len(alive):])
	s.enemies = alive
	s.bullets = sweep(s.bullets, bulletGone)
	s.effects = append(sweep(s.effects, effectGone), spawned...)

	result.Complete = s.IsComplete()
	return result
}

func sweep[T any](items []*T, gone []bool) []*T {
	kept := items[:0]
	for i, it := range items {
		if !gone[i] {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

func (s *State) enemyByID(id int) *Enemy {
	for _, e := range s.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Render paints the scene back to front: starfield, enemies, explosions,
// bullets, ship.
func (s *State) Render(canvas Canvas, ctx RenderContext) {
	s.starfield.Render(canvas, ctx)
	for _, e := range s.enemies {
		e.Render(canvas, ctx)
	}
	for _, fx := range s.effects {
		fx.Render(canvas, ctx)
	}
	for _, b := range s.bullets {
		b.Render(canvas, ctx)
	}
	s.ship.Render(canvas, ctx)
}

// Stats returns the run counters.
func (s *State) Stats() Stats {
	return s.stats
}

// Params returns the rules the state was built with.
func (s *State) Params() Params {
	return s.params
}

// Ship returns a copy of the avatar.
func (s *State) Ship() Ship {
	return *s.ship
}

// Enemies returns copies of the remaining enemies in collection order.
func (s *State) Enemies() []Enemy {
	out := make([]Enemy, len(s.enemies))
	for i, e := range s.enemies {
		out[i] = *e
	}
	return out
}

// Bullets returns copies of the bullets in flight.
func (s *State) Bullets() []Bullet {
	out := make([]Bullet, len(s.bullets))
	for i, b := range s.bullets {
		out[i] = *b
	}
	return out
}

// Explosions returns copies of the active explosions.
func (s *State) Explosions() []Explosion {
	out := make([]Explosion, len(s.effects))
	for i, fx := range s.effects {
		out[i] = *fx
	}
	return out
}
