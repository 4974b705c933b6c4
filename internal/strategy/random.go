package strategy

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
)

// RandomPolicy picks a random column with remaining enemies and keeps
// firing at it until it needs no more shots.
type RandomPolicy struct {
	rng     *rand.Rand
	current int
}

// NewRandomPolicy creates a random policy drawing from rng.
func NewRandomPolicy(rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{rng: rng, current: -1}
}

// Decide implements game.Policy.
func (p *RandomPolicy) Decide(v game.View) game.Command {
	d := demand(v)
	if p.current >= 0 && d[p.current] > 0 {
		return engage(v, p.current)
	}

	candidates := make([]int, 0, len(d))
	for c, n := range d {
		if n > 0 {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		p.current = -1
		return game.Idle()
	}
	// Map order is random; sort so the rng alone decides.
	slices.Sort(candidates)
	p.current = candidates[p.rng.Intn(len(candidates))]
	return engage(v, p.current)
}
