package game

import (
	"fmt"
	"hash/fnv"
)

// Snapshot returns a hash of the complete simulation state, for determinism
// checks and replay verification.
func (s *State) Snapshot() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "S:%v:%v:%d;", s.ship.X, s.ship.TargetX, s.ship.Cooldown)

	fmt.Fprintf(h, "E:")
	for _, e := range s.enemies {
		fmt.Fprintf(h, "%d:%d:%d:%d,", e.ID, e.Col, e.Row, e.Health)
	}

	fmt.Fprintf(h, ";B:")
	for _, b := range s.bullets {
		fmt.Fprintf(h, "%d:%d:%v,", b.ID, b.Col, b.Row)
	}

	fmt.Fprintf(h, ";X:")
	for _, fx := range s.effects {
		fmt.Fprintf(h, "%v:%v:%d:%d,", fx.X, fx.Y, fx.Kind, fx.Age)
	}

	fmt.Fprintf(h, ";F:")
	for _, st := range s.starfield.stars {
		fmt.Fprintf(h, "%v:%v,", st.X, st.Y)
	}

	fmt.Fprintf(h, ";T:%d:%d:%d:%d", s.stats.Steps, s.stats.Shots, s.stats.Hits, s.stats.Destroyed)

	return h.Sum64()
}
