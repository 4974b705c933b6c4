package strategy

import "github.com/vovakirdan/gh-space-shooter/internal/game"

// ColumnPolicy empties the leftmost column that still needs shots.
type ColumnPolicy struct{}

// Decide implements game.Policy.
func (p *ColumnPolicy) Decide(v game.View) game.Command {
	d := demand(v)
	for c := 0; c < v.Columns(); c++ {
		if d[c] > 0 {
			return engage(v, c)
		}
	}
	return game.Idle()
}
