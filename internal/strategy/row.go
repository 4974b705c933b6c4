package strategy

import "github.com/vovakirdan/gh-space-shooter/internal/game"

// RowPolicy clears the grid row by row from the bottom, reversing the
// column direction on every row.
//
// Bullets always strike the lowest living enemy in their column first, so
// reaching an enemy at row r takes as many hits as the column holds at
// rows >= r.
type RowPolicy struct{}

// Decide implements game.Policy.
func (p *RowPolicy) Decide(v game.View) game.Command {
	cols := v.Columns()
	below := make([][game.Days]int, cols) // health at rows >= r, per column
	occupied := make([][game.Days]bool, cols)
	for _, t := range v.Targets() {
		occupied[t.Col][t.Row] = true
		for r := 0; r <= t.Row; r++ {
			below[t.Col][r] += t.Health
		}
	}
	inFlight := make([]int, cols)
	for _, b := range v.Projectiles() {
		if b.Col >= 0 && b.Col < cols {
			inFlight[b.Col]++
		}
	}

	for i, r := 0, game.Days-1; r >= 0; i, r = i+1, r-1 {
		for j := range cols {
			c := j
			if i%2 == 1 {
				c = cols - 1 - j
			}
			if occupied[c][r] && below[c][r]-inFlight[c] > 0 {
				return engage(v, c)
			}
		}
	}
	return game.Idle()
}
