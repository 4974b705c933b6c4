// Package strategy provides the policies that steer the ship, selected from
// a closed set of identifiers.
package strategy

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
)

// ErrUnknownStrategy is returned for identifiers outside the closed set.
var ErrUnknownStrategy = errors.New("unknown strategy")

// ID names a strategy.
type ID string

const (
	Column ID = "column"
	Row    ID = "row"
	Random ID = "random"
)

// Default is used when no strategy is requested.
const Default = Random

// Info describes a strategy for listings.
type Info struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type entry struct {
	info Info
	new  func(rng *rand.Rand) game.Policy
}

// strategies is the complete mapping, in display order.
var strategies = []entry{
	{
		info: Info{Column, "Column sweep", "Clears the grid one week at a time, left to right."},
		new:  func(*rand.Rand) game.Policy { return &ColumnPolicy{} },
	},
	{
		info: Info{Row, "Row sweep", "Clears the bottom day first, snaking across the weeks."},
		new:  func(*rand.Rand) game.Policy { return &RowPolicy{} },
	},
	{
		info: Info{Random, "Random target", "Picks a random week and stays on it until it is clear."},
		new:  func(rng *rand.Rand) game.Policy { return NewRandomPolicy(rng) },
	},
}

// Parse resolves an identifier. The empty string selects Default; any other
// unknown value is an error rather than a silent fallback.
func Parse(s string) (ID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	for _, e := range strategies {
		if string(e.info.ID) == s {
			return e.info.ID, nil
		}
	}
	return "", fmt.Errorf("%w %q (choose from: %s)", ErrUnknownStrategy, s, strings.Join(Names(), ", "))
}

// New creates a fresh policy. The rng is only used by Random and must not be
// shared with another run.
func New(id ID, rng *rand.Rand) (game.Policy, error) {
	for _, e := range strategies {
		if e.info.ID == id {
			return e.new(rng), nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, id)
}

// List returns every strategy in display order.
func List() []Info {
	out := make([]Info, len(strategies))
	for i, e := range strategies {
		out[i] = e.info
	}
	return out
}

// Names returns the identifiers as strings.
func Names() []string {
	out := make([]string, len(strategies))
	for i, e := range strategies {
		out[i] = string(e.info.ID)
	}
	return out
}

// demand returns, for every column, the hits still needed beyond the
// bullets already flying up that column.
func demand(v game.View) map[int]int {
	d := make(map[int]int)
	for _, t := range v.Targets() {
		d[t.Col] += t.Health
	}
	for _, p := range v.Projectiles() {
		d[p.Col]--
	}
	return d
}

// engage moves to a column, or fires once the ship is over it.
func engage(v game.View, column int) game.Command {
	if v.ShipColumn() != float64(column) {
		return game.MoveTo(column)
	}
	return game.Shoot()
}
