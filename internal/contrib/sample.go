package contrib

import (
	"math/rand"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
)

// SampleUser names generated grids.
const SampleUser = "sample"

// sampleLevels skews generated days toward quiet ones.
var sampleLevels = []int{0, 0, 0, 0, 0, 1, 1, 2, 3, 4}

// Sample generates a plausible year of contributions.
func Sample(weeks int, rng *rand.Rand) Contributions {
	c := Contributions{Username: SampleUser, Weeks: make([][]int, weeks)}
	for w := range c.Weeks {
		week := make([]int, game.Days)
		for d := range week {
			week[d] = sampleLevels[rng.Intn(len(sampleLevels))]
		}
		c.Weeks[w] = week
	}
	return c
}
