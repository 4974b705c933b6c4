package game

// Grid dimensions and intensity range.
const (
	Days         = 7
	MaxIntensity = 4
)

// Grid is the activity matrix a run is built from.
// Weeks[c][r] is the intensity of day r in week c.
type Grid struct {
	Weeks [][]int `json:"weeks" yaml:"weeks" msgpack:"weeks"`
}

// Columns returns the number of weeks.
func (g Grid) Columns() int {
	return len(g.Weeks)
}

// Validate checks the shape and the intensity range of every cell.
func (g Grid) Validate() error {
	for c, week := range g.Weeks {
		if len(week) != Days {
			return invalidInput("BAD_SHAPE", "week %d has %d days, expected %d", c, len(week), Days)
		}
		for r, v := range week {
			if v < 0 || v > MaxIntensity {
				return invalidInput("BAD_INTENSITY", "cell (%d, %d) has intensity %d, expected 0..%d", c, r, v, MaxIntensity)
			}
		}
	}
	return nil
}

// ActiveCells counts the cells with nonzero intensity.
func (g Grid) ActiveCells() int {
	n := 0
	for _, week := range g.Weeks {
		for _, v := range week {
			if v > 0 {
				n++
			}
		}
	}
	return n
}

// TotalIntensity sums every cell, which is the number of hits a run needs.
func (g Grid) TotalIntensity() int {
	n := 0
	for _, week := range g.Weeks {
		for _, v := range week {
			n += v
		}
	}
	return n
}
