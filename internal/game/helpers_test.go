package game

import (
	"image/color"
	"math/rand"
	"testing"
)

type paintOp struct {
	kind   string // point, rect, ellipse, polygon
	bounds [4]float64
	points []Vec
	color  color.NRGBA
}

// recordingCanvas keeps every paint call in order.
type recordingCanvas struct {
	ops []paintOp
}

func (c *recordingCanvas) Point(x, y float64, col color.NRGBA) {
	c.ops = append(c.ops, paintOp{kind: "point", bounds: [4]float64{x, y, x, y}, color: col})
}

func (c *recordingCanvas) FillRect(x0, y0, x1, y1 float64, col color.NRGBA) {
	c.ops = append(c.ops, paintOp{kind: "rect", bounds: [4]float64{x0, y0, x1, y1}, color: col})
}

func (c *recordingCanvas) FillEllipse(x0, y0, x1, y1 float64, col color.NRGBA) {
	c.ops = append(c.ops, paintOp{kind: "ellipse", bounds: [4]float64{x0, y0, x1, y1}, color: col})
}

func (c *recordingCanvas) FillPolygon(pts []Vec, col color.NRGBA) {
	c.ops = append(c.ops, paintOp{kind: "polygon", points: append([]Vec(nil), pts...), color: col})
}

var (
	testLevels = map[int]color.NRGBA{
		1: {R: 0x0e, G: 0x44, B: 0x29, A: 0xff},
		2: {R: 0x00, G: 0x6d, B: 0x32, A: 0xff},
		3: {R: 0x26, G: 0xa6, B: 0x41, A: 0xff},
		4: {R: 0x39, G: 0xd3, B: 0x53, A: 0xff},
	}
	testShip   = color.NRGBA{R: 0x58, G: 0xa6, B: 0xff, A: 0xff}
	testBullet = color.NRGBA{R: 0xff, G: 0xdf, B: 0x00, A: 0xff}
)

// gridContext mirrors the default layout: 12px cells, 3px gaps, 40px padding.
type gridContext struct {
	levels map[int]color.NRGBA
}

func newGridContext() gridContext {
	return gridContext{levels: testLevels}
}

func (gridContext) CellPosition(col, row float64) (float64, float64) {
	return 40 + col*15, 40 + row*15
}

func (gridContext) CellSize() int { return 12 }

func (g gridContext) EnemyColor(health int) (color.NRGBA, bool) {
	c, ok := g.levels[health]
	return c, ok
}

func (gridContext) ShipColor() color.NRGBA   { return testShip }
func (gridContext) BulletColor() color.NRGBA { return testBullet }

// columnSweep targets the leftmost column that still needs shots.
func columnSweep() Policy {
	return PolicyFunc(func(v View) Command {
		demand := make(map[int]int)
		for _, t := range v.Targets() {
			demand[t.Col] += t.Health
		}
		for _, p := range v.Projectiles() {
			demand[p.Col]--
		}
		for c := 0; c < v.Columns(); c++ {
			if demand[c] <= 0 {
				continue
			}
			if int(v.ShipColumn()) != c {
				return MoveTo(c)
			}
			return Shoot()
		}
		return Idle()
	})
}

func randomGrid(rng *rand.Rand, columns int) Grid {
	g := Grid{Weeks: make([][]int, columns)}
	for c := range g.Weeks {
		g.Weeks[c] = make([]int, Days)
		for r := range g.Weeks[c] {
			if rng.Intn(3) == 0 {
				g.Weeks[c][r] = rng.Intn(MaxIntensity) + 1
			}
		}
	}
	return g
}

func emptyGrid(columns int) Grid {
	g := Grid{Weeks: make([][]int, columns)}
	for c := range g.Weeks {
		g.Weeks[c] = make([]int, Days)
	}
	return g
}

func mustState(t *testing.T, g Grid, p Params, seed int64) *State {
	t.Helper()
	s, err := NewState(g, p, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	return s
}

// drive runs the frame loop with a policy until completion or the limit.
func drive(t *testing.T, s *State, p Policy, limit int, onStep func(StepResult)) int {
	t.Helper()
	frames := 0
	for frames < limit && !s.IsComplete() {
		if s.CanAct() {
			if err := s.Apply(p.Decide(s)); err != nil {
				t.Fatalf("Apply() error = %v at frame %d", err, frames)
			}
		}
		res := s.Advance()
		frames++
		if onStep != nil {
			onStep(res)
		}
	}
	return frames
}
