package animator

import (
	"bytes"
	"errors"
	"image"
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
	"github.com/vovakirdan/gh-space-shooter/internal/render"
	"github.com/vovakirdan/gh-space-shooter/internal/strategy"
)

func newRun(t *testing.T, g game.Grid, id strategy.ID, seed int64, opts Options) (*Animator, *game.State) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	s, err := game.NewState(g, game.DefaultParams(), rng)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	p, err := strategy.New(id, rng)
	if err != nil {
		t.Fatalf("strategy.New() error = %v", err)
	}
	ctx := render.NewContext(render.DefaultLayout(), render.DefaultPalette())
	r := render.NewRenderer(ctx, g.Columns(), game.DefaultParams().ShipRow)
	return New(s, p, r, opts), s
}

func singleCell() game.Grid {
	g := game.Grid{Weeks: make([][]int, 52)}
	for c := range g.Weeks {
		g.Weeks[c] = make([]int, game.Days)
	}
	g.Weeks[0][0] = 2
	return g
}

func collect(a *Animator) [][]byte {
	var frames [][]byte
	for img := range a.Frames() {
		frames = append(frames, bytes.Clone(img.Pix))
	}
	return frames
}

func TestSingleCellScenario(t *testing.T) {
	a, s := newRun(t, singleCell(), strategy.Column, 1, Options{MaxFrames: 1000})
	frames := collect(a)

	if a.Err() != nil {
		t.Fatalf("Err() = %v", a.Err())
	}
	if !s.IsComplete() {
		t.Fatal("scenario did not complete")
	}
	// (cooldown + travel) * 2 with travel = 25 columns at half a column per frame
	if len(frames) > (4+50)*2 {
		t.Errorf("frames = %d, expected at most 108", len(frames))
	}
	st := a.Stats()
	if st.Frames != len(frames) || st.Truncated || st.Tail != 0 {
		t.Errorf("Stats() = %+v with %d frames", st, len(frames))
	}
	if st.Game.Hits != 2 || st.Game.Destroyed != 1 {
		t.Errorf("Game stats = %+v, expected 2 hits and 1 kill", st.Game)
	}
}

func TestDeterministicFrames(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	g := game.Grid{Weeks: make([][]int, 15)}
	for c := range g.Weeks {
		g.Weeks[c] = make([]int, game.Days)
		for r := range g.Weeks[c] {
			g.Weeks[c][r] = rng.Intn(5)
		}
	}

	for _, id := range []strategy.ID{strategy.Column, strategy.Row, strategy.Random} {
		a1, _ := newRun(t, g, id, 9, Options{MaxFrames: 5000, TailFrames: 20})
		a2, _ := newRun(t, g, id, 9, Options{MaxFrames: 5000, TailFrames: 20})
		f1, f2 := collect(a1), collect(a2)

		if len(f1) != len(f2) {
			t.Fatalf("%s: frame counts %d and %d differ", id, len(f1), len(f2))
		}
		for i := range f1 {
			if !bytes.Equal(f1[i], f2[i]) {
				t.Fatalf("%s: frame %d differs between identical runs", id, i)
			}
		}
	}
}

func TestEmptyGridYieldsOneFrame(t *testing.T) {
	g := game.Grid{Weeks: [][]int{make([]int, 7), make([]int, 7)}}
	a, _ := newRun(t, g, strategy.Column, 1, Options{MaxFrames: 100, TailFrames: 10})

	if n := len(collect(a)); n != 1 {
		t.Errorf("frames = %d, expected 1", n)
	}
}

func TestTruncation(t *testing.T) {
	a, s := newRun(t, singleCell(), strategy.Column, 1, Options{MaxFrames: 10})

	if n := len(collect(a)); n != 10 {
		t.Errorf("frames = %d, expected 10", n)
	}
	if !a.Stats().Truncated {
		t.Error("Truncated = false for a run stopped by the frame bound")
	}
	if s.IsComplete() {
		t.Error("run should not be complete after 10 frames")
	}
}

func TestTailFramesLetEffectsFinish(t *testing.T) {
	a, s := newRun(t, singleCell(), strategy.Column, 1, Options{MaxFrames: 1000, TailFrames: 50})
	collect(a)

	// The destruction blast lives 10 frames; the last impact blast a little less.
	if got := a.Stats().Tail; got != 10 {
		t.Errorf("Tail = %d, expected 10", got)
	}
	if s.HasActivity() {
		t.Error("effects should have played out")
	}
}

func TestTailFramesBounded(t *testing.T) {
	a, _ := newRun(t, singleCell(), strategy.Column, 1, Options{MaxFrames: 1000, TailFrames: 3})
	collect(a)
	if got := a.Stats().Tail; got != 3 {
		t.Errorf("Tail = %d, expected 3", got)
	}
}

func TestFramesNotRestartable(t *testing.T) {
	a, _ := newRun(t, singleCell(), strategy.Column, 1, Options{MaxFrames: 1000})
	first := len(collect(a))
	second := len(collect(a))

	if first == 0 || second != 0 {
		t.Errorf("frames = %d then %d, expected a single pass", first, second)
	}
	if !errors.Is(a.Err(), ErrConsumed) {
		t.Errorf("Err() = %v, expected ErrConsumed", a.Err())
	}
}

func TestEarlyBreak(t *testing.T) {
	a, _ := newRun(t, singleCell(), strategy.Column, 1, Options{MaxFrames: 1000})
	n := 0
	for range a.Frames() {
		n++
		if n == 5 {
			break
		}
	}
	if a.Stats().Frames != 5 {
		t.Errorf("Stats().Frames = %d, expected 5", a.Stats().Frames)
	}
}

func TestInvalidCommandAbortsRun(t *testing.T) {
	g := singleCell()
	s, err := game.NewState(g, game.DefaultParams(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	bad := game.PolicyFunc(func(game.View) game.Command { return game.MoveTo(99) })
	ctx := render.NewContext(render.DefaultLayout(), render.DefaultPalette())
	a := New(s, bad, render.NewRenderer(ctx, g.Columns(), 10), Options{MaxFrames: 100})

	if n := len(collect(a)); n != 0 {
		t.Errorf("frames = %d, expected 0", n)
	}
	if !errors.Is(a.Err(), game.ErrInvalidCommand) {
		t.Errorf("Err() = %v, expected ErrInvalidCommand", a.Err())
	}
}

func TestFrameBufferIsReused(t *testing.T) {
	a, _ := newRun(t, singleCell(), strategy.Column, 1, Options{MaxFrames: 3})
	var ptrs []*image.RGBA
	for img := range a.Frames() {
		ptrs = append(ptrs, img)
	}
	if len(ptrs) != 3 || slices.IndexFunc(ptrs, func(p *image.RGBA) bool { return p != ptrs[0] }) != -1 {
		t.Error("frames should share one buffer")
	}
}
