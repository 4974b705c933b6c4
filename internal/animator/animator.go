// Package animator drives a simulation with a policy and yields its frames.
package animator

import (
	"errors"
	"fmt"
	"image"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
	"github.com/vovakirdan/gh-space-shooter/internal/render"
)

// ErrConsumed is reported when the frame sequence is ranged over twice.
var ErrConsumed = errors.New("animator: frames already consumed")

// Options bounds a run.
type Options struct {
	MaxFrames  int         // Hard limit on produced frames
	TailFrames int         // Frames kept after completion while effects play out
	Logger     *log.Logger // Optional
}

// Stats describes a finished run.
type Stats struct {
	Frames    int // Frames yielded, tail included
	Tail      int // Frames yielded after completion
	Truncated bool
	Game      game.Stats
}

// Animator runs the frame loop once.
type Animator struct {
	state    *game.State
	policy   game.Policy
	renderer *render.Renderer
	opts     Options

	stats   Stats
	err     error
	started bool
}

// New prepares a run. The state and policy must belong to this run alone.
func New(state *game.State, policy game.Policy, renderer *render.Renderer, opts Options) *Animator {
	return &Animator{
		state:    state,
		policy:   policy,
		renderer: renderer,
		opts:     opts,
	}
}

// Frames returns the frame sequence. Each yielded image is the renderer's
// shared buffer and is only valid until the next iteration; copy it to keep
// it. The sequence can be ranged over once.
func (a *Animator) Frames() iter.Seq[*image.RGBA] {
	return func(yield func(*image.RGBA) bool) {
		if a.started {
			a.err = ErrConsumed
			return
		}
		a.started = true
		defer a.finish()

		if a.state.IsComplete() {
			a.stats.Frames = 1
			yield(a.renderer.Frame(a.state))
			return
		}

		for !a.state.IsComplete() && a.stats.Frames < a.opts.MaxFrames {
			if a.state.CanAct() {
				cmd := a.policy.Decide(a.state)
				if err := a.state.Apply(cmd); err != nil {
					a.err = fmt.Errorf("animator: frame %d: %w", a.stats.Frames, err)
					return
				}
			}
			a.state.Advance()
			a.stats.Frames++
			if !yield(a.renderer.Frame(a.state)) {
				return
			}
		}

		if !a.state.IsComplete() {
			a.stats.Truncated = true
			return
		}

		for a.stats.Tail < a.opts.TailFrames && a.stats.Frames < a.opts.MaxFrames && a.state.HasActivity() {
			a.state.Advance()
			a.stats.Frames++
			a.stats.Tail++
			if !yield(a.renderer.Frame(a.state)) {
				return
			}
		}
	}
}

func (a *Animator) finish() {
	a.stats.Game = a.state.Stats()
	if a.opts.Logger == nil {
		return
	}
	switch {
	case a.err != nil:
		a.opts.Logger.Error("animation aborted", "frames", a.stats.Frames, "err", a.err)
	case a.stats.Truncated:
		a.opts.Logger.Warn("animation truncated",
			"max_frames", a.opts.MaxFrames,
			"targets_left", len(a.state.Targets()))
	default:
		a.opts.Logger.Debug("animation finished",
			"frames", a.stats.Frames,
			"tail", a.stats.Tail,
			"shots", a.stats.Game.Shots)
	}
}

// Err returns the error that ended the run early, if any.
func (a *Animator) Err() error {
	return a.err
}

// Stats returns the run statistics. They are final once the sequence ends.
func (a *Animator) Stats() Stats {
	return a.stats
}
