// Package service wires grid sources, policies, the frame driver and the
// encoders into the generation pipeline used by every surface.
package service

import (
	"context"
	"fmt"
	"image"
	"io"
	"iter"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gh-space-shooter/internal/animator"
	"github.com/vovakirdan/gh-space-shooter/internal/config"
	"github.com/vovakirdan/gh-space-shooter/internal/contrib"
	"github.com/vovakirdan/gh-space-shooter/internal/game"
	"github.com/vovakirdan/gh-space-shooter/internal/output"
	"github.com/vovakirdan/gh-space-shooter/internal/render"
	"github.com/vovakirdan/gh-space-shooter/internal/storage"
	"github.com/vovakirdan/gh-space-shooter/internal/strategy"
)

// Store is the persistence the pipeline uses. *storage.Store implements it.
type Store interface {
	CachedGrid(username string, maxAge time.Duration, now time.Time) (contrib.Contributions, bool, error)
	CacheGrid(c contrib.Contributions, fetchedAt time.Time) error
	SaveRun(r storage.Run) (int64, error)
}

var _ Store = (*storage.Store)(nil)

// Request describes one generation.
type Request struct {
	Username string
	Grid     *contrib.Contributions // Used instead of fetching when set
	Strategy string                 // Empty selects the configured default
	Format   string                 // Empty selects GIF
	Seed     int64                  // 0 picks a time-based seed
}

// Result is an encoded animation.
type Result struct {
	Payload   []byte
	MediaType string
	Extension string
	Filename  string
	Username  string
	Strategy  strategy.ID
	Seed      int64
	Stats     animator.Stats
}

// Session is a prepared run that has not produced frames yet.
type Session struct {
	Contributions contrib.Contributions
	Strategy      strategy.ID
	Seed          int64
	Renderer      *render.Renderer
	Animator      *animator.Animator
}

// Generator builds runs from configuration. It holds no per-run state and
// is safe for concurrent use when its Store is.
type Generator struct {
	cfg     config.Config
	fetcher contrib.Fetcher
	store   Store
	logger  *log.Logger
	now     func() time.Time
}

// NewGenerator creates a pipeline. The fetcher, store and logger may be nil.
func NewGenerator(cfg config.Config, fetcher contrib.Fetcher, store Store, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{
		cfg:     cfg,
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// Config returns the configuration runs are built from.
func (g *Generator) Config() config.Config {
	return g.cfg
}

// Grid returns a user's contributions, from the cache when fresh.
func (g *Generator) Grid(ctx context.Context, username string) (contrib.Contributions, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return contrib.Contributions{}, fmt.Errorf("%w: username is required", game.ErrInvalidInput)
	}

	ttl := g.cfg.GitHub.CacheTTL
	if g.store != nil && ttl > 0 {
		c, ok, err := g.store.CachedGrid(username, ttl, g.now())
		if err != nil {
			g.logger.Warn("grid cache lookup failed", "user", username, "err", err)
		} else if ok {
			g.logger.Debug("grid cache hit", "user", username)
			return c, nil
		}
	}

	if g.fetcher == nil {
		return contrib.Contributions{}, contrib.ErrNoToken
	}
	c, err := g.fetcher.Fetch(ctx, username)
	if err != nil {
		return contrib.Contributions{}, err
	}
	g.logger.Info("fetched contributions", "user", username, "weeks", len(c.Weeks), "total", c.Total)

	if g.store != nil && ttl > 0 {
		if err := g.store.CacheGrid(c, g.now()); err != nil {
			g.logger.Warn("grid cache store failed", "user", username, "err", err)
		}
	}
	return c, nil
}

// NewSession resolves the grid and builds the per-run state, policy and
// driver. Every call creates fresh objects.
func (g *Generator) NewSession(ctx context.Context, req Request) (*Session, error) {
	name := req.Strategy
	if strings.TrimSpace(name) == "" {
		name = g.cfg.Game.DefaultStrategy
	}
	id, err := strategy.Parse(name)
	if err != nil {
		return nil, err
	}

	var c contrib.Contributions
	if req.Grid != nil {
		c = *req.Grid
	} else if c, err = g.Grid(ctx, req.Username); err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = g.now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	params := g.cfg.GameParams()
	state, err := game.NewState(c.Grid(), params, rng)
	if err != nil {
		return nil, err
	}
	policy, err := strategy.New(id, rng)
	if err != nil {
		return nil, err
	}

	renderer := render.NewRenderer(render.NewContext(g.cfg.Layout(), g.cfg.Palette()), c.Grid().Columns(), params.ShipRow)
	anim := animator.New(state, policy, renderer, animator.Options{
		MaxFrames:  g.cfg.Animation.MaxFrames,
		TailFrames: g.cfg.Animation.TailFrames,
		Logger:     g.logger.With("user", c.Username, "strategy", id),
	})

	return &Session{
		Contributions: c,
		Strategy:      id,
		Seed:          seed,
		Renderer:      renderer,
		Animator:      anim,
	}, nil
}

// Encoder resolves the encoder for a format with the configured options.
func (g *Generator) Encoder(format string) (output.Encoder, error) {
	opts := output.Options{
		FPS:           g.cfg.Animation.FPS,
		Watermark:     g.cfg.Animation.Watermark,
		WatermarkText: g.cfg.Animation.WatermarkText,
	}
	enc, err := output.Resolve(format, opts)
	if err != nil {
		return nil, err
	}
	switch e := enc.(type) {
	case *output.GIF:
		return output.NewGIFWithPalette(opts, g.cfg.Palette()), nil
	case *output.PNG:
		return e.WithPalette(g.cfg.Palette()), nil
	}
	return enc, nil
}

// Generate runs a simulation to completion and encodes it.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	enc, err := g.Encoder(req.Format)
	if err != nil {
		return nil, err
	}
	session, err := g.NewSession(ctx, req)
	if err != nil {
		return nil, err
	}

	started := g.now()
	payload, err := enc.Encode(untilDone(ctx, session.Animator.Frames()))
	if err := session.Animator.Err(); err != nil {
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}

	user := session.Contributions.Username
	result := &Result{
		Payload:   payload,
		MediaType: enc.MediaType(),
		Extension: enc.Extension(),
		Filename:  fmt.Sprintf("%s-space-shooter.%s", user, enc.Extension()),
		Username:  user,
		Strategy:  session.Strategy,
		Seed:      session.Seed,
		Stats:     session.Animator.Stats(),
	}
	elapsed := g.now().Sub(started)

	g.logger.Info("run finished",
		"user", user,
		"strategy", session.Strategy,
		"format", result.Extension,
		"frames", result.Stats.Frames,
		"bytes", len(payload),
		"elapsed", elapsed.Round(time.Millisecond),
	)
	g.record(result, elapsed)
	return result, nil
}

func (g *Generator) record(r *Result, elapsed time.Duration) {
	if g.store == nil {
		return
	}
	_, err := g.store.SaveRun(storage.Run{
		Username:  r.Username,
		Strategy:  string(r.Strategy),
		Format:    r.Extension,
		Seed:      r.Seed,
		Frames:    r.Stats.Frames,
		Shots:     r.Stats.Game.Shots,
		Hits:      r.Stats.Game.Hits,
		Destroyed: r.Stats.Game.Destroyed,
		Truncated: r.Stats.Truncated,
		Bytes:     len(r.Payload),
		Duration:  elapsed,
	})
	if err != nil {
		g.logger.Warn("run not recorded", "user", r.Username, "err", err)
	}
}

// untilDone stops the sequence once ctx is cancelled.
func untilDone(ctx context.Context, frames iter.Seq[*image.RGBA]) iter.Seq[*image.RGBA] {
	return func(yield func(*image.RGBA) bool) {
		for f := range frames {
			if ctx.Err() != nil || !yield(f) {
				return
			}
		}
	}
}
