package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/gif"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gh-space-shooter/internal/config"
	"github.com/vovakirdan/gh-space-shooter/internal/contrib"
	"github.com/vovakirdan/gh-space-shooter/internal/game"
	"github.com/vovakirdan/gh-space-shooter/internal/output"
	"github.com/vovakirdan/gh-space-shooter/internal/storage"
	"github.com/vovakirdan/gh-space-shooter/internal/strategy"
)

type fakeFetcher struct {
	calls int
	grids map[string]contrib.Contributions
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, username string) (contrib.Contributions, error) {
	f.calls++
	if f.err != nil {
		return contrib.Contributions{}, f.err
	}
	c, ok := f.grids[username]
	if !ok {
		return contrib.Contributions{}, fmt.Errorf("%w: %s", contrib.ErrUserNotFound, username)
	}
	return c, nil
}

func smallGrid(user string) contrib.Contributions {
	return contrib.Contributions{
		Username: user,
		Weeks: [][]int{
			{0, 0, 1, 0, 0, 0, 0},
			{0, 2, 0, 0, 0, 0, 1},
			{0, 0, 0, 0, 0, 0, 0},
		},
	}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Game.StarCount = 10
	cfg.Animation.TailFrames = 5
	return cfg
}

func newTestGenerator(t *testing.T) (*Generator, *fakeFetcher, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	fetcher := &fakeFetcher{grids: map[string]contrib.Contributions{"octo": smallGrid("octo")}}
	return NewGenerator(testConfig(), fetcher, store, nil), fetcher, store
}

func TestGenerateGIF(t *testing.T) {
	gen, _, store := newTestGenerator(t)

	res, err := gen.Generate(context.Background(), Request{Username: "octo", Strategy: "column", Seed: 5})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if res.MediaType != "image/gif" || res.Filename != "octo-space-shooter.gif" {
		t.Errorf("Generate() = %s %s, expected image/gif octo-space-shooter.gif", res.MediaType, res.Filename)
	}
	if res.Stats.Game.Destroyed != 3 || res.Stats.Game.Hits != 4 {
		t.Errorf("Stats = %+v, expected 3 destroyed from 4 hits", res.Stats.Game)
	}

	anim, err := gif.DecodeAll(bytes.NewReader(res.Payload))
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}
	if len(anim.Image) != res.Stats.Frames {
		t.Errorf("GIF frames = %d, expected %d", len(anim.Image), res.Stats.Frames)
	}

	runs, _ := store.RunsByUser("octo", 5)
	if len(runs) != 1 || runs[0].Strategy != "column" || runs[0].Frames != res.Stats.Frames {
		t.Errorf("recorded runs = %+v, expected the finished run", runs)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	gen, _, _ := newTestGenerator(t)

	a, err := gen.Generate(context.Background(), Request{Username: "octo", Seed: 99})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := gen.Generate(context.Background(), Request{Username: "octo", Seed: 99})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.Equal(a.Payload, b.Payload) {
		t.Errorf("payloads differ for the same seed")
	}
	if a.Strategy != strategy.Random {
		t.Errorf("Strategy = %s, expected default %s", a.Strategy, strategy.Random)
	}
}

func TestGenerateUsesGridCache(t *testing.T) {
	gen, fetcher, _ := newTestGenerator(t)

	for range 2 {
		if _, err := gen.Grid(context.Background(), "octo"); err != nil {
			t.Fatalf("Grid() error = %v", err)
		}
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, expected 1", fetcher.calls)
	}

	gen.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	gen.Grid(context.Background(), "octo")
	if fetcher.calls != 2 {
		t.Errorf("fetch calls after expiry = %d, expected 2", fetcher.calls)
	}
}

func TestGenerateWithProvidedGrid(t *testing.T) {
	gen, fetcher, _ := newTestGenerator(t)
	grid := smallGrid("file")

	res, err := gen.Generate(context.Background(), Request{Grid: &grid, Format: "png", Seed: 1})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetch calls = %d, expected none", fetcher.calls)
	}
	if res.Extension != "png" || res.Filename != "file-space-shooter.png" {
		t.Errorf("Generate() = %s %s, expected png poster", res.Extension, res.Filename)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		kind Kind
	}{
		{"unknown strategy", Request{Username: "octo", Strategy: "spiral"}, KindInvalid},
		{"webp", Request{Username: "octo", Format: "webp"}, KindInvalid},
		{"no username", Request{}, KindInvalid},
		{"unknown user", Request{Username: "ghost"}, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, _, _ := newTestGenerator(t)
			_, err := gen.Generate(context.Background(), tt.req)
			if err == nil {
				t.Fatalf("Generate() error = nil, expected %s", tt.kind)
			}
			if got := Classify(err); got != tt.kind {
				t.Errorf("Classify(%v) = %s, expected %s", err, got, tt.kind)
			}
		})
	}
}

func TestGenerateInvalidGrid(t *testing.T) {
	gen, _, _ := newTestGenerator(t)
	bad := contrib.Contributions{Username: "bad", Weeks: [][]int{{1, 2, 3}}}

	_, err := gen.Generate(context.Background(), Request{Grid: &bad})
	if !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("Generate() error = %v, expected ErrInvalidInput", err)
	}
}

func TestGenerateCanceled(t *testing.T) {
	gen, _, _ := newTestGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, Request{Username: "octo", Seed: 3})
	if Classify(err) != KindCanceled {
		t.Errorf("Classify(%v) = %s, expected canceled", err, Classify(err))
	}
}

func TestGenerateWithoutFetcher(t *testing.T) {
	gen := NewGenerator(testConfig(), nil, nil, nil)
	_, err := gen.Generate(context.Background(), Request{Username: "octo"})
	if Classify(err) != KindConfig {
		t.Errorf("Classify(%v) = %s, expected config", err, Classify(err))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err      error
		expected Kind
	}{
		{fmt.Errorf("wrap: %w", strategy.ErrUnknownStrategy), KindInvalid},
		{output.ErrUnsupportedFormat, KindInvalid},
		{contrib.ErrBadFile, KindInvalid},
		{&contrib.APIError{StatusCode: 401, Message: "bad credentials"}, KindUpstream},
		{contrib.ErrUserNotFound, KindNotFound},
		{contrib.ErrNoToken, KindConfig},
		{context.DeadlineExceeded, KindCanceled},
		{output.ErrEncode, KindInternal},
		{errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.expected {
			t.Errorf("Classify(%v) = %s, expected %s", tt.err, got, tt.expected)
		}
	}
}

func TestKindString(t *testing.T) {
	for _, k := range []Kind{KindInternal, KindInvalid, KindNotFound, KindUpstream, KindConfig, KindCanceled} {
		if strings.TrimSpace(k.String()) == "" {
			t.Errorf("Kind(%d).String() is empty", k)
		}
	}
}
