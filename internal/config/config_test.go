package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
	"github.com/vovakirdan/gh-space-shooter/internal/render"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) error = %v", err)
	}

	def := Default()
	if cfg.GameParams() != def.GameParams() {
		t.Errorf("embedded game params = %+v, expected %+v", cfg.GameParams(), def.GameParams())
	}
	if cfg.Animation != def.Animation {
		t.Errorf("embedded animation = %+v, expected %+v", cfg.Animation, def.Animation)
	}
	if cfg.Server != def.Server {
		t.Errorf("embedded server = %+v, expected %+v", cfg.Server, def.Server)
	}
	if cfg.GitHub != def.GitHub {
		t.Errorf("embedded github = %+v, expected %+v", cfg.GitHub, def.GitHub)
	}
	if cfg.Palette() != def.Palette() {
		t.Errorf("embedded palette differs from hardcoded one")
	}
}

func TestDefaultsAgreeWithPackages(t *testing.T) {
	cfg := Default()
	if cfg.GameParams() != game.DefaultParams() {
		t.Errorf("GameParams() = %+v, expected %+v", cfg.GameParams(), game.DefaultParams())
	}
	if cfg.Layout() != render.DefaultLayout() {
		t.Errorf("Layout() = %+v, expected %+v", cfg.Layout(), render.DefaultLayout())
	}
	if cfg.Palette() != render.DefaultPalette() {
		t.Errorf("Palette() = %+v, expected %+v", cfg.Palette(), render.DefaultPalette())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestParsePartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("animation:\n  fps: 10\nserver:\n  idle_timeout: 90s\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Animation.FPS != 10 {
		t.Errorf("FPS = %d, expected 10", cfg.Animation.FPS)
	}
	if cfg.Server.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v, expected 90s", cfg.Server.IdleTimeout)
	}
	if cfg.Game.ShipSpeed != 0.5 {
		t.Errorf("ShipSpeed = %v, expected default 0.5", cfg.Game.ShipSpeed)
	}
	if len(cfg.Render.Palette.Levels) != 4 {
		t.Errorf("len(Levels) = %d, expected 4", len(cfg.Render.Palette.Levels))
	}
}

func TestParseRejectsBadColour(t *testing.T) {
	_, err := Parse([]byte("render:\n  palette:\n    ship: \"#12\"\n"))
	if err == nil {
		t.Error("Parse() should reject an invalid hex colour")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero ship speed", func(c *Config) { c.Game.ShipSpeed = 0 }},
		{"zero cell size", func(c *Config) { c.Render.CellSize = 0 }},
		{"negative spacing", func(c *Config) { c.Render.Spacing = -1 }},
		{"three palette levels", func(c *Config) { c.Render.Palette.Levels = c.Render.Palette.Levels[:3] }},
		{"zero fps", func(c *Config) { c.Animation.FPS = 0 }},
		{"fps too high", func(c *Config) { c.Animation.FPS = 101 }},
		{"zero max frames", func(c *Config) { c.Animation.MaxFrames = 0 }},
		{"negative tail", func(c *Config) { c.Animation.TailFrames = -1 }},
		{"unknown default strategy", func(c *Config) { c.Game.DefaultStrategy = "colum" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	write := func(path, body string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Nothing on disk: embedded default.
	cfg, src, err := LoadWithSource("")
	if err != nil || src != "embedded" {
		t.Fatalf("LoadWithSource() = %q, %v, expected embedded", src, err)
	}
	if cfg.Animation.FPS != 25 {
		t.Errorf("FPS = %d, expected 25", cfg.Animation.FPS)
	}

	// Local configs directory.
	write(filepath.Join(work, "configs", FileName), "animation:\n  fps: 12\n")
	cfg, src, _ = LoadWithSource("")
	if src != filepath.Join("configs", FileName) || cfg.Animation.FPS != 12 {
		t.Errorf("LoadWithSource() = %q fps %d, expected local file fps 12", src, cfg.Animation.FPS)
	}

	// User config wins over local.
	userPath := filepath.Join(home, ".shooter", "config.yaml")
	write(userPath, "animation:\n  fps: 30\n")
	cfg, src, _ = LoadWithSource("")
	if src != userPath || cfg.Animation.FPS != 30 {
		t.Errorf("LoadWithSource() = %q fps %d, expected user file fps 30", src, cfg.Animation.FPS)
	}

	// Custom path wins over all.
	custom := filepath.Join(work, "custom.yaml")
	write(custom, "animation:\n  fps: 5\n")
	cfg, err = Load(custom)
	if err != nil || cfg.Animation.FPS != 5 {
		t.Errorf("Load(custom) fps = %d, err = %v, expected 5", cfg.Animation.FPS, err)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("game: [1, 2"), 0o644)
	_, err := Load(broken)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("Load(broken) error = %v, expected parse failure", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("animation:\n  fps: 0\n"), 0o644)
	if _, err := Load(invalid); err == nil {
		t.Error("Load() should reject an invalid configuration")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.shooter/history.db")
	if err != nil {
		t.Fatalf("ExpandHome() error = %v", err)
	}
	if got != filepath.Join(home, ".shooter", "history.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(abs) = %q, expected unchanged", got)
	}
}
