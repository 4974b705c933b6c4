// Package config provides YAML-based configuration loading for the
// renderer, the simulation rules and the serving surfaces.
package config

import (
	"fmt"
	"image/color"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
	"github.com/vovakirdan/gh-space-shooter/internal/render"
	"github.com/vovakirdan/gh-space-shooter/internal/strategy"
)

// Config is the complete application configuration.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	Render    RenderConfig    `yaml:"render"`
	Animation AnimationConfig `yaml:"animation"`
	Server    ServerConfig    `yaml:"server"`
	GitHub    GitHubConfig    `yaml:"github"`
	Storage   StorageConfig   `yaml:"storage"`
}

// GameConfig defines the simulation rules.
type GameConfig struct {
	ShipSpeed       float64 `yaml:"ship_speed"`
	BulletSpeed     float64 `yaml:"bullet_speed"`
	ShootCooldown   int     `yaml:"shoot_cooldown"`
	ShipStartColumn int     `yaml:"ship_start_column"`
	ShipRow         int     `yaml:"ship_row"`
	StarCount       int     `yaml:"star_count"`
	BulletExitRow   float64 `yaml:"bullet_exit_row"`
	DefaultStrategy string  `yaml:"default_strategy"`
}

// RenderConfig defines the frame geometry and colours.
type RenderConfig struct {
	CellSize int           `yaml:"cell_size"`
	Spacing  int           `yaml:"spacing"`
	Padding  int           `yaml:"padding"`
	Palette  PaletteConfig `yaml:"palette"`
}

// PaletteConfig lists colours as "#rrggbb" strings.
type PaletteConfig struct {
	Levels     []HexColor `yaml:"levels"` // Enemy colour by health 1..4
	Ship       HexColor   `yaml:"ship"`
	Bullet     HexColor   `yaml:"bullet"`
	Background HexColor   `yaml:"background"`
}

// AnimationConfig defines the frame driver and encoder settings.
type AnimationConfig struct {
	FPS           int    `yaml:"fps"`
	MaxFrames     int    `yaml:"max_frames"`  // Hard bound on produced frames
	TailFrames    int    `yaml:"tail_frames"` // Extra frames after the last enemy falls
	Watermark     bool   `yaml:"watermark"`
	WatermarkText string `yaml:"watermark_text"`
}

// ServerConfig defines the HTTP and SSH surfaces.
type ServerConfig struct {
	HTTPAddr     string        `yaml:"http_addr"`
	SSHAddr      string        `yaml:"ssh_addr"`
	HostKeyPath  string        `yaml:"host_key_path"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	MaxTimeout   time.Duration `yaml:"max_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	StreamWidth  int           `yaml:"stream_width"` // Characters per row of the websocket stream
}

// GitHubConfig defines the contribution API client.
type GitHubConfig struct {
	APIURL   string        `yaml:"api_url"`
	TokenEnv string        `yaml:"token_env"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"` // 0 disables the grid cache
}

// StorageConfig defines the run history database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// HexColor is a colour written as "#rrggbb" in YAML.
type HexColor string

// UnmarshalYAML validates the colour while decoding.
func (h *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if _, err := render.ParseHex(s); err != nil {
		return err
	}
	*h = HexColor(s)
	return nil
}

// NRGBA returns the parsed colour. Invalid values decode as transparent black.
func (h HexColor) NRGBA() color.NRGBA {
	c, _ := render.ParseHex(string(h))
	return c
}

// GameParams converts the game section to simulation rules.
func (c Config) GameParams() game.Params {
	return game.Params{
		ShipSpeed:       c.Game.ShipSpeed,
		BulletSpeed:     c.Game.BulletSpeed,
		ShootCooldown:   c.Game.ShootCooldown,
		ShipStartColumn: c.Game.ShipStartColumn,
		ShipRow:         c.Game.ShipRow,
		StarCount:       c.Game.StarCount,
		BulletExitRow:   c.Game.BulletExitRow,
	}
}

// Layout returns the render geometry.
func (c Config) Layout() render.Layout {
	return render.Layout{
		CellSize: c.Render.CellSize,
		Spacing:  c.Render.Spacing,
		Padding:  c.Render.Padding,
	}
}

// Palette returns the render colours.
func (c Config) Palette() render.Palette {
	p := render.Palette{
		Ship:       c.Render.Palette.Ship.NRGBA(),
		Bullet:     c.Render.Palette.Bullet.NRGBA(),
		Background: c.Render.Palette.Background.NRGBA(),
	}
	for i := range p.Levels {
		if i < len(c.Render.Palette.Levels) {
			p.Levels[i] = c.Render.Palette.Levels[i].NRGBA()
		}
	}
	return p
}

// Validate reports the first setting that cannot produce a run.
func (c Config) Validate() error {
	if err := c.GameParams().Validate(); err != nil {
		return fmt.Errorf("config: game: %w", err)
	}
	if _, err := strategy.Parse(c.Game.DefaultStrategy); err != nil {
		return fmt.Errorf("config: game: default_strategy: %w", err)
	}
	if c.Render.CellSize <= 0 {
		return fmt.Errorf("config: render: cell_size must be positive, got %d", c.Render.CellSize)
	}
	if c.Render.Spacing < 0 || c.Render.Padding < 0 {
		return fmt.Errorf("config: render: spacing and padding must not be negative")
	}
	if n := len(c.Render.Palette.Levels); n != 4 {
		return fmt.Errorf("config: render: palette needs 4 levels, got %d", n)
	}
	if c.Animation.FPS <= 0 || c.Animation.FPS > 100 {
		return fmt.Errorf("config: animation: fps must be in 1..100, got %d", c.Animation.FPS)
	}
	if c.Animation.MaxFrames <= 0 {
		return fmt.Errorf("config: animation: max_frames must be positive, got %d", c.Animation.MaxFrames)
	}
	if c.Animation.TailFrames < 0 {
		return fmt.Errorf("config: animation: tail_frames must not be negative, got %d", c.Animation.TailFrames)
	}
	if c.Server.StreamWidth < 0 {
		return fmt.Errorf("config: server: stream_width must not be negative, got %d", c.Server.StreamWidth)
	}
	return nil
}
