package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/shooter.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when the embedded
// default cannot be parsed.
func Default() Config {
	return Config{
		Game: GameConfig{
			ShipSpeed:       0.5,
			BulletSpeed:     0.5,
			ShootCooldown:   4,
			ShipStartColumn: 25,
			ShipRow:         10,
			StarCount:       100,
			BulletExitRow:   -10,
			DefaultStrategy: "random",
		},
		Render: RenderConfig{
			CellSize: 12,
			Spacing:  3,
			Padding:  40,
			Palette: PaletteConfig{
				Levels:     []HexColor{"#0e4429", "#006d32", "#26a641", "#39d353"},
				Ship:       "#58a6ff",
				Bullet:     "#ffdf00",
				Background: "#0d1117",
			},
		},
		Animation: AnimationConfig{
			FPS:           25,
			MaxFrames:     5000,
			TailFrames:    30,
			Watermark:     true,
			WatermarkText: "gh-space-shooter",
		},
		Server: ServerConfig{
			HTTPAddr:     ":8000",
			SSHAddr:      ":23234",
			HostKeyPath:  ".ssh/shooter_host_ed25519",
			IdleTimeout:  10 * time.Minute,
			MaxTimeout:   30 * time.Minute,
			WriteTimeout: 2 * time.Minute,
			StreamWidth:  120,
		},
		GitHub: GitHubConfig{
			APIURL:   "https://api.github.com/graphql",
			TokenEnv: "GH_TOKEN",
			Timeout:  30 * time.Second,
			CacheTTL: time.Hour,
		},
		Storage: StorageConfig{
			Path: "~/.shooter/history.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
