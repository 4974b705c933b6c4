package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gh-space-shooter/internal/core"
	"github.com/vovakirdan/gh-space-shooter/internal/platform/tui"
	"github.com/vovakirdan/gh-space-shooter/internal/service"
)

var (
	watchSource    sourceFlags
	flagWatchStrat string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Play an animation in the terminal",
	Long: `Play a run in the terminal using half-block characters.

Controls:
  Space/P    - Pause
  R          - Replay
  S/Tab      - Next strategy
  Q/Ctrl+C   - Quit

Examples:
  shooter watch --user octocat
  shooter watch --sample 52 --strategy row
  shooter watch --input grid.yaml --seed 7`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSource.user, "user", "u", "", "GitHub username")
	watchCmd.Flags().StringVarP(&watchSource.input, "input", "i", "", "Grid file (YAML or JSON)")
	watchCmd.Flags().IntVar(&watchSource.sample, "sample", 0, "Generate a sample grid with this many weeks")
	watchCmd.Flags().StringVarP(&flagWatchStrat, "strategy", "s", "", "Targeting strategy (default from config)")
}

func runWatch(_ *cobra.Command, _ []string) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fatalf("watch needs a terminal; use 'shooter render' to write a file")
	}

	a := setup(false)
	req, err := watchSource.resolve()
	if err != nil {
		fatalf("%v", err)
	}

	// Get terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.Animation.FPS,
		Seed:     req.Seed,
	}

	gen := a.generator()
	if req.Grid == nil {
		// Fetch once so replays do not hit the API again.
		c, err := gen.Grid(context.Background(), req.Username)
		if err != nil {
			fatalf("%v (%s)", err, service.Classify(err))
		}
		req.Grid = &c
	}

	factory := func(strategyName string) (*service.Session, error) {
		r := req
		r.Strategy = strategyName
		return gen.NewSession(context.Background(), r)
	}

	// Silence logs while the alternate screen is up.
	a.logger.SetOutput(io.Discard)
	if err := tui.Run(factory, flagWatchStrat, cfg); err != nil {
		fatalf("%v", err)
	}
}
