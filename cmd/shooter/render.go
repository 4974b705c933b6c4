package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gh-space-shooter/internal/output"
	"github.com/vovakirdan/gh-space-shooter/internal/service"
)

var (
	renderSource      sourceFlags
	flagOut           string
	flagStrategy      string
	flagFormat        string
	flagNoWatermark   bool
	flagRenderTimeout time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an animation to a file",
	Long: `Simulate the ship clearing a contribution grid and encode the run.

The grid comes from GitHub (--user, needs a token in GH_TOKEN), from a
YAML or JSON grid file (--input), or is generated (--sample <weeks>).
The format follows --format, or the --out extension, defaulting to gif.

Examples:
  shooter render --user octocat
  shooter render --user octocat --out sky.gif --strategy column
  shooter render --input grid.yaml --format png --seed 42
  shooter render --sample 52 --out sample.gif`,
	Run: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderSource.user, "user", "u", "", "GitHub username")
	renderCmd.Flags().StringVarP(&renderSource.input, "input", "i", "", "Grid file (YAML or JSON)")
	renderCmd.Flags().IntVar(&renderSource.sample, "sample", 0, "Generate a sample grid with this many weeks")
	renderCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default <user>-space-shooter.<ext>)")
	renderCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "", "Targeting strategy (default from config)")
	renderCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "Output format: gif, png")
	renderCmd.Flags().BoolVar(&flagNoWatermark, "no-watermark", false, "Leave the watermark out")
	renderCmd.Flags().DurationVar(&flagRenderTimeout, "timeout", 5*time.Minute, "Give up after this long (0 = never)")
}

func runRender(_ *cobra.Command, _ []string) {
	a := setup(true)
	defer a.close()

	if flagNoWatermark {
		a.cfg.Animation.Watermark = false
	}

	req, err := renderSource.resolve()
	if err != nil {
		fatalf("%v", err)
	}
	req.Strategy = flagStrategy
	req.Format = flagFormat
	if req.Format == "" && flagOut != "" {
		req.Format = output.FormatFromPath(flagOut)
	}

	ctx, cancel := timeoutContext(flagRenderTimeout)
	defer cancel()

	res, err := a.generator().Generate(ctx, req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			fatalf("render timed out after %s", flagRenderTimeout)
		}
		fatalf("%v (%s)", err, service.Classify(err))
	}

	path := flagOut
	if path == "" {
		path = res.Filename
	}
	if err := os.WriteFile(path, res.Payload, 0o644); err != nil {
		fatalf("cannot write %s: %v", path, err)
	}

	fmt.Printf("Wrote %s (%d frames, %d bytes, seed %d)\n", path, res.Stats.Frames, len(res.Payload), res.Seed)
	if res.Stats.Truncated {
		fmt.Printf("Note: stopped at the %d frame limit before the grid was cleared\n", a.cfg.Animation.MaxFrames)
	}
}
