// shooter turns a GitHub contribution graph into an animated space shooter.
//
// Usage:
//
//	shooter render --user <login>   - Render an animation to a GIF or PNG
//	shooter watch --user <login>    - Play the animation in the terminal
//	shooter serve                   - Start the HTTP API and SSH viewer
//	shooter strategies              - List targeting strategies
//	shooter history [user]          - Show recorded runs
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.shooter/config.yaml, ./configs/shooter.yaml)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Run history database (default from config)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shooter",
	Short: "GitHub Space Shooter - shoot down your contribution graph",
	Long: `GitHub Space Shooter turns a contribution graph into a space shooter:
a ship sweeps the grid and shoots every contribution down, and the run
is rendered as an animation.

Available commands:
  render      - Render an animation to a file
  watch       - Play an animation in the terminal
  serve       - Start the HTTP API and SSH viewer
  strategies  - List targeting strategies
  history     - Show recorded runs

Examples:
  shooter render --user octocat --out octocat.gif
  shooter render --input grid.yaml --strategy row --format png
  shooter watch --sample
  shooter serve --http :8000 --ssh :23234
  shooter history octocat`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(strategiesCmd)
	rootCmd.AddCommand(historyCmd)
}
