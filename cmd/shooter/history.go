package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gh-space-shooter/internal/platform/tui"
	"github.com/vovakirdan/gh-space-shooter/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history [user]",
	Short: "Show recorded runs",
	Long: `Show the most recent runs, for every user or for one.

In a terminal the runs are shown in a scrollable table; --plain (or a
redirected output) prints them as text.

Examples:
  shooter history
  shooter history octocat --limit 50
  shooter history --plain`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print as text instead of a table")
}

func runHistory(_ *cobra.Command, args []string) {
	a := setup(true)
	defer a.close()
	if a.store == nil {
		fatalf("run history is not available")
	}

	var (
		runs  []storage.Run
		err   error
		title = "Recent runs"
		stats *storage.RunStats
	)
	if len(args) == 1 {
		title = fmt.Sprintf("Runs - %s", args[0])
		runs, err = a.store.RunsByUser(args[0], flagHistoryLimit)
		if err == nil {
			stats, err = a.store.UserStats(args[0])
		}
	} else {
		runs, err = a.store.RecentRuns(flagHistoryLimit)
	}
	if err != nil {
		fatalf("%v", err)
	}

	fd := int(os.Stdout.Fd())
	if !flagHistoryPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(title, runs, width, height); err != nil {
			fatalf("%v", err)
		}
		return
	}

	fmt.Println(title)
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'shooter render --sample 52' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-16s  %-8s  %-4s  %7s  %9s\n", "Date", "User", "Strategy", "Fmt", "Frames", "Destroyed")
	fmt.Printf("  %-16s  %-16s  %-8s  %-4s  %7s  %9s\n", "----", "----", "--------", "---", "------", "---------")

	for _, r := range runs {
		frames := fmt.Sprintf("%d", r.Frames)
		if r.Truncated {
			frames += "+"
		}
		fmt.Printf("  %-16s  %-16s  %-8s  %-4s  %7s  %9d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Username, r.Strategy, r.Format, frames, r.Destroyed)
	}

	if stats != nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Avg frames: %.0f  Longest: %d  Destroyed: %d\n",
			stats.Runs, stats.AvgFrames, stats.MaxFrames, stats.Destroyed)
	}
}
