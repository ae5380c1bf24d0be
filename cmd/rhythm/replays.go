package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var (
	flagReplayLimit  int
	flagReplayDelete bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays <chart>",
	Short: "Show stored runs of a chart",
	Long: `Display the best stored runs of the specified chart. Replays keep
the inputs of a run, so every replay is re-simulated with the current
settings to produce its score.

Examples:
  rhythm replays etude
  rhythm replays etude --limit 50
  rhythm replays etude --delete`,
	Args: cobra.ExactArgs(1),
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplayLimit, "limit", 10, "Number of replays to show")
	replaysCmd.Flags().BoolVar(&flagReplayDelete, "delete", false, "Delete every replay of the chart")
}

func runReplays(_ *cobra.Command, args []string) {
	settings, _ := loadSettings()
	chart := loadChart(args[0])

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReplayDelete {
		n, err := store.DeleteReplays(chart.Hash())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting replays: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %d replays of %s\n", n, chart.Name)
		return
	}

	replays, err := store.Replays(chart.Hash(), 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}
	rows, stale := tui.RescoreAll(chart, settings, replays)
	if stale > 0 {
		logger.Warn("replays do not match the chart", "chart", chart.ID, "count", stale)
	}

	fmt.Printf("Replays - %s\n", chart.Name)
	fmt.Println()

	if len(rows) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rhythm play %s' to record the first run!\n", chart.ID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-5s  %-10s  %-6s  %-5s  %-6s  %s\n", "Rank", "ID", "Score", "Acc", "Combo", "Level", "Date")
	fmt.Printf("  %-4s  %-5s  %-10s  %-6s  %-5s  %-6s  %s\n", "----", "--", "-----", "---", "-----", "-----", "----")

	for i, row := range rows {
		if flagReplayLimit > 0 && i >= flagReplayLimit {
			break
		}
		s := row.Result.State
		fmt.Printf("  %-4d  %-5d  %-10.2f  %-6s  %-5d  %-6s  %s\n",
			i+1, row.Replay.ID, s.Score,
			fmt.Sprintf("%.1f%%", s.Accuracy()), s.HighestCombo,
			row.Replay.Preset, row.Replay.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %.2f\n", rows[0].Result.State.Score)
}
