// rhythm is a falling-note rhythm game for the terminal.
//
// Usage:
//
//	rhythm list                 - List charts and game modes
//	rhythm play [chart]         - Play a chart (menu when no chart is given)
//	rhythm charts convert <f>   - Convert a CSV or MIDI chart to YAML
//	rhythm simulate <chart>     - Run a chart headless and print the result
//	rhythm replays <chart>      - Show stored runs of a chart
//	rhythm serve                - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set replay database path (default: ~/.rhythm/replays.db)
//	--config <path>     - Use a custom rhythm.yaml
//	--charts <dir>      - Directory with extra charts (default: ~/.rhythm/charts)
//	--difficulty <name> - easy, normal or hard
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts"

	// Import the game to register it
	_ "github.com/vovakirdan/tui-rhythm/internal/games/rhythm"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagChartsDir  string
	flagDifficulty string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "rhythm",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rhythm",
	Short: "Rhythm - Hit falling notes in your terminal",
	Long: `Rhythm is a terminal rhythm game. Notes fall down four lanes and
are hit with A, S, K and L as they cross the hit line.

Available commands:
  list      - Show charts and game modes
  play      - Play a chart
  charts    - Inspect and convert chart files
  simulate  - Run a chart without a terminal
  replays   - View stored runs
  serve     - Start SSH server for remote play

Examples:
  rhythm list
  rhythm play etude
  rhythm play etude --difficulty hard
  rhythm simulate etude --seed 42
  rhythm serve --ssh :2222`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rhythm/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rhythm config YAML")
	rootCmd.PersistentFlags().StringVar(&flagChartsDir, "charts", "~/.rhythm/charts", "Directory with extra chart files")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadSettings loads the config file and the difficulty given on the command line.
// It exits when any difficulty preset would break the config.
func loadSettings() (config.RhythmConfig, config.DifficultyPreset) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// The menu can switch presets, so every one of them must work
	if err := config.CheckPresets(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg, preset
}

// chartLoader returns a loader over the --charts directory.
func chartLoader() *charts.Loader {
	loader := charts.NewLoader(expandHome(flagChartsDir))
	loader.Logger = logger
	return loader
}

// loadCharts loads every chart or exits.
func loadCharts() []charts.Chart {
	list, err := chartLoader().LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return list
}

// loadChart loads one chart or exits.
func loadChart(id string) charts.Chart {
	loader := chartLoader()
	chart, err := loader.LoadByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if ids, listErr := loader.ListIDs(); listErr == nil && len(ids) > 0 {
			fmt.Fprintf(os.Stderr, "Available charts: %s\n", strings.Join(ids, ", "))
		}
		os.Exit(1)
	}
	return chart
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
