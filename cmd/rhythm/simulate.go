package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm"
	engine "github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var (
	flagSimReplay  int64
	flagSimSave    bool
	flagSimEffects bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <chart>",
	Short: "Run a chart without a terminal",
	Long: `Runs a chart headless and prints the final score. By default the
autoplay bot plays; with --replay a stored run is re-simulated instead.
Runs with the same chart, seed, difficulty and inputs always end the same.

Examples:
  rhythm simulate etude
  rhythm simulate etude --seed 42 --difficulty hard
  rhythm simulate etude --replay 7
  rhythm simulate etude --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Int64Var(&flagSimReplay, "replay", 0, "Re-simulate the stored replay with this id")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the bot's run as a replay")
	simulateCmd.Flags().BoolVar(&flagSimEffects, "effects", false, "Count the audio effects of the run")
}

// effectCounter tallies effects by kind.
type effectCounter map[engine.EffectKind]int

func (c effectCounter) Handle(effects []engine.Effect) {
	for _, e := range effects {
		c[e.Kind]++
	}
}

func runSimulate(_ *cobra.Command, args []string) {
	settings, preset := loadSettings()
	chart := loadChart(args[0])

	counter := effectCounter{}
	var sink rhythm.EffectSink
	if flagSimEffects {
		sink = counter
	}

	var res rhythm.Result
	seed := uint64(flagSeed)
	if flagSimReplay != 0 {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		replay, err := store.ReplayByID(flagSimReplay)
		if err != nil || replay == nil {
			fmt.Fprintf(os.Stderr, "Error: replay %d not found\n", flagSimReplay)
			os.Exit(1)
		}
		if replay.ChartID != chart.ID {
			fmt.Fprintf(os.Stderr, "Error: replay %d belongs to chart %q\n", replay.ID, replay.ChartID)
			os.Exit(1)
		}
		res, err = rhythm.Rescore(chart, settings, *replay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if sink != nil {
			// Same run again, this time observed
			p, _ := config.ParsePreset(replay.Preset)
			res = rhythm.Simulate(chart, rhythm.SimulateOptions{
				Settings:  settings,
				Preset:    p,
				Seed:      replay.Seed,
				Inputs:    replay.Inputs,
				MaxFrames: replay.Frames,
				Sink:      sink,
			})
		}
		seed = replay.Seed
	} else {
		res = rhythm.Simulate(chart, rhythm.SimulateOptions{
			Settings: settings,
			Preset:   preset,
			Seed:     seed,
			Autoplay: true,
			Sink:     sink,
		})
	}

	s := res.State
	fmt.Printf("%s - seed %d\n", chart.Name, seed)
	fmt.Println()
	fmt.Printf("  Score     %.2f\n", s.Score)
	fmt.Printf("  Accuracy  %.1f%%\n", s.Accuracy())
	fmt.Printf("  Combo     %d (best %d)\n", s.Combo, s.HighestCombo)
	fmt.Printf("  Perfect   %d\n", s.Perfect)
	fmt.Printf("  Great     %d\n", s.Great)
	fmt.Printf("  Good      %d\n", s.Good)
	fmt.Printf("  Miss      %d\n", s.Miss)
	fmt.Printf("  Holds     %d\n", s.HoldsCompleted)
	fmt.Printf("  Frames    %d\n", res.Frames)
	if !s.GameEnded {
		fmt.Println("  (stopped before the song ended)")
	}

	if flagSimEffects {
		fmt.Println()
		fmt.Printf("  Play %d  Attack %d  Release %d  Remove %d\n",
			counter[engine.EffectPlay], counter[engine.EffectAttack],
			counter[engine.EffectRelease], counter[engine.EffectRemove])
	}

	if flagSimSave && flagSimReplay == 0 {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		id, err := store.SaveReplay(storage.Replay{
			ChartID:   chart.ID,
			ChartHash: chart.Hash(),
			Seed:      seed,
			Preset:    string(preset),
			Frames:    res.Frames,
			Inputs:    res.Inputs,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving replay: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
		fmt.Printf("Saved as replay %d\n", id)
	}
}
