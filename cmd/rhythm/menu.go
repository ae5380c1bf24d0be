package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/audio"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts"
	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
)

// menuLoop shows the chart picker until the user quits.
// After a song ends, the user returns to the menu to play again.
func menuLoop(list []charts.Chart, opts tui.Options, player *audio.Player, cfg core.RuntimeConfig) error {
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(list, opts.Preset, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config
		opts.Preset = menuResult.Preset

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsReplays {
			goBack, boardErr := tui.RunReplayBoard(list, opts.Settings, opts.Store, cfg.ScreenW, cfg.ScreenH)
			if boardErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", boardErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from the replay board
		}

		var chart *charts.Chart
		for i := range list {
			if list[i].ID == menuResult.ChartID {
				chart = &list[i]
			}
		}
		if chart == nil {
			return nil
		}

		// Fresh seed for each song unless one was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := playChart(*chart, opts, player, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			return nil
		}
	}
}
