package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rhythm/internal/audio"
	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts"
	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var (
	flagAutoplay bool
	flagMute     bool
)

var playCmd = &cobra.Command{
	Use:   "play [chart]",
	Short: "Play a chart",
	Long: `Start playing the given chart. Without a chart, a menu lets you
pick one and return to it after each song.

Controls:
  A S K L      - Hit lanes 1-4 (hold the key on long notes)
  P/Space      - Pause
  R            - Restart (after the song ends)
  B/Esc        - Back to the menu (paused or after the song)
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot

Difficulty options:
  easy   - Wider timing windows, slower scroll
  normal - Configured values
  hard   - Narrower timing windows, faster scroll

Examples:
  rhythm play
  rhythm play etude
  rhythm play etude --difficulty hard
  rhythm play tutorial --autoplay
  rhythm play etude --config ./my-rhythm.yaml --mute`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Let the bot play the chart")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
}

func runPlay(_ *cobra.Command, args []string) {
	settings, preset := loadSettings()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: int(1000 / settings.Timing.TickPeriodMS),
		Seed:     flagSeed,
	}

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	player := openAudio(settings)

	opts := tui.Options{
		Settings: settings,
		Preset:   preset,
		Store:    store,
		Logger:   logger,
	}

	var runErr error
	if len(args) == 1 {
		_, runErr = playChart(loadChart(args[0]), opts, player, cfg)
	} else {
		runErr = menuLoop(loadCharts(), opts, player, cfg)
	}

	// Close resources before potential exit
	if player != nil {
		player.Close()
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openAudio starts the speaker unless audio is disabled.
func openAudio(settings config.RhythmConfig) *audio.Player {
	if flagMute || !settings.Audio.Enabled {
		return nil
	}
	player := audio.NewPlayer(settings.Audio.SampleRate, settings.Audio.Volume)
	if err := player.Init(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return nil
	}
	return player
}

// playChart runs one chart and reports whether the user went back to the menu.
func playChart(chart charts.Chart, opts tui.Options, player *audio.Player, cfg core.RuntimeConfig) (bool, error) {
	gameID := "rhythm"
	if flagAutoplay {
		gameID = "rhythm_autoplay"
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return false, fmt.Errorf("creating game: %w", err)
	}
	if rg, ok := game.(*rhythm.Game); ok {
		rg.Load(chart, opts.Settings, opts.Preset)
		if player != nil {
			rg.SetSink(player)
		}
	}

	logger.Debug("song started", "chart", chart.ID, "difficulty", opts.Preset, "autoplay", flagAutoplay)
	return tui.Run(game, opts, cfg)
}
