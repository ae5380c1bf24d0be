package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

// laneHolder is implemented by games that sustain notes while a lane is held.
type laneHolder interface {
	LaneHeld(lane int) bool
}

// recorder is implemented by games whose runs can be stored as replays.
type recorder interface {
	Replay() storage.Replay
}

// Options are shared by local and remote sessions.
type Options struct {
	Settings config.RhythmConfig
	Preset   config.DifficultyPreset
	Store    *storage.Store // nil disables replay saving
	Logger   *log.Logger    // nil discards
}

// Model is the Bubble Tea model for playing a chart.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	opts        Options
	config      core.RuntimeConfig
	keys        *KeyMapper
	holds       *HoldTracker
	inputFrame  core.InputFrame
	gameState   core.GameState
	quitting    bool
	backToMenu  bool
	quitOnBack  bool // Standalone runs have no menu to go back to
	replaySaved bool // Whether the finished run has been stored
	savedID     int64
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 && opts.Settings.Timing.TickPeriodMS > 0 {
		cfg.TickRate = int(1000 / opts.Settings.Timing.TickPeriodMS)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(opts.Settings.Lanes.Keys),
		holds:      NewHoldTracker(opts.Settings.ReleaseGrace()),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		// The field scales to the screen, so a resize never restarts the song.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if lane, ok := m.keys.Lane(msg); ok {
		if m.holds.Key(lane, now, m.sustaining(lane)) {
			m.inputFrame.Set(core.LaneAction(lane))
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) sustaining(lane int) bool {
	if h, ok := m.game.(laneHolder); ok {
		return h.LaneHeld(lane)
	}
	return false
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.replaySaved = false
		m.holds.Reset()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	for _, lane := range m.holds.Expired(now) {
		m.inputFrame.Set(core.LiftAction(lane))
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.replaySaved {
		m.saveReplay()
		m.replaySaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveReplay stores the finished run. Failures are logged, never fatal.
func (m *Model) saveReplay() {
	rec, ok := m.game.(recorder)
	if !ok || m.opts.Store == nil {
		return
	}
	id, err := m.opts.Store.SaveReplay(rec.Replay())
	if err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("could not save replay", "game", m.game.ID(), "error", err)
		}
		return
	}
	m.savedID = id
	if m.opts.Logger != nil {
		m.opts.Logger.Debug("replay saved", "id", id, "score", m.gameState.Score)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".rhythm", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the chart menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// SavedReplay returns the id of the stored replay, or 0.
func (m Model) SavedReplay() int64 {
	return m.savedID
}

// Run plays game in the local terminal until the user quits or goes back.
// It reports whether the user asked to go back to the menu.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, opts, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu() && !fm.IsQuitting(), nil
	}
	return false, nil
}
