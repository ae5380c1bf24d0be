package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.rhythm/host_key.
	HostKeyPath string

	// DBPath is the path to the replay database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Charts offered in every session.
	Charts []charts.Chart

	// Settings and Preset are the defaults of every session.
	Settings config.RhythmConfig
	Preset   config.DifficultyPreset

	// Logger receives server events. If nil, one is created on stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.rhythm/replays.db",
		IdleTimeout: 30 * time.Minute,
		Settings:    config.DefaultRhythmConfig(),
		Preset:      config.DifficultyNormal,
	}
}

// SSHServer wraps a Wish SSH server. Each connection gets its own session
// with its own game; only the replay store is shared.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rhythm-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".rhythm", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: tickRate(s.config.Settings),
		Seed:     time.Now().UnixNano(),
	}

	opts := Options{
		Settings: s.config.Settings,
		Preset:   s.config.Preset,
		Store:    s.store,
		Logger:   s.logger.With("user", sshSession.User()),
	}

	// Create session model that handles menu + game flow
	model := NewSessionModel(s.config.Charts, opts, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// tickRate runs the terminal loop at the engine's tick period.
func tickRate(settings config.RhythmConfig) int {
	if settings.Timing.TickPeriodMS <= 0 {
		return 100
	}
	return max(int(1000/settings.Timing.TickPeriodMS), 1)
}

// sessionScreen is what a session currently shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenReplays
)

// SessionModel manages the full session flow: menu -> game or replays -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	charts    []charts.Chart
	opts      Options
	config    core.RuntimeConfig
	screen    sessionScreen
	menu      MenuModel
	gameModel *Model
	replays   *ReplayBoardModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(list []charts.Chart, opts Options, cfg core.RuntimeConfig) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		charts: list,
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(list, opts.Preset, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenReplays:
		return m.updateReplays(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	// The menu quits its own program on these; the session replaces the
	// command so the connection stays open.
	case m.menu.WantsReplays():
		board := NewReplayBoardModel(m.charts, m.opts.Settings, m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.replays = &board
		m.screen = screenReplays
		return m, board.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().ChartID, m.menu.Preset())
	}

	return m, cmd
}

// startGame creates a fresh game for the chosen chart.
func (m SessionModel) startGame(chartID string, preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	var chart charts.Chart
	for _, c := range m.charts {
		if c.ID == chartID {
			chart = c
		}
	}

	game, err := registry.Create("rhythm")
	if err != nil {
		// Shouldn't happen since the rhythm package registers itself
		m.opts.Logger.Error("cannot create game", "error", err)
		return m, nil
	}
	if rg, ok := game.(*rhythm.Game); ok {
		rg.Load(chart, m.opts.Settings, preset)
	}
	m.opts.Logger.Info("song started", "chart", chart.ID, "difficulty", preset)

	m.config = m.menu.Config()
	gameModel := NewModel(game, m.opts, m.config)
	m.gameModel = &gameModel
	m.screen = screenGame

	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	// Check if user quit entirely
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if user went back to the menu
	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.charts, m.opts.Preset, m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateReplays handles updates when the replay board is open.
func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replays.Update(msg)
	if board, ok := newModel.(ReplayBoardModel); ok {
		m.replays = &board
	}

	switch {
	case m.replays.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.replays.IsGoingBack():
		m.replays = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.charts, m.opts.Preset, m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenReplays:
		return m.replays.View()
	}
	return m.menu.View()
}
