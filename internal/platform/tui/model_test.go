package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts"
	engine "github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

func testModel(t *testing.T, store *storage.Store) (Model, *rhythm.Game) {
	t.Helper()
	settings := config.DefaultRhythmConfig()
	settings.Timing.WarmupMS = 0

	g := rhythm.New()
	g.Load(charts.Chart{
		ID:    "short",
		Name:  "Short",
		Notes: []engine.Note{engine.NewNote(true, "piano", 1, 60, 0.1, 0.2)},
	}, settings, config.DifficultyNormal)

	m := NewModel(g, Options{Settings: settings, Store: store}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 100, Seed: 3})
	m.Init()
	return m, g
}

func step(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelPressAndLift(t *testing.T) {
	m, g := testModel(t, nil)
	now := time.Now()

	next, _ := m.handleKey(runeKey('a'), now)
	m = step(next.(Model), TickMsg(now))
	if got := g.Inputs(); len(got) != 1 || got[0].Lane != 0 || got[0].Release {
		t.Fatalf("Expected one press in lane 0, got %+v", got)
	}

	m = step(m, TickMsg(now.Add(time.Second)))
	got := g.Inputs()
	if len(got) != 2 || !got[1].Release {
		t.Errorf("Expected a lift after the release grace, got %+v", got)
	}
}

func TestModelResizeKeepsRunning(t *testing.T) {
	m, g := testModel(t, nil)
	now := time.Now()
	for i := 0; i < 5; i++ {
		m = step(m, TickMsg(now))
	}
	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = step(m, TickMsg(now))
	if g.Frames() != 6 {
		t.Errorf("Expected the run to continue after a resize, got %d frames", g.Frames())
	}
	if m.screen.Width() != 100 {
		t.Errorf("Expected the screen to be resized, got width %d", m.screen.Width())
	}
}

func TestModelSavesReplayOnce(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/replays.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, g := testModel(t, store)
	now := time.Now()
	for i := 0; i < 1000 && !m.gameState.GameOver; i++ {
		m = step(m, TickMsg(now))
	}
	if !m.gameState.GameOver {
		t.Fatal("Expected the song to end")
	}
	m = step(m, TickMsg(now))

	chart := g.Chart()
	replays, err := store.Replays(chart.Hash(), 0)
	if err != nil {
		t.Fatalf("Replays() failed: %v", err)
	}
	if len(replays) != 1 {
		t.Fatalf("Expected exactly one saved replay, got %d", len(replays))
	}
	if m.SavedReplay() != replays[0].ID {
		t.Errorf("Expected saved id %d, got %d", replays[0].ID, m.SavedReplay())
	}

	rows, stale := RescoreAll(chart, m.opts.Settings, replays)
	if stale != 0 || len(rows) != 1 {
		t.Errorf("Expected one rescored row, got %d rows and %d stale", len(rows), stale)
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	m, _ := testModel(t, nil)
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	m = step(m, esc)
	if m.BackToMenu() {
		t.Error("Back must not leave a running song")
	}

	m = step(m, runeKey('p'))
	m = step(m, TickMsg(time.Now()))
	m = step(m, esc)
	if !m.BackToMenu() {
		t.Error("Expected back to work while paused")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 1, 'x', core.ColorBrightRed)

	out := RenderScreen(s)
	if len(out) == 0 || out[:4] != "ab  " {
		t.Errorf("Expected plain text to pass through unstyled, got %q", out)
	}
}
