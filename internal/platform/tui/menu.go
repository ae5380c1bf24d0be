package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts"
)

// MenuItem represents a selectable chart in the menu.
type MenuItem struct {
	ChartID  string
	Title    string
	Artist   string
	Notes    int // Player notes
	Duration float64
}

// MenuModel is the Bubble Tea model for the chart picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	presets     []config.DifficultyPreset
	preset      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem // Set when user selects a chart
	openReplays bool      // True if user pressed Tab for replays
}

// NewMenuModel creates a new menu over the given charts.
func NewMenuModel(list []charts.Chart, preset config.DifficultyPreset, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(list))
	for _, c := range list {
		items = append(items, MenuItem{
			ChartID:  c.ID,
			Title:    c.Name,
			Artist:   c.Artist,
			Notes:    c.PlayerNotes(),
			Duration: c.Duration(),
		})
	}

	presets := config.Presets()
	current := 0
	for i, p := range presets {
		if p == preset {
			current = i
		}
	}

	return MenuModel{
		items:     items,
		presets:   presets,
		preset:    current,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(nil),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.preset > 0 {
			m.preset--
		}

	case MenuActionRight:
		if m.preset < len(m.presets)-1 {
			m.preset++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the chart
		}

	case MenuActionReplays:
		m.openReplays = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  R H Y T H M  "), m.width, 15))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a chart", m.width, 0))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(menuDimStyle.Render("No charts found"), m.width, 15))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		line := fmt.Sprintf("%s  %s  %d notes", item.Title, formatDuration(item.Duration), item.Notes)
		if item.Artist != "" {
			line = fmt.Sprintf("%s - %s", item.Title, item.Artist) + line[len(item.Title):]
		}
		if i == m.cursor {
			b.WriteString(centerText(menuCursorStyle.Render("> "+line), m.width, len([]rune(line))+2))
		} else {
			b.WriteString(centerText("  "+line, m.width, 0))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", m.Preset()), m.width, 0))
	b.WriteString("\n\n")

	controls := "Up/Down: Chart  |  Left/Right: Difficulty  |  Enter: Play  |  Tab: Replays  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width, len(controls)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Preset returns the difficulty currently shown.
func (m MenuModel) Preset() config.DifficultyPreset {
	return m.presets[m.preset]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsReplays returns true if user requested the replay board.
func (m MenuModel) WantsReplays() bool {
	return m.openReplays
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width. visible is the printed length of
// text when it carries escape sequences; 0 means len(text).
func centerText(text string, width, visible int) string {
	if visible == 0 {
		visible = len([]rune(text))
	}
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}

// formatDuration prints seconds as m:ss.
func formatDuration(seconds float64) string {
	s := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	ChartID      string
	Preset       config.DifficultyPreset
	Config       core.RuntimeConfig
	WantsReplays bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(list []charts.Chart, preset config.DifficultyPreset, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(list, preset, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Preset: preset}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Preset: preset, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
		Preset: m.Preset(),
	}

	switch {
	case m.WantsReplays():
		result.WantsReplays = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.ChartID = m.Selected().ChartID
	}

	return result, nil
}
