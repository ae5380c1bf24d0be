package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

// Replay board layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show chart list sidebar
	sidebarWidth       = 24 // Width of chart list sidebar
	maxReplays         = 50 // Max replays to load per chart
)

// ReplayBoardKeyMap defines the key bindings for the replay board.
type ReplayBoardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextChart key.Binding
	PrevChart key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextChart, k.PrevChart, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextChart, k.PrevChart},
		{k.Back, k.Quit},
	}
}

// DefaultReplayBoardKeyMap returns default key bindings.
func DefaultReplayBoardKeyMap() ReplayBoardKeyMap {
	return ReplayBoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev chart"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next chart"),
		),
		NextChart: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next chart"),
		),
		PrevChart: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev chart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayRow is one rescored replay.
type ReplayRow struct {
	Replay storage.Replay
	Result rhythm.Result
}

// ReplayBoardModel is the Bubble Tea model for the replay board.
// Stored replays hold inputs only; every row is rescored on load.
type ReplayBoardModel struct {
	charts      []charts.Chart
	chartCursor int
	settings    config.RhythmConfig
	store       *storage.Store
	rows        []ReplayRow
	stale       int // Replays recorded on another version of the chart
	table       table.Model
	help        help.Model
	keys        ReplayBoardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show chart list sidebar
}

// NewReplayBoardModel creates a new replay board.
func NewReplayBoardModel(list []charts.Chart, settings config.RhythmConfig, store *storage.Store, width, height int) ReplayBoardModel {
	h := help.New()
	h.ShowAll = false

	m := ReplayBoardModel{
		charts:      list,
		settings:    settings,
		store:       store,
		keys:        DefaultReplayBoardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.charts) > 0 {
		m.loadReplays()
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplayBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 9},
		{Title: "Acc", Width: 7},
		{Title: "Combo", Width: 6},
		{Title: "Level", Width: 7},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays loads and rescores the replays of the selected chart.
func (m *ReplayBoardModel) loadReplays() {
	m.rows, m.stale = nil, 0
	if m.store != nil {
		chart := m.charts[m.chartCursor]
		replays, err := m.store.Replays(chart.Hash(), maxReplays)
		if err == nil {
			m.rows, m.stale = RescoreAll(chart, m.settings, replays)
		}
	}
	m.updateTableRows()
}

// RescoreAll rescores replays of chart, best score first. Replays that no
// longer match the chart are counted and left out.
func RescoreAll(chart charts.Chart, settings config.RhythmConfig, replays []storage.Replay) (rows []ReplayRow, stale int) {
	for _, r := range replays {
		res, err := rhythm.Rescore(chart, settings, r)
		if err != nil {
			stale++
			continue
		}
		rows = append(rows, ReplayRow{Replay: r, Result: res})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Result.State.Score > rows[j].Result.State.Score
	})
	return rows, stale
}

// updateTableRows updates the table with current replays.
func (m *ReplayBoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		s := r.Result.State
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%.2f", s.Score),
			fmt.Sprintf("%.1f%%", s.Accuracy()),
			fmt.Sprintf("%d", s.HighestCombo),
			r.Replay.Preset,
			r.Replay.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the replay board.
func (m ReplayBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay board.
func (m ReplayBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextChart), key.Matches(msg, m.keys.Right):
			if len(m.charts) > 0 {
				m.chartCursor = (m.chartCursor + 1) % len(m.charts)
				m.loadReplays()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevChart), key.Matches(msg, m.keys.Left):
			if len(m.charts) > 0 {
				m.chartCursor--
				if m.chartCursor < 0 {
					m.chartCursor = len(m.charts) - 1
				}
				m.loadReplays()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay board.
func (m ReplayBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "REPLAYS"
	if len(m.charts) > 0 {
		title = fmt.Sprintf("REPLAYS - %s", m.charts[m.chartCursor].Name)
	}

	b.WriteString(centerText(titleStyle.Render(title), m.width, len([]rune(title))))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for chart selection.
func (m ReplayBoardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Charts\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, c := range m.charts {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.chartCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(c.Name, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the board with the current chart above the table.
func (m ReplayBoardModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.charts) > 0 {
		tab := fmt.Sprintf("< %s >", truncate(m.charts[m.chartCursor].Name, m.width-8))
		b.WriteString(centerText(tab, m.width, 0))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplayBoardModel) renderTableContent() string {
	note := ""
	if m.stale > 0 {
		note = fmt.Sprintf("\n%d replays belong to an older version of this chart.", m.stale)
	}
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No replays recorded yet.\nFinish a song to record one!" + note)
	}

	return m.table.View() + note
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplayBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBoardModel) IsQuitting() bool {
	return m.quitting
}

// RunReplayBoard runs the replay board screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunReplayBoard(list []charts.Chart, settings config.RhythmConfig, store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewReplayBoardModel(list, settings, store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ReplayBoardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
