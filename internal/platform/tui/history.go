package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gh-space-shooter/internal/storage"
)

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	title  string
	runs   []storage.Run
	table  table.Model
	help   help.Model
	keys   HistoryKeyMap
	width  int
	height int

	quitting bool
}

// NewHistoryModel creates a browser over already loaded runs.
func NewHistoryModel(title string, runs []storage.Run, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		title:  title,
		runs:   runs,
		help:   h,
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.table.SetRows(RunRows(runs))
	return m
}

// HistoryColumns are the table columns for runs.
func HistoryColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 14},
		{Title: "User", Width: 16},
		{Title: "Strategy", Width: 8},
		{Title: "Fmt", Width: 4},
		{Title: "Frames", Width: 7},
		{Title: "Destroyed", Width: 9},
		{Title: "Seed", Width: 20},
	}
}

// RunRows formats runs as table rows.
func RunRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		frames := fmt.Sprintf("%d", r.Frames)
		if r.Truncated {
			frames += "+"
		}
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Username,
			r.Strategy,
			r.Format,
			frames,
			fmt.Sprintf("%d", r.Destroyed),
			fmt.Sprintf("%d", r.Seed),
		}
	}
	return rows
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(HistoryColumns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-6)), // Leave room for title and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(RunRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#39d353"))
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No runs recorded yet.\nRender an animation to start the history!")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunHistory runs the history browser in the local terminal.
func RunHistory(title string, runs []storage.Run, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(title, runs, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
