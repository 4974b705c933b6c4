package tui

import (
	"fmt"
	"image"
	"image/color"
	"iter"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gh-space-shooter/internal/core"
	"github.com/vovakirdan/gh-space-shooter/internal/render"
	"github.com/vovakirdan/gh-space-shooter/internal/service"
	"github.com/vovakirdan/gh-space-shooter/internal/strategy"
)

// chromeLines is the height taken by the status and help lines.
const chromeLines = 2

// SessionFunc prepares a fresh run for a strategy.
type SessionFunc func(strategy string) (*service.Session, error)

type playback struct {
	session *service.Session
	next    func() (*image.RGBA, bool)
	stop    func()
}

// Model is the Bubble Tea model that plays a run in the terminal.
type Model struct {
	newSession SessionFunc
	strategy   string
	config     core.RuntimeConfig

	play     *playback
	screen   *core.Screen
	scaler   *render.Downscaler
	renderer *ScreenRenderer
	status   lipgloss.Style
	errStyle lipgloss.Style
	errColor color.NRGBA
	help     help.Model
	keys     PlayerKeyMap

	frame    int
	paused   bool
	done     bool
	err      error
	quitting bool
}

// NewModel creates a player. The lipgloss renderer may be nil for the local terminal.
func NewModel(newSession SessionFunc, strategyName string, cfg core.RuntimeConfig, r *lipgloss.Renderer) Model {
	sr := NewScreenRenderer(r)
	h := help.New()
	h.ShowAll = false

	m := Model{
		newSession: newSession,
		strategy:   strategyName,
		config:     cfg,
		screen:     core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-chromeLines)),
		scaler:     &render.Downscaler{},
		renderer:   sr,
		status:     sr.renderer.NewStyle().Foreground(lipgloss.Color("#8b949e")),
		errStyle:   sr.renderer.NewStyle().Foreground(lipgloss.Color("#f85149")).Bold(true),
		errColor:   color.NRGBA{R: 0xf8, G: 0x51, B: 0x49, A: 0xff},
		help:       h,
		keys:       DefaultPlayerKeyMap(),
	}
	m.restart()
	return m
}

// restart stops the current run and prepares a new one.
func (m *Model) restart() {
	if m.play != nil {
		m.play.stop()
		m.play = nil
	}
	m.frame = 0
	m.done = false
	m.paused = false
	m.err = nil

	session, err := m.newSession(m.strategy)
	if err != nil {
		m.err = err
		m.done = true
		m.screen.Clear()
		m.screen.DrawTextCentered(m.screen.Height()/2, "no run to play", m.errColor)
		return
	}
	next, stop := iter.Pull(session.Animator.Frames())
	m.play = &playback{session: session, next: next, stop: stop}
	m.strategy = string(session.Strategy)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-chromeLines))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.advance()
		return m, tickCmd(m.config.FrameInterval())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.play != nil {
			m.play.stop()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		if !m.done {
			m.paused = !m.paused
		}
	case key.Matches(msg, m.keys.Replay):
		m.restart()
	case key.Matches(msg, m.keys.Strategy):
		m.strategy = nextStrategy(m.strategy)
		m.restart()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// advance pulls the next frame onto the screen.
func (m *Model) advance() {
	if m.paused || m.done || m.play == nil {
		return
	}
	frame, ok := m.play.next()
	if !ok {
		m.done = true
		m.err = m.play.session.Animator.Err()
		return
	}
	m.frame++
	m.scaler.ToScreen(frame, m.screen)
}

// nextStrategy cycles through the strategies in display order.
func nextStrategy(current string) string {
	names := strategy.Names()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// Frame returns the number of frames shown in the current run.
func (m Model) Frame() int {
	return m.frame
}

// Done reports whether the current run has ended.
func (m Model) Done() bool {
	return m.done
}

// Err returns the error that ended or prevented the current run.
func (m Model) Err() error {
	return m.err
}

func (m Model) statusLine() string {
	if m.play == nil {
		return m.errStyle.Render(fmt.Sprintf("error: %v", m.err))
	}
	s := m.play.session
	stats := s.Animator.Stats()
	parts := []string{
		s.Contributions.Username,
		string(s.Strategy),
		fmt.Sprintf("frame %d", m.frame),
		fmt.Sprintf("seed %d", s.Seed),
	}
	switch {
	case m.err != nil:
		return m.errStyle.Render(fmt.Sprintf("error: %v", m.err))
	case m.done:
		parts = append(parts, fmt.Sprintf("done: %d destroyed with %d shots", stats.Game.Destroyed, stats.Game.Shots))
	case m.paused:
		parts = append(parts, "paused")
	}
	return m.status.Render(strings.Join(parts, " | "))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderer.Render(m.screen) + "\n" + m.statusLine() + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program in the local terminal.
func Run(newSession SessionFunc, strategyName string, cfg core.RuntimeConfig) error {
	model := NewModel(newSession, strategyName, cfg, nil)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
