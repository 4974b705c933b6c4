package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gh-space-shooter/internal/core"
	"github.com/vovakirdan/gh-space-shooter/internal/render"
)

type colorPair struct {
	fg, bg color.NRGBA
}

// ScreenRenderer converts Screen buffers to styled strings. Styles are
// cached per colour pair, since frames reuse a small palette.
type ScreenRenderer struct {
	renderer *lipgloss.Renderer
	styles   map[colorPair]lipgloss.Style
}

// NewScreenRenderer creates a renderer for the given lipgloss output.
// A nil renderer uses the process terminal.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{renderer: r, styles: make(map[colorPair]lipgloss.Style)}
}

func (sr *ScreenRenderer) style(p colorPair) lipgloss.Style {
	if st, ok := sr.styles[p]; ok {
		return st
	}
	st := sr.renderer.NewStyle()
	if p.fg.A != 0 {
		st = st.Foreground(lipgloss.Color(render.Hex(p.fg)))
	}
	if p.bg.A != 0 {
		st = st.Background(lipgloss.Color(render.Hex(p.bg)))
	}
	sr.styles[p] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*8 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.Get(x, y)
			pair := colorPair{cell.FG, cell.BG}

			var run strings.Builder
			for x < s.Width() {
				cell = s.Get(x, y)
				if (colorPair{cell.FG, cell.BG}) != pair {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if pair.fg.A == 0 && pair.bg.A == 0 {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(sr.style(pair).Render(run.String()))
		}
	}
	return sb.String()
}
