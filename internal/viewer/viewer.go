// Package viewer shows a rendered grid in a scrollable terminal view.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/UnknownOlympus/geosketch/internal/plotter"
)

const (
	headerHeight = 1
	footerHeight = 1
)

type Model struct {
	grid    *plotter.Grid
	content string

	vp    viewport.Model
	ready bool
}

func New(grid *plotter.Grid) Model {
	return Model{
		grid:    grid,
		content: strings.Join(grid.Lines(), "\n"),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h := max(1, msg.Height-headerHeight-footerHeight)
		if !m.ready {
			m.vp = viewport.New(msg.Width, h)
			m.vp.SetContent(gridStyle.Render(m.content))
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = h
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return ""
	}

	header := titleStyle.Render(fmt.Sprintf(" geosketch ─ %dx%d grid ", m.grid.Width, m.grid.Height))
	footer := dimStyle.Render(fmt.Sprintf(" %s │ %d points │ %d cells │ %3.f%%  q to quit",
		m.grid.Bounds.String(), m.grid.Points, m.grid.OccupiedCells(), m.vp.ScrollPercent()*100))

	return lipgloss.JoinVertical(lipgloss.Left, header, m.vp.View(), footer)
}

// Run shows grid on the alternate screen until the user quits.
func Run(grid *plotter.Grid, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(New(grid), opts...).Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}
