package plotter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var frameStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder())

// WriteOptions controls how a grid is printed.
type WriteOptions struct {
	Frame bool // Frame draws a border around the grid
}

// Write prints the bounding box, the grid rows and a trailing count of
// rendered points.
func Write(w io.Writer, grid *Grid, opts WriteOptions) error {
	lines := grid.Lines()
	body := strings.Join(lines, "\n")
	if opts.Frame {
		body = frameStyle.Render(body)
	}

	if _, err := fmt.Fprintln(w, grid.Bounds.String()); err != nil {
		return fmt.Errorf("failed to write bounds: %w", err)
	}
	if _, err := fmt.Fprintln(w, body); err != nil {
		return fmt.Errorf("failed to write grid: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Total geo locations rendered: %d\n", grid.Points); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	return nil
}
