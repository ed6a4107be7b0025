package plotter

import "strings"

const (
	markSet   = '*'
	markUnset = ' '
)

// Grid is a Height x Width matrix of cells, row 0 at the top.
type Grid struct {
	Width  int  // Number of columns
	Height int  // Number of rows
	Bounds BBox // Bounding box the points were scaled to
	Points int  // Number of points rendered

	cells    [][]bool
	occupied int
}

func newGrid(width, height int) *Grid {
	cells := make([][]bool, height)
	for y := range cells {
		cells[y] = make([]bool, width)
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

func (g *Grid) set(x, y int) {
	if !g.cells[y][x] {
		g.cells[y][x] = true
		g.occupied++
	}
}

// Occupied reports whether the cell at column x, row y holds at least one point.
// Coordinates outside the grid are never occupied.
func (g *Grid) Occupied(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.cells[y][x]
}

// OccupiedCells returns the number of cells holding at least one point.
func (g *Grid) OccupiedCells() int {
	return g.occupied
}

// Lines renders each row as Width characters, '*' for occupied cells.
func (g *Grid) Lines() []string {
	out := make([]string, g.Height)
	var line strings.Builder
	for y, row := range g.cells {
		line.Reset()
		line.Grow(g.Width)
		for _, set := range row {
			if set {
				line.WriteByte(markSet)
			} else {
				line.WriteByte(markUnset)
			}
		}
		out[y] = line.String()
	}
	return out
}
