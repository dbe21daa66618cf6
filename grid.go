package astar

import (
	"fmt"
	"math"
	"strings"
)

// CellState tags a grid cell. Start and Finish are markers owned by the
// caller; the search treats them as Free.
type CellState uint8

const (
	Free CellState = iota
	Wall
	Start
	Finish
)

var cellStateNames = [...]string{"free", "wall", "start", "finish"}

// Valid reports whether s is one of the recognized states.
func (s CellState) Valid() bool {
	return int(s) < len(cellStateNames)
}

func (s CellState) String() string {
	if s.Valid() {
		return cellStateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// ParseCellState maps a state name ("free", "wall", "start", "finish") back
// to its CellState.
func ParseCellState(name string) (CellState, error) {
	for i, n := range cellStateNames {
		if strings.EqualFold(n, name) {
			return CellState(i), nil
		}
	}
	return 0, fmt.Errorf("cell state %q: %w", name, ErrInvalidValue)
}

// GridView is the read-only surface the search consumes.
type GridView interface {
	Rows() int
	Cols() int
	// IsWalkable is false for out-of-bounds positions and walls.
	IsWalkable(row, col int) bool
}

// Grid is a rows×cols occupancy matrix stored row-major.
// A Grid is not safe for concurrent mutation; readers must not overlap a writer.
type Grid struct {
	rows  int
	cols  int
	cells []CellState
}

// MaxGridCells caps rows*cols for a single grid.
const MaxGridCells = 1 << 28

// NewGrid returns a grid with every cell Free.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 0 || cols < 0 ||
		(cols != 0 && rows > math.MaxInt/cols) ||
		rows*cols > MaxGridCells {
		return nil, &CellError{
			Op:   "grid.create",
			Kind: KindInvalidDimension,
			Row:  rows,
			Col:  cols,
			Err:  ErrInvalidDimension,
		}
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]CellState, rows*cols),
	}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) lies in [0,rows)×[0,cols).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// SetCell writes a cell state.
func (g *Grid) SetCell(row, col int, state CellState) error {
	if !g.InBounds(row, col) {
		return outOfBounds("grid.set_cell", row, col)
	}
	if !state.Valid() {
		return &CellError{
			Op:    "grid.set_cell",
			Kind:  KindInvalidValue,
			Row:   row,
			Col:   col,
			Value: state,
			Err:   ErrInvalidValue,
		}
	}
	g.cells[row*g.cols+col] = state
	return nil
}

// GetCell reads a cell state.
func (g *Grid) GetCell(row, col int) (CellState, error) {
	if !g.InBounds(row, col) {
		return 0, outOfBounds("grid.get_cell", row, col)
	}
	return g.cells[row*g.cols+col], nil
}

// IsWalkable is true iff (row, col) is in bounds and not a Wall.
func (g *Grid) IsWalkable(row, col int) bool {
	return g.InBounds(row, col) && g.cells[row*g.cols+col] != Wall
}

// Fill sets every cell to state.
func (g *Grid) Fill(state CellState) error {
	if !state.Valid() {
		return &CellError{Op: "grid.fill", Kind: KindInvalidValue, Value: state, Err: ErrInvalidValue}
	}
	for i := range g.cells {
		g.cells[i] = state
	}
	return nil
}

// Clone returns an independent copy, suitable as a snapshot for readers
// running while the original keeps changing.
func (g *Grid) Clone() *Grid {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Walls lists every Wall cell in row-major order.
func (g *Grid) Walls() []Coordinate {
	var walls []Coordinate
	for i, s := range g.cells {
		if s == Wall {
			walls = append(walls, Coordinate{X: i / g.cols, Y: i % g.cols})
		}
	}
	return walls
}
