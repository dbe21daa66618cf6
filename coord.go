package astar

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate identifies a grid cell. X indexes rows, Y indexes columns.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// offsets lists the 4-connected moves in expansion order: right, left, down, up.
var offsets = [4]Coordinate{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Add returns the coordinate shifted by d.
func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ParseCoordinate reads a "row,col" pair.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("coordinate %q: want row,col", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coordinate{}, fmt.Errorf("coordinate %q: row: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coordinate{}, fmt.Errorf("coordinate %q: col: %w", s, err)
	}
	return Coordinate{X: x, Y: y}, nil
}

// Manhattan is the search heuristic. It never overestimates on a
// 4-connected unit-cost grid.
func Manhattan(from, to Coordinate) int {
	return abs(from.X-to.X) + abs(from.Y-to.Y)
}

// Adjacent reports whether a and b differ by one step along exactly one axis.
func Adjacent(a, b Coordinate) bool {
	return Manhattan(a, b) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
