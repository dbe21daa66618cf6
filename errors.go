package astar

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid operations.
var (
	ErrOutOfBounds      = errors.New("cell out of bounds")
	ErrInvalidDimension = errors.New("invalid grid dimension")
	ErrInvalidValue     = errors.New("invalid cell value")
)

// ErrorKind is a coarse-grained categorization for grid errors.
type ErrorKind string

const (
	KindOutOfBounds      ErrorKind = "out_of_bounds"
	KindInvalidDimension ErrorKind = "invalid_dimension"
	KindInvalidValue     ErrorKind = "invalid_value"
)

// CellError wraps one of the sentinel errors with the operation and the
// offending position or value.
type CellError struct {
	Op    string
	Kind  ErrorKind
	Row   int
	Col   int
	Value CellState
	Err   error
}

func (e *CellError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var detail string
	switch e.Kind {
	case KindInvalidDimension:
		detail = fmt.Sprintf(" (rows=%d cols=%d)", e.Row, e.Col)
	case KindInvalidValue:
		detail = fmt.Sprintf(" (row=%d col=%d value=%d)", e.Row, e.Col, uint8(e.Value))
	default:
		detail = fmt.Sprintf(" (row=%d col=%d)", e.Row, e.Col)
	}
	base := fmt.Sprintf("%s: %s%s", e.Op, e.Kind, detail)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *CellError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries a CellError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CellError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

func outOfBounds(op string, row, col int) error {
	return &CellError{Op: op, Kind: KindOutOfBounds, Row: row, Col: col, Err: ErrOutOfBounds}
}
