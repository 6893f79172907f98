package aggregate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn is matched by every *MissingColumnError
	ErrMissingColumn = errors.New("missing required column")
	// ErrNonNumeric is matched by every *ValueError
	ErrNonNumeric = errors.New("non-numeric value")
)

// MissingColumnError lists every required column absent from the header
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// ValueError reports a cell that could not be read as a finite number.
// Row is 1-based and counts data rows only.
type ValueError struct {
	Row    int
	Column string
	Value  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("row %d, column %s: non-numeric value %q", e.Row, e.Column, e.Value)
}

func (e *ValueError) Unwrap() error {
	return ErrNonNumeric
}
