// Package geometry holds the interval and coordinate types shared by the parsing,
// averaging and rendering stages, together with the error taxonomy they report.
package geometry

import "fmt"

// FormatError represents malformed results text: a missing or repeated section marker,
// broken interval syntax or an unparseable numeric token.
type FormatError struct {
	Message string
	Line    int // 1-based solution line, 0 when unknown
	Cause   error
}

func (e *FormatError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("format error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("format error: %s", msg)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// EmptyInputError is returned when an aggregate is requested over zero solutions.
type EmptyInputError struct {
	Message string
}

func (e *EmptyInputError) Error() string {
	if e.Message == "" {
		return "empty input: no solutions to average"
	}
	return fmt.Sprintf("empty input: %s", e.Message)
}

// ShapeMismatchError represents vectors of differing arity, or a coordinate vector
// whose length does not split into whole atoms.
type ShapeMismatchError struct {
	Message  string
	Index    int // offending vector or atom, -1 when not applicable
	Expected int
	Got      int
}

func (e *ShapeMismatchError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("shape mismatch at index %d: %s (expected %d, got %d)", e.Index, e.Message, e.Expected, e.Got)
	}
	return fmt.Sprintf("shape mismatch: %s (expected %d, got %d)", e.Message, e.Expected, e.Got)
}
