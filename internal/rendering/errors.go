// Package rendering formats coordinate vectors as XYZ text and reads and writes XYZ files.
package rendering

import "fmt"

// RenderError represents a failure writing or reading rendered output
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
