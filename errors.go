package pdfgrid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid configuration and per-file failure conditions.
var (
	ErrInvalidInterval = errors.New("pdfgrid: grid interval must be positive")
	ErrInvalidParam    = errors.New("pdfgrid: invalid parameter")
	ErrInvalidPage     = errors.New("pdfgrid: page dimensions must be positive")
	ErrInvalidImage    = errors.New("pdfgrid: image dimensions must be positive")
	ErrCorrupted       = errors.New("pdfgrid: document is corrupted")
	ErrNoPages         = errors.New("pdfgrid: document has no pages")
	ErrLogoMissing     = errors.New("pdfgrid: logo file not found")
)

// GridError represents an error that occurred during a specific grid operation.
// It wraps an underlying error and includes the operation name for context.
type GridError struct {
	Op  string // operation name, e.g. "Compute", "Validate"
	Err error  // underlying error
}

func (e *GridError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdfgrid.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pdfgrid.%s: unknown error", e.Op)
}

func (e *GridError) Unwrap() error {
	return e.Err
}

// NewGridError creates a new GridError wrapping err with operation context.
func NewGridError(op string, err error) *GridError {
	return &GridError{Op: op, Err: err}
}
