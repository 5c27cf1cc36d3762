package csvimport

import (
	"errors"
	"fmt"
)

// Common import errors
var (
	// ErrEmptyFile is returned when the CSV input is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the input is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the CSV input has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")
)

// RowError records a failed import row. Row numbers are 1-indexed
// counting the header, so the first data row is row 2.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a new RowError
func NewRowError(row int, message string) RowError {
	return RowError{Row: row, Message: message}
}
