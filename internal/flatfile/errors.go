package flatfile

import (
	"errors"
	"fmt"
)

// Sentinel errors for flat-file reads.
var (
	// ErrFileNotFound indicates the data file doesn't exist
	ErrFileNotFound = errors.New("file not found")

	// ErrEmptyFile indicates the file has no content
	ErrEmptyFile = errors.New("empty file")

	// ErrNoHeader indicates no usable header row was found
	ErrNoHeader = errors.New("missing header row")

	// ErrInvalidEncoding indicates a cell is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")
)

// ParseError wraps a parser failure with file and line context.
type ParseError struct {
	// Op is the operation that failed
	Op string

	// File is the base name of the file being read
	File string

	// Line is the 1-indexed line where the error occurred
	Line int

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %v", e.Op, e.File, e.Line, e.Err)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.File, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(op, file string, line int, err error) *ParseError {
	return &ParseError{Op: op, File: file, Line: line, Err: err}
}
