package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyResult is returned by searches that match nothing.
	ErrEmptyResult = errors.New("empty search result")

	// ErrEmptyExport is returned when exporting a table without records.
	ErrEmptyExport = errors.New("empty export: no records")

	// ErrZeroWeight is returned when a row's weight parses to zero.
	ErrZeroWeight = errors.New("zero weight: division by zero")

	// ErrInvalidEncoding is returned for files that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("encoding error: file is not valid UTF-8")
)

// MissingColumnError reports a file lacking one or more canonical columns.
type MissingColumnError struct {
	File    string
	Missing []Field
}

func (e *MissingColumnError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s: missing required column: %s", e.File, strings.Join(names, ", "))
}

// FileError reports any other failure while reading or parsing a file.
type FileError struct {
	File string
	Line int // 0 when the failure is not tied to a line
	Err  error
}

func (e *FileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsMissingColumn reports whether err is (or wraps) a MissingColumnError.
func IsMissingColumn(err error) bool {
	var mce *MissingColumnError
	return errors.As(err, &mce)
}
