package core

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by view and export operations before any
// spreadsheet has been ingested.
var ErrNoData = errors.New("no data uploaded")

// ParseError reports a spreadsheet that could not be read. Nothing was
// ingested and the current table is unchanged.
type ParseError struct {
	FileName string
	Err      error
}

func (e *ParseError) Error() string {
	if e.FileName == "" {
		return fmt.Sprintf("invalid spreadsheet: %v", e.Err)
	}
	return fmt.Sprintf("invalid spreadsheet %q: %v", e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError wraps err as a ParseError for fileName.
func NewParseError(fileName string, err error) *ParseError {
	return &ParseError{FileName: fileName, Err: err}
}

// IsParseError reports whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
