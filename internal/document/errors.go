package document

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates the input is not a single well-formed JSON value.
	ErrSyntax = errors.New("invalid JSON")

	// ErrNotFound indicates a file path does not resolve to an existing file.
	ErrNotFound = errors.New("file not found")

	// ErrRead indicates a file exists but could not be read or decompressed.
	ErrRead = errors.New("failed to read file")

	// ErrNotLoaded indicates no document is held by the store.
	ErrNotLoaded = errors.New("no JSON document loaded")
)

// ParseError describes where parsing stopped. Line and Column are 1-based.
type ParseError struct {
	Offset int64
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at line %d, column %d: %s", ErrSyntax, e.Line, e.Column, e.Msg)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

func newParseError(data []byte, offset int64, msg string) *ParseError {
	offset = min(max(offset, 0), int64(len(data)))

	consumed := data[:offset]
	line := bytes.Count(consumed, []byte{'\n'}) + 1
	column := len(consumed) - bytes.LastIndexByte(consumed, '\n')

	return &ParseError{
		Offset: offset,
		Line:   line,
		Column: column,
		Msg:    msg,
	}
}
