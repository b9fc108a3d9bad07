package query

import "errors"

var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidRegex         = errors.New("invalid regular expression")
	ErrInvalidPath          = errors.New("invalid JSONPath expression")
)
