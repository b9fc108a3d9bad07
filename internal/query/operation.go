package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Operation selects how a search value is compared against a field value.
type Operation int

const (
	Equals Operation = iota
	Contains
	StartsWith
	EndsWith
	Regex
	GreaterThan
	LessThan
	GreaterOrEqual
	LessOrEqual
)

var operationNames = [...]string{
	Equals:         "equals",
	Contains:       "contains",
	StartsWith:     "starts_with",
	EndsWith:       "ends_with",
	Regex:          "regex",
	GreaterThan:    "greater_than",
	LessThan:       "less_than",
	GreaterOrEqual: "greater_than_or_equal",
	LessOrEqual:    "less_than_or_equal",
}

var operationLabels = [...]string{
	Equals:         "Equals (default)",
	Contains:       "Contains",
	StartsWith:     "Starts with",
	EndsWith:       "Ends with",
	Regex:          "Regular expression",
	GreaterThan:    "Greater than",
	LessThan:       "Less than",
	GreaterOrEqual: "Greater than or equal",
	LessOrEqual:    "Less than or equal",
}

// Operations lists every operation in menu order.
func Operations() []Operation {
	ops := make([]Operation, len(operationNames))
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}

func (o Operation) valid() bool {
	return o >= Equals && int(o) < len(operationNames)
}

func (o Operation) String() string {
	if !o.valid() {
		return "unknown"
	}
	return operationNames[o]
}

// Label is the human readable menu text.
func (o Operation) Label() string {
	if !o.valid() {
		return "Unknown"
	}
	return operationLabels[o]
}

// ParseOperation accepts an operation name (case-insensitive, "-" or "_"
// separated) or its 1-based menu number.
func ParseOperation(input string) (Operation, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	if n, err := strconv.Atoi(normalized); err == nil {
		if op := Operation(n - 1); op.valid() {
			return op, nil
		}
		return Equals, fmt.Errorf("%w: %q", ErrUnsupportedOperation, input)
	}

	for i, name := range operationNames {
		if name == normalized {
			return Operation(i), nil
		}
	}

	return Equals, fmt.Errorf("%w: %q", ErrUnsupportedOperation, input)
}
