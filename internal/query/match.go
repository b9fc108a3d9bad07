package query

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/jacoelho/jv/internal/document"
)

type regexCompiler interface {
	Compile(pattern string) (*regexp.Regexp, error)
}

// cachedRegexCompiler compiles patterns case-insensitively and remembers them
// for repeated queries in the same session.
type cachedRegexCompiler struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

func newCachedRegexCompiler() *cachedRegexCompiler {
	return &cachedRegexCompiler{
		patterns: make(map[string]*regexp.Regexp),
	}
}

func (c *cachedRegexCompiler) Compile(pattern string) (*regexp.Regexp, error) {
	c.mu.RLock()
	if compiled, ok := c.patterns[pattern]; ok {
		c.mu.RUnlock()
		return compiled, nil
	}
	c.mu.RUnlock()

	compiled, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidRegex, pattern, err)
	}

	c.mu.Lock()
	c.patterns[pattern] = compiled
	c.mu.Unlock()

	return compiled, nil
}

// matcher tests rendered values against a search value.
type matcher struct {
	op     Operation
	needle string
	folded string
	re     *regexp.Regexp
}

func newMatcher(op Operation, searchValue string, compiler regexCompiler) (*matcher, error) {
	if !op.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedOperation, int(op))
	}

	m := &matcher{
		op:     op,
		needle: searchValue,
		folded: strings.ToLower(searchValue),
	}

	if op == Regex {
		re, err := compiler.Compile(searchValue)
		if err != nil {
			return nil, err
		}
		m.re = re
	}

	return m, nil
}

// match never accepts a JSON null.
func (m *matcher) match(v *document.Value) bool {
	if v.IsNull() {
		return false
	}
	return m.matchString(v.String())
}

func (m *matcher) matchString(actual string) bool {
	switch m.op {
	case Equals:
		return strings.EqualFold(actual, m.needle)
	case Contains:
		return strings.Contains(strings.ToLower(actual), m.folded)
	case StartsWith:
		return strings.HasPrefix(strings.ToLower(actual), m.folded)
	case EndsWith:
		return strings.HasSuffix(strings.ToLower(actual), m.folded)
	case Regex:
		return m.re.MatchString(actual)
	case GreaterThan:
		return compare(actual, m.needle) > 0
	case LessThan:
		return compare(actual, m.needle) < 0
	case GreaterOrEqual:
		return compare(actual, m.needle) >= 0
	case LessOrEqual:
		return compare(actual, m.needle) <= 0
	default:
		return false
	}
}

// compare orders numerically when both sides parse as floats and falls back
// to a case-insensitive ordinal comparison otherwise.
func compare(a, b string) int {
	x, okA := parseNumber(a)
	y, okB := parseNumber(b)
	if okA && okB {
		return cmp.Compare(x, y)
	}
	return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}

// parseNumber accepts literals beyond the float64 range as ±Inf.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
