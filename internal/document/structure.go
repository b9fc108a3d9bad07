package document

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultMaxDepth bounds structure output for deeply nested documents.
	DefaultMaxDepth = 5

	previewLimit = 50
	rootLabel    = "$"
)

// Line is one entry of a structure summary.
type Line struct {
	Depth int
	Text  string
}

// String renders the line indented by two spaces per depth level.
func (l Line) String() string {
	return strings.Repeat("  ", l.Depth) + l.Text
}

// Structure walks v depth first. Objects report their property count and
// expand every property; arrays report their length and expand only the
// first element. Anything deeper than maxDepth is replaced by a marker.
func Structure(v *Value, maxDepth int) []Line {
	var lines []Line
	describe(v, "", 0, maxDepth, &lines)
	return lines
}

func describe(v *Value, path string, depth, maxDepth int, lines *[]Line) {
	label := path
	if label == "" {
		label = rootLabel
	}

	if depth > maxDepth {
		*lines = append(*lines, Line{Depth: depth, Text: label + ": [structure too deep]"})
		return
	}

	switch v.Kind() {
	case KindObject:
		*lines = append(*lines, Line{Depth: depth, Text: fmt.Sprintf("%s: object (%d properties)", label, v.Len())})
		for key, child := range v.Fields() {
			describe(child, joinKey(path, key), depth+1, maxDepth, lines)
		}
	case KindArray:
		*lines = append(*lines, Line{Depth: depth, Text: fmt.Sprintf("%s: array (%d elements)", label, v.Len())})
		if first, ok := v.Index(0); ok {
			describe(first, path+"[0]", depth+1, maxDepth, lines)
			if rest := v.Len() - 1; rest > 0 {
				*lines = append(*lines, Line{Depth: depth + 1, Text: "... and " + strconv.Itoa(rest) + " more element(s)"})
			}
		}
	default:
		*lines = append(*lines, Line{Depth: depth, Text: fmt.Sprintf("%s: %s = %s", label, v.Kind(), preview(v.String()))})
	}
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLimit {
		return s
	}
	return string(runes[:previewLimit]) + "..."
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
