package query

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jacoelho/jv/internal/document"
	"github.com/theory/jsonpath"
	jp "github.com/theory/jsonpath/spec"
)

// Request describes a field query. An empty SearchValue accepts every value
// found under FieldPath.
type Request struct {
	FieldPath   string
	SearchValue string
	Operation   Operation
}

// HasValue reports whether results are filtered by SearchValue.
func (r Request) HasValue() bool {
	return r.SearchValue != ""
}

// Result is a single match of a field query.
type Result struct {
	Path   string
	Value  string
	Kind   document.Kind
	Parent *document.Value // object holding the matched key
}

// Context renders the enclosing object as compact JSON when it has at most
// limit properties.
func (r Result) Context(limit int) (string, bool) {
	if r.Parent == nil || r.Parent.Len() > limit {
		return "", false
	}
	return r.Parent.Compact(), true
}

// Selection is a node returned by a JSONPath expression. Path is its RFC 9535
// normalized path.
type Selection struct {
	Path  string
	Value string
	Kind  document.Kind
}

// Engine answers queries against the document currently held by a store.
// Each call works on one snapshot of the document.
type Engine struct {
	store *document.Store
	regex regexCompiler
}

func New(store *document.Store) *Engine {
	return &Engine{
		store: store,
		regex: newCachedRegexCompiler(),
	}
}

// Query searches the whole tree depth first. At every object the full field
// path is tried as a direct key and, when it contains a dot, its first segment
// is followed with the remainder; then every child is searched with the
// full path. Results are in discovery order.
func (e *Engine) Query(req Request) ([]Result, error) {
	doc, ok := e.store.Current()
	if !ok {
		return nil, document.ErrNotLoaded
	}

	s := &search{}
	if req.HasValue() {
		m, err := newMatcher(req.Operation, req.SearchValue, e.regex)
		if err != nil {
			return nil, err
		}
		s.matcher = m
	}

	s.walk(doc.Root, req.FieldPath, "")
	return s.results, nil
}

type search struct {
	matcher *matcher
	results []Result
}

func (s *search) accept(v *document.Value) bool {
	return s.matcher == nil || s.matcher.match(v)
}

func (s *search) walk(v *document.Value, field, current string) {
	switch v.Kind() {
	case document.KindObject:
		if value, ok := v.Get(field); ok && s.accept(value) {
			s.results = append(s.results, Result{
				Path:   joinKey(current, field),
				Value:  value.String(),
				Kind:   value.Kind(),
				Parent: v,
			})
		}

		if head, rest, nested := strings.Cut(field, "."); nested {
			if child, ok := v.Get(head); ok {
				s.walk(child, rest, joinKey(current, head))
			}
		}

		for key, child := range v.Fields() {
			s.walk(child, field, joinKey(current, key))
		}
	case document.KindArray:
		for i, item := range v.Elements() {
			s.walk(item, field, joinIndex(current, i))
		}
	}
}

// ListAllFields returns every distinct dotted key path, sorted. Arrays do not
// contribute a segment and only their first element is inspected.
func (e *Engine) ListAllFields() ([]string, error) {
	doc, ok := e.store.Current()
	if !ok {
		return nil, document.ErrNotLoaded
	}

	fields := make(map[string]struct{})
	collectFields(doc.Root, "", fields)
	return slices.Sorted(maps.Keys(fields)), nil
}

func collectFields(v *document.Value, current string, fields map[string]struct{}) {
	switch v.Kind() {
	case document.KindObject:
		for key, child := range v.Fields() {
			path := joinKey(current, key)
			fields[path] = struct{}{}
			collectFields(child, path, fields)
		}
	case document.KindArray:
		if first, ok := v.Index(0); ok {
			collectFields(first, current, fields)
		}
	}
}

// Structure summarizes the loaded document down to maxDepth levels.
func (e *Engine) Structure(maxDepth int) ([]document.Line, error) {
	return e.store.DisplayStructure(maxDepth)
}

// Select evaluates an RFC 9535 JSONPath expression against the loaded document.
// Selected nodes are mapped back to the parsed tree, so values keep their
// source key order and number literals.
func (e *Engine) Select(expr string) ([]Selection, error) {
	doc, ok := e.store.Current()
	if !ok {
		return nil, document.ErrNotLoaded
	}

	path, err := jsonpath.Parse(strings.TrimSpace(expr))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPath, expr, err)
	}

	nodes := path.SelectLocated(doc.Root.Interface())
	selections := make([]Selection, 0, len(nodes))
	for node := range nodes.All() {
		v, ok := locate(doc.Root, node.Path)
		if !ok {
			v = document.FromInterface(node.Node)
		}
		selections = append(selections, Selection{
			Path:  node.Path.String(),
			Value: v.String(),
			Kind:  v.Kind(),
		})
	}
	return selections, nil
}

// locate follows a normalized path from root.
func locate(root *document.Value, path jp.NormalizedPath) (*document.Value, bool) {
	current := root
	for _, selector := range path {
		var ok bool
		switch sel := selector.(type) {
		case jp.Name:
			current, ok = current.Get(string(sel))
		case jp.Index:
			current, ok = current.Index(int(sel))
		}
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func joinKey(current, key string) string {
	if current == "" {
		return key
	}
	return current + "." + key
}

func joinIndex(current string, i int) string {
	return current + "[" + strconv.Itoa(i) + "]"
}
