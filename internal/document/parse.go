package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/jacoelho/jv/internal/stack"
)

// containerFrame tracks an object or array that is still open while
// consuming decoder tokens.
type containerFrame struct {
	kind    Kind
	needKey bool
	key     string
	items   []*Value
	members []Member
}

func (f *containerFrame) add(v *Value) {
	if f.kind == KindArray {
		f.items = append(f.items, v)
		return
	}
	f.members = append(f.members, Member{Key: f.key, Value: v})
	f.needKey = true
}

func (f *containerFrame) close() *Value {
	if f.kind == KindArray {
		return Array(f.items...)
	}
	return Object(f.members...)
}

// Parse decodes exactly one JSON value. Empty input, unterminated containers
// and trailing data after the first value are rejected with a *ParseError.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	frames := stack.New[containerFrame]()

	var root *Value
	for root == nil {
		tok, err := dec.Token()
		if err != nil {
			return nil, tokenError(data, dec, err)
		}

		var v *Value
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				frames.Push(containerFrame{kind: KindObject, needKey: true})
				continue
			case '[':
				frames.Push(containerFrame{kind: KindArray})
				continue
			default:
				closed, _ := frames.Pop()
				v = closed.close()
			}
		case string:
			if top := frames.PeekRef(); top != nil && top.kind == KindObject && top.needKey {
				top.key = t
				top.needKey = false
				continue
			}
			v = String(t)
		case json.Number:
			v = Number(t.String())
		case bool:
			v = Bool(t)
		case nil:
			v = Null()
		}

		if frames.IsEmpty() {
			root = v
			continue
		}
		frames.PeekRef().add(v)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, tokenError(data, dec, err)
		}
		return nil, locate(data, newParseError(data, dec.InputOffset(), "unexpected data after top-level value"))
	}

	return root, nil
}

func tokenError(data []byte, dec *json.Decoder, err error) error {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		return locate(data, newParseError(data, syntaxErr.Offset, syntaxErr.Error()))
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return newParseError(data, int64(len(data)), "unexpected end of input")
	default:
		return newParseError(data, dec.InputOffset(), err.Error())
	}
}

// locate re-scans data to position a syntax error from the start of the
// input. The decoder counts offsets of errors inside a value from the start
// of that value.
func locate(data []byte, fallback *ParseError) *ParseError {
	var syntaxErr *json.SyntaxError
	if err := json.Unmarshal(data, new(json.RawMessage)); errors.As(err, &syntaxErr) {
		// Offset counts the offending byte
		return newParseError(data, syntaxErr.Offset-1, syntaxErr.Error())
	}
	return fallback
}
