package document

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"
	"strconv"
)

// Kind is the JSON type tag of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Member is a single object property.
type Member struct {
	Key   string
	Value *Value
}

// Value is an immutable JSON tree node. Objects keep their keys in
// declaration order.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string content or number literal
	items   []*Value
	members []Member
	index   map[string]int
}

var nullValue = &Value{kind: KindNull}

func Null() *Value {
	return nullValue
}

func Bool(b bool) *Value {
	return &Value{kind: KindBool, boolean: b}
}

// Number keeps the literal as written in the source document.
func Number(literal string) *Value {
	return &Value{kind: KindNumber, text: literal}
}

func String(s string) *Value {
	return &Value{kind: KindString, text: s}
}

func Array(items ...*Value) *Value {
	return &Value{kind: KindArray, items: items}
}

// Object builds an object from members. A repeated key replaces the earlier
// value but keeps the position of its first occurrence.
func Object(members ...Member) *Value {
	v := &Value{
		kind:    KindObject,
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		if i, ok := v.index[m.Key]; ok {
			v.members[i].Value = m.Value
			continue
		}
		v.index[m.Key] = len(v.members)
		v.members = append(v.members, m)
	}
	return v
}

func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool {
	return v.Kind() == KindNull
}

// Len returns the number of properties of an object or elements of an array.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.items)
	default:
		return 0
	}
}

// Get looks up a direct property of an object.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != KindObject {
		return nil, false
	}
	i, ok := v.index[key]
	if !ok {
		return nil, false
	}
	return v.members[i].Value, true
}

// Index returns the i-th element of an array.
func (v *Value) Index(i int) (*Value, bool) {
	if v.Kind() != KindArray || i < 0 || i >= len(v.items) {
		return nil, false
	}
	return v.items[i], true
}

// Fields iterates object properties in declaration order.
func (v *Value) Fields() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if v.Kind() != KindObject {
			return
		}
		for _, m := range v.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Elements iterates array elements in index order.
func (v *Value) Elements() iter.Seq2[int, *Value] {
	return func(yield func(int, *Value) bool) {
		if v.Kind() != KindArray {
			return
		}
		for i, item := range v.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// String renders the value for display: strings without quotes, numbers as
// their source literal, containers as indented JSON.
func (v *Value) String() string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNumber, KindString:
		return v.text
	default:
		return v.Indent()
	}
}

// Interface converts the value into the generic form produced by
// encoding/json (map[string]any, []any, float64, string, bool, nil). Number
// literals outside the float64 range are kept as json.Number.
func (v *Value) Interface() any {
	switch v.Kind() {
	case KindBool:
		return v.boolean
	case KindNumber:
		if f, err := strconv.ParseFloat(v.text, 64); err == nil {
			return f
		}
		return json.Number(v.text)
	case KindString:
		return v.text
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromInterface converts generic decoded JSON data into a Value. Map keys are
// sorted because Go maps carry no order.
func FromInterface(data any) *Value {
	switch current := data.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(current)
	case string:
		return String(current)
	case json.Number:
		return Number(current.String())
	case int:
		return Number(strconv.Itoa(current))
	case int64:
		return Number(strconv.FormatInt(current, 10))
	case float64:
		return Number(formatFloat(current))
	case []any:
		items := make([]*Value, len(current))
		for i, item := range current {
			items[i] = FromInterface(item)
		}
		return Array(items...)
	case map[string]any:
		members := make([]Member, 0, len(current))
		for _, key := range slices.Sorted(maps.Keys(current)) {
			members = append(members, Member{Key: key, Value: FromInterface(current[key])})
		}
		return Object(members...)
	default:
		return String(stringify(current))
	}
}
