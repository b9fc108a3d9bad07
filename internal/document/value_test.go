package document

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, input string) *Value {
	t.Helper()

	v, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", input, err)
	}
	return v
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		kind  Kind
	}{
		{name: "string unquoted", input: `"hello"`, want: "hello", kind: KindString},
		{name: "number literal", input: `10.0`, want: "10.0", kind: KindNumber},
		{name: "true", input: `true`, want: "true", kind: KindBool},
		{name: "false", input: `false`, want: "false", kind: KindBool},
		{name: "null", input: `null`, want: "null", kind: KindNull},
		{name: "object indented", input: `{"a":1,"b":[2]}`, want: "{\n  \"a\": 1,\n  \"b\": [\n    2\n  ]\n}", kind: KindObject},
		{name: "empty array", input: `[]`, want: "[]", kind: KindArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustParse(t, tt.input)
			if got := v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := v.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindNull:   "null",
		KindBool:   "boolean",
		KindNumber: "number",
		KindString: "string",
		KindArray:  "array",
		KindObject: "object",
		Kind(99):   "unknown",
	}

	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	v := mustParse(t, `{"z": 1, "a": [10, 20], "m": null}`)

	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3", v.Len())
	}

	var keys []string
	for key := range v.Fields() {
		keys = append(keys, key)
	}
	if want := []string{"z", "a", "m"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("Fields() keys = %v, want %v", keys, want)
	}

	arr, ok := v.Get("a")
	if !ok {
		t.Fatal("Get(a) not found")
	}
	second, ok := arr.Index(1)
	if !ok || second.String() != "20" {
		t.Errorf("Index(1) = %v, %v, want 20", second, ok)
	}
	if _, ok := arr.Index(2); ok {
		t.Error("Index(2) out of range should fail")
	}

	m, ok := v.Get("m")
	if !ok || !m.IsNull() {
		t.Errorf("Get(m) = %v, %v, want null", m, ok)
	}
	if _, ok := v.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
	if _, ok := arr.Get("a"); ok {
		t.Error("Get on array should fail")
	}

	var indexes []int
	for i := range arr.Elements() {
		indexes = append(indexes, i)
	}
	if want := []int{0, 1}; !reflect.DeepEqual(indexes, want) {
		t.Errorf("Elements() indexes = %v, want %v", indexes, want)
	}
}

func TestInterfaceAndFromInterface(t *testing.T) {
	v := mustParse(t, `{"b": [1, 2.5, "x", false, null], "a": {"c": 3}}`)

	got := v.Interface()
	want := map[string]any{
		"b": []any{float64(1), 2.5, "x", false, nil},
		"a": map[string]any{"c": float64(3)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Interface() = %#v, want %#v", got, want)
	}

	back := FromInterface(got)
	if compact := back.Compact(); compact != `{"a":{"c":3},"b":[1,2.5,"x",false,null]}` {
		t.Errorf("FromInterface().Compact() = %s", compact)
	}

	if n := FromInterface(json.Number("7.10")); n.String() != "7.10" || n.Kind() != KindNumber {
		t.Errorf("FromInterface(json.Number) = %v (%v)", n, n.Kind())
	}
	if n := FromInterface(3); n.String() != "3" {
		t.Errorf("FromInterface(int) = %v", n)
	}
}
