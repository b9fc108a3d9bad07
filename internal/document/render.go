package document

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Compact renders the value as single-line JSON with keys in declaration order.
func (v *Value) Compact() string {
	var b bytes.Buffer
	v.writeCompact(&b)
	return b.String()
}

// Indent renders the value as JSON indented with two spaces.
func (v *Value) Indent() string {
	compact := v.Compact()

	var b bytes.Buffer
	if err := json.Indent(&b, []byte(compact), "", "  "); err != nil {
		return compact
	}
	return b.String()
}

func (v *Value) writeCompact(b *bytes.Buffer) {
	switch v.Kind() {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		b.WriteString(v.text)
	case KindString:
		b.WriteString(quote(v.text))
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(',')
			}
			item.writeCompact(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(m.Key))
			b.WriteByte(':')
			m.Value.writeCompact(b)
		}
		b.WriteByte('}')
	}
}

func quote(s string) string {
	encoded, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		return strconv.Quote(s)
	}
	return string(encoded)
}

func formatFloat(f float64) string {
	encoded, err := json.Marshal(f)
	if err != nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return string(encoded)
}

func stringify(v any) string {
	return fmt.Sprint(v)
}
