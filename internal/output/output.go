package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// DefaultContextLimit is the largest enclosing object shown next to a result.
const DefaultContextLimit = 10

var ErrUnknownFormat = errors.New("unknown output format")

// Format represents the output format for rendered listings.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "text"
	}
}

func ParseFormat(input string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatText, fmt.Errorf("%w: %q", ErrUnknownFormat, input)
	}
}

// Renderer writes query results, field listings and structure summaries.
type Renderer struct {
	w            io.Writer
	format       Format
	contextLimit int
}

func New(w io.Writer, format Format, contextLimit int) *Renderer {
	return &Renderer{
		w:            w,
		format:       format,
		contextLimit: contextLimit,
	}
}

// Printf writes a plain message regardless of format.
func (r *Renderer) Printf(format string, a ...any) error {
	_, err := fmt.Fprintf(r.w, format, a...)
	return err
}

func (r *Renderer) encode(payload any) error {
	switch r.format {
	case FormatJSON:
		encoder := json.NewEncoder(r.w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(payload)
	case FormatYAML:
		data, err := yaml.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		_, err = r.w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, r.format)
	}
}

func (r *Renderer) flush(buf *bytes.Buffer) error {
	_, err := buf.WriteTo(r.w)
	return err
}
