package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jacoelho/jv/internal/document"
	"github.com/jacoelho/jv/internal/query"
)

type resultPayload struct {
	Path    string `json:"path" yaml:"path"`
	Type    string `json:"type" yaml:"type"`
	Value   string `json:"value" yaml:"value"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

type queryPayload struct {
	Field       string          `json:"field" yaml:"field"`
	SearchValue string          `json:"search_value,omitempty" yaml:"search_value,omitempty"`
	Operation   string          `json:"operation,omitempty" yaml:"operation,omitempty"`
	Count       int             `json:"count" yaml:"count"`
	Results     []resultPayload `json:"results" yaml:"results"`
}

// Results renders the outcome of a field query.
func (r *Renderer) Results(req query.Request, results []query.Result) error {
	if r.format != FormatText {
		payload := queryPayload{
			Field:   req.FieldPath,
			Count:   len(results),
			Results: make([]resultPayload, 0, len(results)),
		}
		if req.HasValue() {
			payload.SearchValue = req.SearchValue
			payload.Operation = req.Operation.String()
		}
		for _, result := range results {
			item := resultPayload{
				Path:  result.Path,
				Type:  result.Kind.String(),
				Value: result.Value,
			}
			if ctx, ok := result.Context(r.contextLimit); ok {
				item.Context = ctx
			}
			payload.Results = append(payload.Results, item)
		}
		return r.encode(payload)
	}

	var buf bytes.Buffer
	buf.WriteString("\n=== Query ===\n")
	fmt.Fprintf(&buf, "Field: %s\n", req.FieldPath)
	if req.HasValue() {
		fmt.Fprintf(&buf, "Search value: %s\n", req.SearchValue)
		fmt.Fprintf(&buf, "Operation: %s\n", req.Operation)
	}
	buf.WriteByte('\n')

	if len(results) == 0 {
		fmt.Fprintf(&buf, "No results found for field '%s'.\n", req.FieldPath)
		return r.flush(&buf)
	}

	fmt.Fprintf(&buf, "Found %d result(s):\n\n", len(results))
	for i, result := range results {
		fmt.Fprintf(&buf, "[%d] Path: %s\n", i+1, result.Path)
		fmt.Fprintf(&buf, "    Type: %s\n", result.Kind)
		fmt.Fprintf(&buf, "    Value: %s\n", result.Value)
		if ctx, ok := result.Context(r.contextLimit); ok {
			fmt.Fprintf(&buf, "    Context: %s\n", ctx)
		}
		buf.WriteByte('\n')
	}
	return r.flush(&buf)
}

type fieldsPayload struct {
	Fields []string `json:"fields" yaml:"fields"`
	Total  int      `json:"total" yaml:"total"`
}

// Fields renders the sorted list of field paths.
func (r *Renderer) Fields(fields []string) error {
	if r.format != FormatText {
		if fields == nil {
			fields = []string{}
		}
		return r.encode(fieldsPayload{Fields: fields, Total: len(fields)})
	}

	var buf bytes.Buffer
	buf.WriteString("\n=== Fields ===\n")
	for i, field := range fields {
		fmt.Fprintf(&buf, "%03d. %s\n", i+1, field)
	}
	fmt.Fprintf(&buf, "\nTotal: %d unique field(s).\n", len(fields))
	return r.flush(&buf)
}

type linePayload struct {
	Depth int    `json:"depth" yaml:"depth"`
	Text  string `json:"text" yaml:"text"`
}

type structurePayload struct {
	Lines []linePayload `json:"lines" yaml:"lines"`
}

// Structure renders a structure summary.
func (r *Renderer) Structure(lines []document.Line) error {
	if r.format != FormatText {
		payload := structurePayload{Lines: make([]linePayload, 0, len(lines))}
		for _, line := range lines {
			payload.Lines = append(payload.Lines, linePayload{Depth: line.Depth, Text: line.Text})
		}
		return r.encode(payload)
	}

	var buf bytes.Buffer
	buf.WriteString("\n=== Structure ===\n")
	for _, line := range lines {
		buf.WriteString(line.String())
		buf.WriteByte('\n')
	}
	return r.flush(&buf)
}

type nodePayload struct {
	Path  string `json:"path" yaml:"path"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

type selectionPayload struct {
	Expression string        `json:"expression" yaml:"expression"`
	Count      int           `json:"count" yaml:"count"`
	Nodes      []nodePayload `json:"nodes" yaml:"nodes"`
}

// Selection renders nodes returned by a JSONPath expression.
func (r *Renderer) Selection(expr string, nodes []query.Selection) error {
	if r.format != FormatText {
		payload := selectionPayload{
			Expression: expr,
			Count:      len(nodes),
			Nodes:      make([]nodePayload, 0, len(nodes)),
		}
		for _, node := range nodes {
			payload.Nodes = append(payload.Nodes, nodePayload{
				Path:  node.Path,
				Type:  node.Kind.String(),
				Value: node.Value,
			})
		}
		return r.encode(payload)
	}

	var buf bytes.Buffer
	buf.WriteString("\n=== JSONPath ===\n")
	fmt.Fprintf(&buf, "Expression: %s\n\n", expr)
	if len(nodes) == 0 {
		buf.WriteString("No nodes selected.\n")
		return r.flush(&buf)
	}

	fmt.Fprintf(&buf, "Selected %d node(s):\n\n", len(nodes))
	for i, node := range nodes {
		fmt.Fprintf(&buf, "[%d] Path: %s\n", i+1, node.Path)
		fmt.Fprintf(&buf, "    Type: %s\n", node.Kind)
		fmt.Fprintf(&buf, "    Value: %s\n\n", node.Value)
	}
	return r.flush(&buf)
}

type infoPayload struct {
	ID       string `json:"id" yaml:"id"`
	Source   string `json:"source" yaml:"source"`
	Checksum string `json:"checksum" yaml:"checksum"`
	Size     int    `json:"size" yaml:"size"`
	RootType string `json:"root_type" yaml:"root_type"`
	LoadedAt string `json:"loaded_at" yaml:"loaded_at"`
}

// Info renders document provenance.
func (r *Renderer) Info(doc *document.Document) error {
	payload := infoPayload{
		ID:       doc.ID.String(),
		Source:   doc.Source(),
		Checksum: fmt.Sprintf("%016x", doc.Checksum),
		Size:     doc.Size,
		RootType: doc.Root.Kind().String(),
		LoadedAt: doc.LoadedAt.Format(time.RFC3339),
	}

	if r.format != FormatText {
		return r.encode(payload)
	}

	var buf bytes.Buffer
	buf.WriteString("\n=== Document ===\n")
	fmt.Fprintf(&buf, "ID:        %s\n", payload.ID)
	fmt.Fprintf(&buf, "Source:    %s\n", payload.Source)
	fmt.Fprintf(&buf, "Checksum:  %s\n", payload.Checksum)
	fmt.Fprintf(&buf, "Size:      %d bytes\n", payload.Size)
	fmt.Fprintf(&buf, "Root type: %s\n", payload.RootType)
	fmt.Fprintf(&buf, "Loaded at: %s\n", payload.LoadedAt)
	return r.flush(&buf)
}
