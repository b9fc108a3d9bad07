package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/jacoelho/jv/internal/exit"
	"github.com/jacoelho/jv/internal/query"
)

const menu = `
========================================
           JSON Viewer
========================================
1. Load JSON file
2. Load JSON from text
3. Show structure
4. List all fields
5. Query field
6. Query field with filter
7. Select with JSONPath
8. Document info
0. Exit
========================================`

func (s *Shell) interactive(ctx context.Context) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.done = ctx.Done()
	s.lines = s.readLines(ctx)

	for {
		if ctx.Err() != nil {
			s.println("\nExiting...")
			return exit.CodeSuccess
		}

		s.println(menu)
		choice, ok := s.prompt("Choose an option: ")
		if !ok {
			s.println("\nExiting...")
			return exit.CodeSuccess
		}

		switch strings.TrimSpace(choice) {
		case "1":
			s.loadFileCommand()
		case "2":
			s.loadTextCommand()
		case "3":
			s.attempt(s.structure)
		case "4":
			s.attempt(s.fields)
		case "5":
			s.queryCommand(false)
		case "6":
			s.queryCommand(true)
		case "7":
			s.selectCommand()
		case "8":
			s.infoCommand()
		case "0":
			s.println("Exiting...")
			return exit.CodeSuccess
		default:
			s.println("Invalid option. Try again.")
		}
	}
}

func (s *Shell) attempt(action func() error) {
	if err := action(); err != nil {
		s.report(err)
	}
}

func (s *Shell) loadFileCommand() {
	path, ok := s.prompt("File path: ")
	if !ok {
		return
	}
	if strings.TrimSpace(path) == "" {
		s.println("File path cannot be empty.")
		return
	}

	doc, err := s.loadFile(path)
	if err != nil {
		s.report(err)
		return
	}
	s.println(fmt.Sprintf("JSON loaded from %s", doc.Source()))
}

// loadTextCommand reads lines until an empty line or end of input.
func (s *Shell) loadTextCommand() {
	s.println("Paste the JSON text and finish with an empty line:")

	var lines []string
	for {
		line, ok := s.prompt("")
		if !ok || line == "" {
			break
		}
		lines = append(lines, line)
	}
	if s.cancelled() {
		return
	}

	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		s.println("JSON text cannot be empty.")
		return
	}

	if _, err := s.loadText(text); err != nil {
		s.report(err)
		return
	}
	s.println("JSON loaded from text.")
}

func (s *Shell) queryCommand(filtered bool) {
	if !s.store.IsLoaded() {
		s.println("No JSON loaded. Load a file first.")
		return
	}

	field, ok := s.prompt("Field name or path (e.g. name or user.address.city): ")
	if !ok {
		return
	}
	field = strings.TrimSpace(field)
	if field == "" {
		s.println("Field name cannot be empty.")
		return
	}

	req := query.Request{FieldPath: field, Operation: query.Equals}
	if filtered {
		value, ok := s.prompt("Value to search for (empty lists every value): ")
		if !ok {
			return
		}
		req.SearchValue = value
		if strings.TrimSpace(value) != "" {
			if req.Operation, ok = s.chooseOperation(); !ok {
				return
			}
		}
	}

	s.attempt(func() error { return s.query(req) })
}

// chooseOperation falls back to equals on unrecognised input.
func (s *Shell) chooseOperation() (query.Operation, bool) {
	s.println("\nOperations:")
	for i, op := range query.Operations() {
		s.println(fmt.Sprintf("%d. %s", i+1, op.Label()))
	}

	choice, ok := s.prompt("Choose an operation (default 1): ")
	if !ok {
		return query.Equals, false
	}
	op, err := query.ParseOperation(choice)
	if err != nil {
		return query.Equals, true
	}
	return op, true
}

func (s *Shell) selectCommand() {
	if !s.store.IsLoaded() {
		s.println("No JSON loaded. Load a file first.")
		return
	}

	expr, ok := s.prompt("JSONPath expression (e.g. $.items[*].id): ")
	if !ok {
		return
	}
	if strings.TrimSpace(expr) == "" {
		s.println("Expression cannot be empty.")
		return
	}

	s.attempt(func() error { return s.selectPath(expr) })
}

func (s *Shell) infoCommand() {
	doc, ok := s.store.Current()
	if !ok {
		s.println("No JSON loaded. Load a file first.")
		return
	}
	s.attempt(func() error { return s.renderer.Info(doc) })
}
