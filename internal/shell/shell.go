package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jacoelho/jv/internal/config"
	"github.com/jacoelho/jv/internal/document"
	"github.com/jacoelho/jv/internal/exit"
	"github.com/jacoelho/jv/internal/output"
	"github.com/jacoelho/jv/internal/query"
)

const maxLineSize = 16 * 1024 * 1024

// Streams are the terminal endpoints used by a Shell.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Shell adapts terminal input into document loads and queries.
type Shell struct {
	config   *config.Config
	store    *document.Store
	engine   *query.Engine
	renderer *output.Renderer
	input    *bufio.Scanner
	errOut   io.Writer
	logger   *slog.Logger

	// set while the interactive menu runs
	lines <-chan string
	done  <-chan struct{}
}

func New(cfg *config.Config, streams Streams, logger *slog.Logger) *Shell {
	store := document.NewStore()

	input := bufio.NewScanner(streams.In)
	input.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Shell{
		config:   cfg,
		store:    store,
		engine:   query.New(store),
		renderer: output.New(streams.Out, cfg.Format, cfg.ContextLimit),
		input:    input,
		errOut:   streams.Err,
		logger:   logger,
	}
}

// Run loads the configured document and either executes the batch actions or
// starts the interactive menu. It returns the process exit code.
func (s *Shell) Run(ctx context.Context) int {
	if s.config.Batch() {
		result := exit.FromError(s.runBatch())
		if result.ExitCode != exit.CodeSuccess {
			result.Output = s.errOut
			result.Print()
		}
		return result.ExitCode
	}

	if err := s.loadInitial(); err != nil {
		s.report(err)
	}

	return s.interactive(ctx)
}

func (s *Shell) loadInitial() error {
	switch {
	case s.config.File != "":
		_, err := s.loadFile(s.config.File)
		return err
	case s.config.Inline != "":
		_, err := s.loadText(s.config.Inline)
		return err
	default:
		return nil
	}
}

func (s *Shell) runBatch() error {
	if err := s.loadInitial(); err != nil {
		return err
	}

	if s.config.Info {
		doc, ok := s.store.Current()
		if !ok {
			return document.ErrNotLoaded
		}
		if err := s.renderer.Info(doc); err != nil {
			return err
		}
	}

	if s.config.Structure {
		if err := s.structure(); err != nil {
			return err
		}
	}

	if s.config.Fields {
		if err := s.fields(); err != nil {
			return err
		}
	}

	if s.config.Query != "" {
		if err := s.query(s.config.Request()); err != nil {
			return err
		}
	}

	if s.config.JSONPath != "" {
		if err := s.selectPath(s.config.JSONPath); err != nil {
			return err
		}
	}

	return nil
}

func (s *Shell) loadFile(rawPath string) (*document.Document, error) {
	start := time.Now()

	doc, err := s.store.LoadFromFile(rawPath)
	if err != nil {
		s.logger.Debug("load failed", "path", rawPath, "error", err)
		return nil, err
	}

	s.logLoaded(doc, start)
	return doc, nil
}

func (s *Shell) loadText(text string) (*document.Document, error) {
	start := time.Now()

	doc, err := s.store.LoadFromText(text)
	if err != nil {
		s.logger.Debug("load failed", "source", document.InlineSource, "error", err)
		return nil, err
	}

	s.logLoaded(doc, start)
	return doc, nil
}

func (s *Shell) logLoaded(doc *document.Document, start time.Time) {
	s.logger.Debug("document loaded",
		"id", doc.ID.String(),
		"source", doc.Source(),
		"size", doc.Size,
		"checksum", fmt.Sprintf("%016x", doc.Checksum),
		"duration", time.Since(start),
	)
}

func (s *Shell) structure() error {
	lines, err := s.engine.Structure(s.config.MaxDepth)
	if err != nil {
		return err
	}
	return s.renderer.Structure(lines)
}

func (s *Shell) fields() error {
	fields, err := s.engine.ListAllFields()
	if err != nil {
		return err
	}
	s.logger.Debug("fields listed", "count", len(fields))
	return s.renderer.Fields(fields)
}

func (s *Shell) query(req query.Request) error {
	start := time.Now()

	results, err := s.engine.Query(req)
	if err != nil {
		return err
	}

	s.logger.Debug("query executed",
		"field", req.FieldPath,
		"operation", req.Operation.String(),
		"filtered", req.HasValue(),
		"results", len(results),
		"duration", time.Since(start),
	)
	return s.renderer.Results(req, results)
}

func (s *Shell) selectPath(expr string) error {
	nodes, err := s.engine.Select(expr)
	if err != nil {
		return err
	}
	s.logger.Debug("jsonpath selected", "expression", expr, "nodes", len(nodes))
	return s.renderer.Selection(expr, nodes)
}

// report prints a failure without ending the session.
func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, document.ErrNotLoaded):
		s.println("No JSON loaded. Load a file first.")
	default:
		s.println("Error: " + err.Error())
	}
}

func (s *Shell) println(line string) {
	if err := s.renderer.Printf("%s\n", line); err != nil {
		s.logger.Debug("write failed", "error", err)
	}
}

// readLines scans input on its own goroutine so prompts can give up when ctx
// is cancelled. The channel is closed at end of input.
func (s *Shell) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for s.input.Scan() {
			select {
			case lines <- strings.TrimRight(s.input.Text(), "\r"):
			case <-ctx.Done():
				return
			}
		}
		if err := s.input.Err(); err != nil {
			s.logger.Debug("input failed", "error", err)
		}
	}()
	return lines
}

// prompt writes label and waits for one line. It returns false on end of
// input or cancellation.
func (s *Shell) prompt(label string) (string, bool) {
	if err := s.renderer.Printf("%s", label); err != nil {
		s.logger.Debug("write failed", "error", err)
	}

	select {
	case line, ok := <-s.lines:
		if !ok || s.cancelled() {
			return "", false
		}
		return line, true
	case <-s.done:
		return "", false
	}
}

func (s *Shell) cancelled() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
