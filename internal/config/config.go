package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/jacoelho/jv/internal/document"
	"github.com/jacoelho/jv/internal/exit"
	"github.com/jacoelho/jv/internal/output"
	"github.com/jacoelho/jv/internal/query"
)

var (
	ErrTooManyArguments      = errors.New("at most one JSON file can be given")
	ErrConflictingInput      = errors.New("a JSON file and -inline cannot be used together")
	ErrInvalidMaxDepth       = errors.New("max depth cannot be negative")
	ErrInvalidContextLimit   = errors.New("context limit cannot be negative")
	ErrValueWithoutQuery     = errors.New("-value and -op require -query")
	ErrActionWithoutDocument = errors.New("batch actions require a JSON file or -inline")
)

// Config represents the complete configuration for the jv tool.
type Config struct {
	// Document source
	File   string
	Inline string

	// Rendering
	Format       output.Format
	MaxDepth     int
	ContextLimit int
	Debug        bool
	ConfigFile   string

	// Batch actions; when none is set the interactive menu runs.
	Info      bool
	Structure bool
	Fields    bool
	Query     string
	Value     string
	Operation query.Operation
	JSONPath  string
}

// Batch reports whether any non-interactive action was requested.
func (c *Config) Batch() bool {
	return c.Info || c.Structure || c.Fields || c.Query != "" || c.JSONPath != ""
}

// Request builds the field query requested on the command line.
func (c *Config) Request() query.Request {
	return query.Request{
		FieldPath:   c.Query,
		SearchValue: c.Value,
		Operation:   c.Operation,
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.File != "" && c.Inline != "" {
		return ErrConflictingInput
	}
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.ContextLimit < 0 {
		return ErrInvalidContextLimit
	}
	if c.Query == "" && (c.Value != "" || c.Operation != query.Equals) {
		return ErrValueWithoutQuery
	}
	if c.Batch() && c.File == "" && c.Inline == "" {
		return ErrActionWithoutDocument
	}
	return nil
}

// fileConfig mirrors the keys accepted in a YAML config file. Pointers
// distinguish absent keys from zero values.
type fileConfig struct {
	Format       string `yaml:"format"`
	MaxDepth     *int   `yaml:"max_depth"`
	ContextLimit *int   `yaml:"context_limit"`
	Debug        *bool  `yaml:"debug"`
}

func loadConfigFile(filename string) (fileConfig, error) {
	var fc fileConfig

	data, err := os.ReadFile(filename)
	if err != nil {
		return fc, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if err := yaml.UnmarshalWithOptions(data, &fc, yaml.DisallowUnknownField()); err != nil {
		return fc, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return fc, nil
}

func (fc fileConfig) apply(c *Config) error {
	if fc.Format != "" {
		format, err := output.ParseFormat(fc.Format)
		if err != nil {
			return err
		}
		c.Format = format
	}
	if fc.MaxDepth != nil {
		c.MaxDepth = *fc.MaxDepth
	}
	if fc.ContextLimit != nil {
		c.ContextLimit = *fc.ContextLimit
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	return nil
}

// formatFlag implements flag.Value for -format.
type formatFlag struct {
	format *output.Format
}

func (f formatFlag) String() string {
	if f.format == nil {
		return output.FormatText.String()
	}
	return f.format.String()
}

func (f formatFlag) Set(value string) error {
	format, err := output.ParseFormat(value)
	if err != nil {
		return err
	}
	*f.format = format
	return nil
}

// operationFlag implements flag.Value for -op.
type operationFlag struct {
	op *query.Operation
}

func (o operationFlag) String() string {
	if o.op == nil {
		return query.Equals.String()
	}
	return o.op.String()
}

func (o operationFlag) Set(value string) error {
	op, err := query.ParseOperation(value)
	if err != nil {
		return err
	}
	*o.op = op
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	name := "jv"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	// Usage and errors are reported through exit.Result
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	cfg := &Config{
		Format:       output.FormatText,
		MaxDepth:     document.DefaultMaxDepth,
		ContextLimit: output.DefaultContextLimit,
		Operation:    query.Equals,
	}

	var (
		format       = cfg.Format
		operation    = cfg.Operation
		configFile   = fs.String("config", "", "Path to YAML config file")
		debug        = fs.Bool("debug", false, "Enable debug logging on stderr")
		maxDepth     = fs.Int("max-depth", cfg.MaxDepth, "Maximum depth shown by the structure view")
		contextLimit = fs.Int("context-limit", cfg.ContextLimit, "Show the enclosing object of a result when it has at most N properties")
		inline       = fs.String("inline", "", "Load JSON from the given text instead of a file")
		info         = fs.Bool("info", false, "Print document information")
		structure    = fs.Bool("structure", false, "Print the document structure")
		fields       = fs.Bool("fields", false, "List all field paths")
		queryField   = fs.String("query", "", "Field name or dotted path to search for")
		value        = fs.String("value", "", "Only report values matching this search value")
		jsonPath     = fs.String("jsonpath", "", "Select nodes with a JSONPath expression")
	)

	fs.Var(formatFlag{format: &format}, "format", "Output format: text, json or yaml")
	fs.Var(operationFlag{op: &operation}, "op", "Comparison operation used with -value")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	positional := fs.Args()
	if len(positional) > 1 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrTooManyArguments, Usage())
	}
	if len(positional) == 1 {
		cfg.File = positional[0]
	}

	// Config file values first, then explicitly set command-line flags
	if *configFile != "" {
		fc, err := loadConfigFile(*configFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load config file: %v\n\n%s", err, Usage())
		}
		if err := fc.apply(cfg); err != nil {
			return nil, exit.Errorf("Error: invalid config file %s: %v\n\n%s", *configFile, err, Usage())
		}
		cfg.ConfigFile = *configFile
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = format
		case "debug":
			cfg.Debug = *debug
		case "max-depth":
			cfg.MaxDepth = *maxDepth
		case "context-limit":
			cfg.ContextLimit = *contextLimit
		}
	})

	cfg.Inline = *inline
	cfg.Info = *info
	cfg.Structure = *structure
	cfg.Fields = *fields
	cfg.Query = *queryField
	cfg.Value = *value
	cfg.Operation = operation
	cfg.JSONPath = *jsonPath

	if err := cfg.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return cfg, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jv - JSON viewer and query tool

Usage: jv [options] [file]

Without batch options an interactive menu is started. Gzip and zstd
compressed files are decompressed automatically.

Options:
  -config FILE            Path to YAML config file (format, max_depth, context_limit, debug)
  -format FORMAT          Output format: text, json or yaml (default: text)
  -max-depth N            Maximum depth shown by the structure view (default: 5)
  -context-limit N        Show the enclosing object when it has at most N properties (default: 10)
  -debug                  Enable debug logging on stderr
  -h, -help               Show this help message

Batch options:
  -inline JSON            Load JSON from the given text instead of a file
  -info                   Print document information
  -structure              Print the document structure
  -fields                 List all field paths
  -query FIELD            Field name or dotted path to search for
  -value VALUE            Only report values matching VALUE
  -op OPERATION           equals, contains, starts_with, ends_with, regex, greater_than,
                          less_than, greater_than_or_equal, less_than_or_equal (or 1-9)
  -jsonpath EXPR          Select nodes with an RFC 9535 JSONPath expression

Examples:
  jv data.json                                  # Interactive menu
  jv -fields data.json                          # List all field paths
  jv -query user.name data.json                 # Find user.name and every "user.name" key
  jv -query age -value 30 -op greater_than data.json
  jv -format json -jsonpath '$.items[*].id' data.json
  jv -inline '{"a": {"b": 1}}' -query a.b`
}
