package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacoelho/jv/internal/document"
	"github.com/jacoelho/jv/internal/exit"
	"github.com/jacoelho/jv/internal/output"
	"github.com/jacoelho/jv/internal/query"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jv.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	configFile := writeConfig(t, "format: yaml\nmax_depth: 3\ncontext_limit: 4\n")

	tests := []struct {
		name        string
		args        []string
		want        Config
		wantErr     bool
		errContains string
	}{
		{
			name: "defaults interactive",
			args: []string{"jv"},
			want: Config{
				Format:       output.FormatText,
				MaxDepth:     document.DefaultMaxDepth,
				ContextLimit: output.DefaultContextLimit,
			},
		},
		{
			name: "file argument",
			args: []string{"jv", "data.json"},
			want: Config{
				File:         "data.json",
				MaxDepth:     document.DefaultMaxDepth,
				ContextLimit: output.DefaultContextLimit,
			},
		},
		{
			name: "query batch",
			args: []string{"jv", "-query", "age", "-value", "30", "-op", "greater_than", "-format", "json", "data.json"},
			want: Config{
				File:         "data.json",
				Format:       output.FormatJSON,
				MaxDepth:     document.DefaultMaxDepth,
				ContextLimit: output.DefaultContextLimit,
				Query:        "age",
				Value:        "30",
				Operation:    query.GreaterThan,
			},
		},
		{
			name: "operation by menu number",
			args: []string{"jv", "-inline", `{"a":1}`, "-query", "a", "-value", "x", "-op", "2"},
			want: Config{
				Inline:       `{"a":1}`,
				MaxDepth:     document.DefaultMaxDepth,
				ContextLimit: output.DefaultContextLimit,
				Query:        "a",
				Value:        "x",
				Operation:    query.Contains,
			},
		},
		{
			name: "config file values",
			args: []string{"jv", "-config", configFile, "-structure", "data.json"},
			want: Config{
				File:         "data.json",
				ConfigFile:   configFile,
				Format:       output.FormatYAML,
				MaxDepth:     3,
				ContextLimit: 4,
				Structure:    true,
			},
		},
		{
			name: "flags override config file",
			args: []string{"jv", "-config", configFile, "-max-depth", "7", "-format", "text", "-debug", "data.json"},
			want: Config{
				File:         "data.json",
				ConfigFile:   configFile,
				Format:       output.FormatText,
				MaxDepth:     7,
				ContextLimit: 4,
				Debug:        true,
			},
		},
		{
			name: "all batch actions",
			args: []string{"jv", "-info", "-fields", "-jsonpath", "$.a", "data.json"},
			want: Config{
				File:         "data.json",
				MaxDepth:     document.DefaultMaxDepth,
				ContextLimit: output.DefaultContextLimit,
				Info:         true,
				Fields:       true,
				JSONPath:     "$.a",
			},
		},
		{
			name:        "too many files",
			args:        []string{"jv", "a.json", "b.json"},
			wantErr:     true,
			errContains: ErrTooManyArguments.Error(),
		},
		{
			name:        "file and inline",
			args:        []string{"jv", "-inline", "{}", "a.json"},
			wantErr:     true,
			errContains: ErrConflictingInput.Error(),
		},
		{
			name:        "negative depth",
			args:        []string{"jv", "-max-depth", "-1"},
			wantErr:     true,
			errContains: ErrInvalidMaxDepth.Error(),
		},
		{
			name:        "negative context limit",
			args:        []string{"jv", "-context-limit", "-2"},
			wantErr:     true,
			errContains: ErrInvalidContextLimit.Error(),
		},
		{
			name:        "value without query",
			args:        []string{"jv", "-value", "x", "a.json"},
			wantErr:     true,
			errContains: ErrValueWithoutQuery.Error(),
		},
		{
			name:        "batch without document",
			args:        []string{"jv", "-fields"},
			wantErr:     true,
			errContains: ErrActionWithoutDocument.Error(),
		},
		{
			name:        "unknown operation",
			args:        []string{"jv", "-query", "a", "-op", "like", "a.json"},
			wantErr:     true,
			errContains: "unsupported operation",
		},
		{
			name:        "unknown format",
			args:        []string{"jv", "-format", "xml"},
			wantErr:     true,
			errContains: "unknown output format",
		},
		{
			name:        "unknown flag",
			args:        []string{"jv", "-nope"},
			wantErr:     true,
			errContains: "failed to parse arguments",
		},
		{
			name:        "missing config file",
			args:        []string{"jv", "-config", filepath.Join(t.TempDir(), "missing.yaml")},
			wantErr:     true,
			errContains: "failed to load config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, result := Parse(tt.args)

			if tt.wantErr {
				if result == nil {
					t.Fatalf("Parse() expected error, got config %+v", cfg)
				}
				if result.ExitCode != exit.CodeFailure {
					t.Errorf("Parse() ExitCode = %d, want %d", result.ExitCode, exit.CodeFailure)
				}
				if !strings.Contains(result.Message, tt.errContains) {
					t.Errorf("Parse() message = %q, want it to contain %q", result.Message, tt.errContains)
				}
				return
			}

			if result != nil {
				t.Fatalf("Parse() unexpected exit result: %s", result.Message)
			}
			if *cfg != tt.want {
				t.Errorf("Parse() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestParseHelpFlag(t *testing.T) {
	for _, flag := range []string{"-h", "-help", "--help"} {
		cfg, result := Parse([]string{"jv", flag})
		if cfg != nil {
			t.Errorf("Parse(%s) returned config", flag)
		}
		if result == nil || result.ExitCode != exit.CodeSuccess {
			t.Fatalf("Parse(%s) result = %+v, want success", flag, result)
		}
		if !strings.Contains(result.Message, "Usage: jv") {
			t.Errorf("Parse(%s) message should contain usage", flag)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "all keys", content: "format: json\nmax_depth: 2\ncontext_limit: 0\ndebug: true\n"},
		{name: "empty", content: ""},
		{name: "unknown key", content: "colour: red\n", wantErr: true},
		{name: "wrong type", content: "max_depth: deep\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfigFile(writeConfig(t, tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadConfigFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFileConfigApply(t *testing.T) {
	depth, limit, debug := 2, 0, true
	cfg := &Config{MaxDepth: document.DefaultMaxDepth, ContextLimit: output.DefaultContextLimit}

	fc := fileConfig{Format: "json", MaxDepth: &depth, ContextLimit: &limit, Debug: &debug}
	if err := fc.apply(cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Format != output.FormatJSON || cfg.MaxDepth != 2 || cfg.ContextLimit != 0 || !cfg.Debug {
		t.Errorf("apply() = %+v", cfg)
	}

	if err := (fileConfig{Format: "csv"}).apply(cfg); err == nil {
		t.Error("apply() with unknown format should fail")
	}
}

func TestConfigBatchAndRequest(t *testing.T) {
	cfg := &Config{Query: "a.b", Value: "1", Operation: query.LessThan}
	if !cfg.Batch() {
		t.Error("Batch() = false with -query")
	}

	req := cfg.Request()
	if req.FieldPath != "a.b" || req.SearchValue != "1" || req.Operation != query.LessThan {
		t.Errorf("Request() = %+v", req)
	}

	if (&Config{}).Batch() {
		t.Error("Batch() = true with no actions")
	}
}

func TestUsage(t *testing.T) {
	usage := Usage()
	for _, want := range []string{"-query FIELD", "-jsonpath EXPR", "-format FORMAT", "greater_than_or_equal"} {
		if !strings.Contains(usage, want) {
			t.Errorf("Usage() missing %q", want)
		}
	}
}
