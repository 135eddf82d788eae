package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/geoaudit/pkg/geoaudit/audit"
	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Keywords.TopNPrimary != 10 || cfg.Keywords.TopNSemantic != 15 || cfg.Keywords.TopNLongTail != 10 {
		t.Errorf("unexpected keyword sizes: %+v", cfg.Keywords)
	}
	if cfg.Keywords.PriorityWords != 100 {
		t.Errorf("PriorityWords = %d, want 100", cfg.Keywords.PriorityWords)
	}
	if cfg.Weights[audit.Metadata] != 0.30 {
		t.Errorf("metadata weight = %v, want 0.30", cfg.Weights[audit.Metadata])
	}
	if cfg.Report.Formats != "all" || cfg.Report.OutputDir != "" {
		t.Errorf("unexpected report config: %+v", cfg.Report)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "geoaudit.yaml", `
weights:
  schema: 0.2
keywords:
  top_n_primary: 5
report:
  formats: json,md
platform:
  author:
    name: Dr. Jane Smith
    credentials: DPT
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Weights[audit.Schema] != 0.2 {
		t.Errorf("schema weight = %v, want 0.2", cfg.Weights[audit.Schema])
	}
	if cfg.Weights[audit.Metadata] != 0.30 {
		t.Errorf("metadata weight should keep default, got %v", cfg.Weights[audit.Metadata])
	}
	if cfg.Keywords.TopNPrimary != 5 || cfg.Keywords.TopNSemantic != 15 {
		t.Errorf("unexpected keyword sizes: %+v", cfg.Keywords)
	}
	if cfg.Report.Formats != "json,md" {
		t.Errorf("Formats = %q", cfg.Report.Formats)
	}
	if cfg.Platform.Author.Name != "Dr. Jane Smith" || cfg.Platform.Author.Credentials != "DPT" {
		t.Errorf("unexpected author: %+v", cfg.Platform.Author)
	}
	if !cfg.Platform.AddReferences {
		t.Error("platform toggles should keep their defaults")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, LogLevelInfo)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "bad.yaml", "keywords:\n  top_n_everything: 3\n"))
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/geoaudit.yaml"); err == nil {
		t.Error("should error on missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative weight", func(c *Config) { c.Weights[audit.Content] = -0.1 }},
		{"zero weights", func(c *Config) { c.Weights = audit.Weights{audit.Content: 0} }},
		{"top n below one", func(c *Config) { c.Keywords.TopNSemantic = 0 }},
		{"priority words", func(c *Config) { c.Keywords.PriorityWords = -5 }},
		{"unknown format", func(c *Config) { c.Report.Formats = "pdf" }},
		{"snippet words", func(c *Config) { c.Voice.SnippetMaxWords = 0 }},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"file without path", func(c *Config) { c.Log.File.Enabled = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEOAUDIT_LOG_LEVEL", "debug")
	t.Setenv("GEOAUDIT_LOG_FILE", "/tmp/geoaudit.log")
	t.Setenv("GEOAUDIT_OUTPUT_DIR", "reports")
	t.Setenv("GEOAUDIT_TOP_N_LONGTAIL", "4")
	t.Setenv("GEOAUDIT_TOP_N_PRIMARY", "not-a-number")
	t.Setenv("GEOAUDIT_WEIGHT_ENTITIES", "0")
	t.Setenv("GEOAUDIT_AUTHOR", "Sam Lee")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.Log.Level != LogLevelDebug {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if !cfg.Log.File.Enabled || cfg.Log.File.Path != "/tmp/geoaudit.log" {
		t.Errorf("unexpected file log config: %+v", cfg.Log.File)
	}
	if cfg.Report.OutputDir != "reports" {
		t.Errorf("OutputDir = %q", cfg.Report.OutputDir)
	}
	if cfg.Keywords.TopNLongTail != 4 {
		t.Errorf("TopNLongTail = %d, want 4", cfg.Keywords.TopNLongTail)
	}
	if cfg.Keywords.TopNPrimary != 10 {
		t.Errorf("invalid int should keep default, got %d", cfg.Keywords.TopNPrimary)
	}
	if w, ok := cfg.Weights[audit.Entities]; !ok || w != 0 {
		t.Errorf("entities weight = %v (set %v), want 0", w, ok)
	}
	if cfg.Platform.Author.Name != "Sam Lee" {
		t.Errorf("Author.Name = %q", cfg.Platform.Author.Name)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("env overlay should validate: %v", err)
	}
}

func TestLogVerbose(t *testing.T) {
	cfg := Default()
	cfg.Log.Console.Level = LogLevelWarn
	cfg.Log.File.Level = LogLevelError

	cfg.Log.Verbose()

	if cfg.Log.Level != LogLevelDebug || cfg.Log.Console.Level != LogLevelDebug {
		t.Errorf("verbose should raise global and console levels: %+v", cfg.Log)
	}
	if cfg.Log.File.Level != LogLevelError {
		t.Errorf("file level should be kept, got %q", cfg.Log.File.Level)
	}

	unset := Default()
	unset.Log.Verbose()
	if unset.Log.Console.Level != "" {
		t.Errorf("unset console level should keep following the global one, got %q", unset.Log.Console.Level)
	}
}

func TestLoadStoplist(t *testing.T) {
	sl, err := LoadStoplist(writeFile(t, "stop.yaml", "terms:\n  - the\n  - clinic\n"))
	if err != nil {
		t.Fatalf("LoadStoplist: %v", err)
	}
	if len(sl.Terms) != 2 || sl.Terms[1] != "clinic" {
		t.Errorf("unexpected terms: %v", sl.Terms)
	}
}
