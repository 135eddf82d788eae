package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const page = `<html><head><title>Knee Pain Recovery Guide for Runners</title></head><body>
<h1>Knee Pain Recovery</h1>
<p>Physical therapy helps runners recover from knee injuries and return to training safely.</p>
</body></html>`

func quiet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quiet.yaml")
	if err := os.WriteFile(path, []byte("log:\n  console:\n    enabled: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guide.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
	return path
}

func TestRunPrintsJSON(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), options{configPath: quiet(t)}, writePage(t), &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("stdout should be JSON: %v\n%s", err, out.String())
	}
	if decoded["file_type"] != "html" {
		t.Errorf("file_type = %v, want html", decoded["file_type"])
	}
}

func TestRunWritesReports(t *testing.T) {
	dir := t.TempDir()
	opts := options{configPath: quiet(t), outDir: dir, format: "json,md", skip: "Schema"}

	var out bytes.Buffer
	if err := run(context.Background(), opts, writePage(t), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{"audit_report.json", "audit_report.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "audit_report.html")); err == nil {
		t.Error("html was not requested")
	}
	if !strings.Contains(out.String(), "Partial score: schema did not run") {
		t.Errorf("summary should flag the skipped analyzer:\n%s", out.String())
	}
}

func TestRunRejectsBadFormat(t *testing.T) {
	err := run(context.Background(), options{configPath: quiet(t), format: "pdf"}, writePage(t), &bytes.Buffer{})
	if err == nil {
		t.Error("unknown format should fail")
	}
}

func TestRunUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), options{configPath: quiet(t)}, path, &bytes.Buffer{}); err == nil {
		t.Error("unsupported extension should fail")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" Entities, ,schema ")
	if len(got) != 2 || got[0] != "entities" || got[1] != "schema" {
		t.Errorf("splitList = %v", got)
	}
	if splitList("") != nil {
		t.Error("empty input should give nil")
	}
}
