package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
)

func TestRunFAQFromStdin(t *testing.T) {
	in := strings.NewReader("- \"What is GEO?: Optimizing pages for AI answer engines.\"\n")
	var out bytes.Buffer
	if err := run("FAQ", "-", false, in, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `"@type": "FAQPage"`) {
		t.Errorf("expected FAQPage markup:\n%s", got)
	}
	if !strings.Contains(got, `"name": "What is GEO?"`) {
		t.Errorf("expected the question:\n%s", got)
	}
}

func TestRunPersonFileWithTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "person.yaml")
	if err := os.WriteFile(path, []byte("name: Jane Smith\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := run("person", path, true, nil, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, `<script type="application/ld+json">`) {
		t.Errorf("expected a script element:\n%s", got)
	}
	if !strings.Contains(got, `"name": "Jane Smith"`) {
		t.Errorf("expected the person name:\n%s", got)
	}
}

func TestRunUnknownType(t *testing.T) {
	err := run("recipe", "-", false, strings.NewReader("name: x\n"), &bytes.Buffer{})
	if !errors.Is(err, internalerr.ErrUnknownSchemaType) {
		t.Errorf("expected ErrUnknownSchemaType, got %v", err)
	}
}

func TestRunMissingFile(t *testing.T) {
	if err := run("faq", "/nonexistent/faq.yaml", false, nil, &bytes.Buffer{}); err == nil {
		t.Error("missing input should fail")
	}
}
