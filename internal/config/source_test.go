package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestFileSource_Read(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "RMakefile.yml")
	if err := os.WriteFile(path, []byte("tasks: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src := FileSource(path)
	text, err := src.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "tasks: []\n" {
		t.Errorf("text = %q", text)
	}
	if src.Location() != path {
		t.Errorf("location = %q, want %q", src.Location(), path)
	}
}

func TestFileSource_DefaultPath(t *testing.T) {
	if got := FileSource("").Path; got != DefaultFile {
		t.Errorf("path = %q, want %q", got, DefaultFile)
	}
}

func TestFileSource_NotFound(t *testing.T) {
	src := FileSource(filepath.Join(t.TempDir(), "missing.yml"))
	_, err := src.Read()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestEmbeddedSource_Read(t *testing.T) {
	fsys := fstest.MapFS{
		"RMakefile": {Data: []byte("tasks:\n  - name: default\n")},
	}
	src := EmbeddedSource(fsys, "")
	text, err := src.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "default") {
		t.Errorf("text = %q", text)
	}
	if src.Location() != "embedded:RMakefile" {
		t.Errorf("location = %q", src.Location())
	}
}

func TestEmbeddedSource_NotFound(t *testing.T) {
	src := EmbeddedSource(fstest.MapFS{}, "RMakefile")
	_, err := src.Read()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
