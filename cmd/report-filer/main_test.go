package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joseph-ayodele/report-filer/internal/common"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, common.LogConfig{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("unexpected log output %q", out)
	}

	buf.Reset()
	newLogger(&buf, common.LogConfig{Level: "bogus", Format: "text"}).Info("fallback")
	if !strings.Contains(buf.String(), "msg=fallback") {
		t.Fatalf("unexpected text output %q", buf.String())
	}
}

func TestExpandDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.pdf", "a.docx", "audio.mp3", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "audio.mp3")
	got, err := expandDocuments([]string{dir, single})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.docx"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "notes.txt"),
		single,
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v, want %v", got, want)
	}
	if _, err := expandDocuments([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestParseDay(t *testing.T) {
	if d, err := parseDay(""); d != nil || err != nil {
		t.Fatalf("empty: %v %v", d, err)
	}
	d, err := parseDay("2023-03-15")
	if err != nil || d.Day() != 15 {
		t.Fatalf("got %v %v", d, err)
	}
	if _, err := parseDay("15/03/2023"); err == nil {
		t.Fatal("expected error")
	}
}
