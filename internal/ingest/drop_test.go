package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestInspect(t *testing.T) {
	cases := []struct {
		name  string
		files []string
		want  State
	}{
		{"empty", nil, StateEmpty},
		{"hidden only", []string{".DS_Store"}, StateEmpty},
		{"lone document", []string{"report.docx"}, StateWaiting},
		{"lone audio", []string{"dictation.MP3"}, StateWaiting},
		{"lone other", []string{"notes.xlsx"}, StateInvalid},
		{"pair", []string{"report.docx", "dictation.wav", ".hidden"}, StatePair},
		{"two documents", []string{"a.docx", "b.pdf"}, StateInvalid},
		{"two audios", []string{"a.mp3", "b.ogg"}, StateInvalid},
		{"audio and other", []string{"a.mp3", "b.png"}, StateInvalid},
		{"three files", []string{"a.docx", "b.mp3", "c.m4a"}, StateInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tc.files...)
			got, err := Inspect(dir)
			if err != nil {
				t.Fatalf("inspect: %v", err)
			}
			if got.State != tc.want {
				t.Fatalf("state = %s, want %s (reason %q)", got.State, tc.want, got.Reason)
			}
			if tc.want == StateInvalid && got.Reason == "" {
				t.Fatal("invalid state without reason")
			}
		})
	}
}

func TestInspectPairAssignment(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "z.pdf", "a.flac")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := Inspect(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Drop.Document != filepath.Join(dir, "z.pdf") || got.Drop.Audio != filepath.Join(dir, "a.flac") {
		t.Fatalf("unexpected drop %+v", got.Drop)
	}
	if got.Oldest.IsZero() {
		t.Fatal("oldest mod time not set")
	}
}

func TestInspectMissingDir(t *testing.T) {
	if _, err := Inspect(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error")
	}
}

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"a.DOCX": KindDocument,
		"a.txt":  KindDocument,
		"a.doc":  KindDocument,
		"a.wav":  KindAudio,
		"a.flac": KindAudio,
		"a.jpg":  KindOther,
		"noext":  KindOther,
	}
	for path, want := range cases {
		if got := KindOf(path); got != want {
			t.Errorf("KindOf(%q) = %s, want %s", path, got, want)
		}
	}
}
