package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joseph-ayodele/report-filer/internal/extract"
)

func TestEnsureWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "manifest.csv")
	m := New(path)
	if err := m.Ensure(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "ID,patient_name,creation_date,transcription_date,transcriber,exam_type,doctor,folder_address\n"
	if string(b) != want {
		t.Fatalf("got %q", b)
	}

	// an existing non-empty manifest is left alone
	if err := os.WriteFile(path, []byte("ID\n5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.Ensure(); err != nil {
		t.Fatal(err)
	}
	if b, _ := os.ReadFile(path); string(b) != "ID\n5\n" {
		t.Fatalf("manifest overwritten: %q", b)
	}
}

func TestEnsureRewritesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := New(path).Ensure(); err != nil {
		t.Fatal(err)
	}
	if b, _ := os.ReadFile(path); !strings.HasPrefix(string(b), "ID,") {
		t.Fatalf("header missing: %q", b)
	}
}

func TestNextID(t *testing.T) {
	cases := []struct {
		name    string
		content *string
		want    int
	}{
		{"missing file", nil, 1},
		{"empty file", ptr(""), 1},
		{"header only", ptr("ID,patient_name\n"), 1},
		{"max plus one", ptr("ID,patient_name\n3,a\n10,b\n4,c\n"), 11},
		{"skips garbage", ptr("ID,patient_name\nx,a\n\n2,b\n"), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.csv")
			if tc.content != nil {
				if err := os.WriteFile(path, []byte(*tc.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			got, err := New(path).NextID()
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("NextID = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAppendAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	m := New(path)
	rec := extract.Record{
		PatientName:       "Perez, Juan",
		CreationDate:      "14/03/2023",
		TranscriptionDate: "15/03/2023",
		Transcriber:       "OROZCO BARTOLO OSBALDO",
		ExamType:          "TOMOGRAFIA",
		Doctor:            "SANDRA LUCIA LOPEZ SIERRA",
	}
	for id := 1; id <= 2; id++ {
		if err := m.Append(Row{ID: id, Record: rec, Folder: "/tree"}); err != nil {
			t.Fatal(err)
		}
	}
	next, err := m.NextID()
	if err != nil || next != 3 {
		t.Fatalf("NextID = %d, %v", next, err)
	}
	rows, err := m.Rows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1].ID != 2 || rows[0].Record != rec || rows[0].Folder != "/tree" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func ptr(s string) *string { return &s }
