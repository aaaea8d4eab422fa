package rosters

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joseph-ayodele/report-filer/internal/common"
	"github.com/joseph-ayodele/report-filer/internal/extract"
)

func TestDefaultRosters(t *testing.T) {
	cfg := Default()
	if cfg.Transcribers.Len() != 7 || cfg.Doctors.Len() != 16 || cfg.ExamTypes.Len() != 36 {
		t.Fatalf("unexpected sizes: %d %d %d", cfg.Transcribers.Len(), cfg.Doctors.Len(), cfg.ExamTypes.Len())
	}
	if first := cfg.Doctors.Entries()[0]; first.Name != "VICTOR HUGO RUIZ GRANADA" {
		t.Fatalf("declaration order lost, first doctor %q", first.Name)
	}
}

func TestDefaultEndToEnd(t *testing.T) {
	paras := []string{
		"Paciente: Juan Perez",
		"Procedimiento: Tomografia de torax",
		"Transcripcion: realizado 15/03/2023 por OROZCO BARTOLO OSBALDO",
		"Dra. Sandra Lopez",
	}
	got := extract.Assemble(paras, Default()).Record
	want := extract.Record{
		PatientName:       "Juan Perez",
		TranscriptionDate: "15/03/2023",
		Transcriber:       "OROZCO BARTOLO OSBALDO",
		ExamType:          "TOMOGRAFIA",
		Doctor:            "SANDRA LUCIA LOPEZ SIERRA",
	}
	if got != want {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestDefaultDoctorAccentInsensitive(t *testing.T) {
	d := Default().Doctors
	a := d.Classify("MÉDICO: Dr. ÁLVAREZ")
	if a != d.Classify("medico: dr alvarez") || a != "OSCAR ANDRES ALVAREZ GOMEZ" {
		t.Fatalf("got %q", a)
	}
}

func TestParseOverrides(t *testing.T) {
	doc := `{
		"labels": {"patient": "nombre"},
		"signature_markers": ["firma"],
		"transcribers": [{"name": "ANA MARIA"}],
		"doctors": [{"name": "DR X", "keywords": ["XAVIER"]}],
		"exam_types": [{"name": "RX", "keywords": ["RAYOS"]}]
	}`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res := extract.Assemble([]string{"Nombre: Pepe", "texto", "Firma: Xavier"}, cfg)
	if res.PatientName != "Pepe" || res.Doctor != "DR X" || res.Body != "texto" {
		t.Fatalf("got %+v body=%q", res.Record, res.Body)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"missing roster":  `{"transcribers": [{"name": "A"}], "doctors": [{"name": "B"}]}`,
		"empty name":      `{"transcribers": [{"name": ""}], "doctors": [{"name": "B"}], "exam_types": [{"name": "C"}]}`,
		"unknown label":   `{"labels": {"nurse": "x"}, "transcribers": [{"name": "A"}], "doctors": [{"name": "B"}], "exam_types": [{"name": "C"}]}`,
		"not json":        `{`,
		"duplicate entry": `{"transcribers": [{"name": "A"}, {"name": "a"}], "doctors": [{"name": "B"}], "exam_types": [{"name": "C"}]}`,
		"bad label regex": `{"labels": {"entity": "("}, "transcribers": [{"name": "A"}], "doctors": [{"name": "B"}], "exam_types": [{"name": "C"}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			if common.CodeOf(err) != "ROSTER_ERROR" {
				t.Fatalf("expected ROSTER_ERROR, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg.ExamTypes.Len() == 0 {
		t.Fatalf("default load: %v", err)
	}

	path := filepath.Join(t.TempDir(), "rosters.json")
	body := strings.Replace(string(DefaultJSON()), `"CESAR YEPES"`, `"CESAR AUGUSTO YEPES"`, 1)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if got := cfg.Doctors.Classify("Dr. Yepes"); got != "CESAR AUGUSTO YEPES" {
		t.Fatalf("got %q", got)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}
