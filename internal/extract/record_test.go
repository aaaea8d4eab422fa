package extract

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/joseph-ayodele/report-filer/internal/common"
)

type fakeSource struct {
	paras []string
	err   error
}

func (f fakeSource) Paragraphs(context.Context, string) ([]string, error) {
	return f.paras, f.err
}

func testConfig() Config {
	return Config{
		Labels:           DefaultLabels(),
		SignatureMarkers: DefaultSignatureMarkers,
		Transcribers: NewRoster("transcribers", []Entry{
			{Name: "GALVIS MORALES JENIFFER"},
			{Name: "OROZCO BARTOLO OSBALDO"},
		}),
		Doctors: doctorRoster(),
		ExamTypes: NewRoster("exam_types", []Entry{
			{Name: "ECOGRAFIA", Keywords: []string{"ECOGRAFIA", "ECO"}},
			{Name: "TOMOGRAFIA", Keywords: []string{"TOMOGRAFIA", "TAC"}},
		}),
	}
}

func TestAssembleEndToEnd(t *testing.T) {
	paras := []string{
		"Paciente: Juan Perez",
		"Procedimiento: Tomografia de torax",
		"Transcripcion: realizado 15/03/2023 por OROZCO BARTOLO OSBALDO",
		"Dra. Sandra Lopez",
	}
	got := Assemble(paras, testConfig())
	want := Record{
		PatientName:       "Juan Perez",
		TranscriptionDate: "15/03/2023",
		Transcriber:       "OROZCO BARTOLO OSBALDO",
		ExamType:          "TOMOGRAFIA",
		Doctor:            "SANDRA LUCIA LOPEZ SIERRA",
	}
	if got.Record != want {
		t.Fatalf("record = %+v, want %+v", got.Record, want)
	}
	if got.LastMatch != 2 || got.Body != "" {
		t.Fatalf("last=%d body=%q", got.LastMatch, got.Body)
	}
}

func TestAssembleDateNeedsBoundaryAfterFolding(t *testing.T) {
	paras := []string{"Transcripcion: realizadó15/03/2023 por OROZCO BARTOLO OSBALDO"}
	got := Assemble(paras, testConfig())
	if got.Record.TranscriptionDate != "" {
		t.Fatalf("transcription date = %q, want empty", got.Record.TranscriptionDate)
	}
	if got.Record.Transcriber != "OROZCO BARTOLO OSBALDO" {
		t.Fatalf("transcriber = %q", got.Record.Transcriber)
	}
}

func TestAssembleNoFields(t *testing.T) {
	paras := []string{"Informe libre", "sin etiquetas", "Atentamente"}
	got := Assemble(paras, testConfig())
	if got.PatientName != "" || got.CreationDate != "" || got.ExamType != "" || got.TranscriptionDate != "" || got.Transcriber != "" {
		t.Fatalf("expected empty source-derived fields, got %+v", got.Record)
	}
	if got.LastMatch != -1 || got.Body != "Informe libre\nsin etiquetas" {
		t.Fatalf("last=%d body=%q", got.LastMatch, got.Body)
	}
}

func TestExtractorUnreadable(t *testing.T) {
	boom := errors.New("zip: not a valid zip file")
	e := NewExtractor(fakeSource{err: boom}, testConfig(), nil)
	_, err := e.Extract(context.Background(), "x.docx")
	if !errors.Is(err, common.ErrUnreadableDocument) || !errors.Is(err, boom) {
		t.Fatalf("unexpected error chain: %v", err)
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNREADABLE_DOCUMENT" {
		t.Fatalf("expected AppError, got %T", err)
	}
}

func TestExtractorExtract(t *testing.T) {
	e := NewExtractor(fakeSource{paras: []string{"Fecha: 02/03/2024", "Procedimiento: ECO renal", "Dr. Ruiz"}}, testConfig(), nil)
	rec, err := e.Extract(context.Background(), "x.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if rec.CreationDate != "02/03/2024" || rec.ExamType != "ECOGRAFIA" || rec.Doctor != "VICTOR HUGO RUIZ GRANADA" {
		t.Fatalf("record = %+v", rec)
	}
}

func TestExtractorLogsDropID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := NewExtractor(fakeSource{err: errors.New("bad")}, testConfig(), logger)

	ctx := common.WithDropID(context.Background(), "drop-42")
	if _, err := e.Extract(ctx, "x.docx"); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(buf.String(), `"drop_id":"drop-42"`) {
		t.Fatalf("log output missing drop_id: %s", buf.String())
	}
}
