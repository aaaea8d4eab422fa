package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/report-filer/internal/manifest"
	"github.com/joseph-ayodele/report-filer/internal/repository"
)

const (
	manifestSheet = "Manifest"
	registrySheet = "Registry"
	dateLayout    = "02/01/2006"
)

// Service produces XLSX workbooks from the manifest and, when available,
// the drop registry.
type Service struct {
	manifest *manifest.Manifest
	drops    repository.DropRepository
	logger   *slog.Logger
}

func NewService(m *manifest.Manifest, drops repository.DropRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{manifest: m, drops: drops, logger: logger}
}

// ExportXLSX returns a workbook with the manifest rows whose transcription
// date falls in [from, to]. A nil bound is open. Rows with an unparsable
// date are kept only when no bound is given.
func (s *Service) ExportXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	rows, err := s.manifest.Rows()
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	rows = filterRows(rows, dateOnly(from), dateOnly(to))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", manifestSheet); err != nil {
		return nil, err
	}
	headers := append([]string(nil), manifest.Header...)
	writeRow(f, manifestSheet, 1, toAny(headers))
	for i, r := range rows {
		writeRow(f, manifestSheet, i+2, []any{
			r.ID,
			r.Record.PatientName,
			r.Record.CreationDate,
			r.Record.TranscriptionDate,
			r.Record.Transcriber,
			r.Record.ExamType,
			r.Record.Doctor,
			r.Folder,
		})
	}
	_ = f.SetColWidth(manifestSheet, "A", "A", 8)  // id
	_ = f.SetColWidth(manifestSheet, "B", "B", 28) // patient
	_ = f.SetColWidth(manifestSheet, "C", "D", 14) // dates
	_ = f.SetColWidth(manifestSheet, "E", "G", 30) // rosters
	_ = f.SetColWidth(manifestSheet, "H", "H", 80) // folder

	registryRows := 0
	if s.drops != nil {
		if registryRows, err = s.writeRegistry(ctx, f); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"registry_rows", registryRows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeRegistry(ctx context.Context, f *excelize.File) (int, error) {
	recs, err := s.drops.List(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("query registry: %w", err)
	}
	if _, err := f.NewSheet(registrySheet); err != nil {
		return 0, err
	}
	writeRow(f, registrySheet, 1, []any{
		"Drop ID", "Status", "Manifest ID", "Patient", "Exam Type",
		"Document SHA-256", "Audio SHA-256", "Folder", "Reason", "Recorded At",
	})
	for i, r := range recs {
		writeRow(f, registrySheet, i+2, []any{
			r.ID.String(),
			string(r.Status),
			r.ManifestID,
			r.PatientName,
			r.ExamType,
			r.DocumentHash,
			r.AudioHash,
			r.Folder,
			truncate(r.Reason, 240),
			r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	_ = f.SetColWidth(registrySheet, "A", "A", 38)
	_ = f.SetColWidth(registrySheet, "F", "G", 66)
	_ = f.SetColWidth(registrySheet, "H", "I", 60)
	return len(recs), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func filterRows(rows []manifest.Row, from, to *time.Time) []manifest.Row {
	if from == nil && to == nil {
		return rows
	}
	var out []manifest.Row
	for _, r := range rows {
		d, err := time.Parse(dateLayout, r.Record.TranscriptionDate)
		if err != nil {
			continue
		}
		if from != nil && d.Before(*from) {
			continue
		}
		if to != nil && d.After(*to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
