package extract

import (
	"context"
)

// ParagraphSource is Stage 1: file -> ordered, non-empty, trimmed paragraphs.
type ParagraphSource interface {
	Paragraphs(ctx context.Context, path string) ([]string, error)
}

// Record is the six-field outcome consumed by the filer. Empty means not found.
type Record struct {
	PatientName       string `json:"patient_name"`
	CreationDate      string `json:"creation_date"`
	TranscriptionDate string `json:"transcription_date"`
	Transcriber       string `json:"transcriber"`
	ExamType          string `json:"exam_type"`
	Doctor            string `json:"doctor"`
}

// Result carries the record plus the intermediate scan state, for diagnostics.
type Result struct {
	Record
	Fields     PartialRecord `json:"fields"`
	Body       string        `json:"body"`
	LastMatch  int           `json:"last_match"`
	Paragraphs int           `json:"paragraphs"`
}
