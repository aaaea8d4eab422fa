package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/report-filer/internal/common"
	"github.com/joseph-ayodele/report-filer/internal/textnorm"
)

// Config is the read-only vocabulary the extractor works with.
type Config struct {
	Labels           Labels
	SignatureMarkers []string
	Transcribers     Roster
	Doctors          Roster
	ExamTypes        Roster
}

// Assemble runs the whole extraction over already-read paragraphs.
func Assemble(paragraphs []string, cfg Config) Result {
	fields, last := ScanFields(paragraphs, cfg.Labels)
	transcription := fields.Get(LabelTranscription)

	return Result{
		Record: Record{
			PatientName:       fields.Get(LabelPatient),
			CreationDate:      fields.Get(LabelCreationDate),
			TranscriptionDate: FindDate(textnorm.Fold(transcription)),
			Transcriber:       cfg.Transcribers.Classify(transcription),
			ExamType:          cfg.ExamTypes.Classify(fields.Get(LabelProcedure)),
			Doctor:            cfg.Doctors.ClassifyBottomUp(paragraphs),
		},
		Fields:     fields,
		Body:       CollectBody(paragraphs, last, cfg.SignatureMarkers),
		LastMatch:  last,
		Paragraphs: len(paragraphs),
	}
}

// Extractor reads a document and assembles its record. It holds no mutable
// state and may be shared.
type Extractor struct {
	src    ParagraphSource
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(src ParagraphSource, cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{src: src, cfg: cfg, logger: logger}
}

// Extract returns the six-field record for the document at path.
func (e *Extractor) Extract(ctx context.Context, path string) (Record, error) {
	res, err := e.Analyze(ctx, path)
	if err != nil {
		return Record{}, err
	}
	return res.Record, nil
}

// Analyze is Extract plus the intermediate scan state.
// A document that cannot be read yields an UNREADABLE_DOCUMENT error.
func (e *Extractor) Analyze(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	log := e.logger
	if id := common.DropIDFromContext(ctx); id != "" {
		log = log.With("drop_id", id)
	}
	paragraphs, err := e.src.Paragraphs(ctx, path)
	if err != nil {
		log.Error("extract.read.failed", "path", path, "error", err)
		return Result{}, common.NewAppError("UNREADABLE_DOCUMENT", path, fmt.Errorf("%w: %w", common.ErrUnreadableDocument, err))
	}

	res := Assemble(paragraphs, e.cfg)
	if res.LastMatch < 0 {
		log.Warn("extract.no_fields", "path", path, "paragraphs", len(paragraphs))
	}
	log.Debug("extract.ok",
		"path", path,
		"paragraphs", res.Paragraphs,
		"last_match", res.LastMatch,
		"transcriber", res.Transcriber,
		"exam_type", res.ExamType,
		"doctor", res.Doctor,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
