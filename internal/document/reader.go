// Package document turns report files into ordered paragraph lists.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/report-filer/constants"
)

type Config struct {
	Pdftotext string // binary name or absolute path; empty -> native PDF parser
	Antiword  string // binary name or absolute path; if empty -> "antiword"

	MaxPages    int   // 0 = no limit
	MaxFileSize int64 // bytes; 0 = no limit
}

// Reader implements extract.ParagraphSource for docx, doc, pdf and txt files.
type Reader struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewReader(cfg Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Antiword == "" {
		cfg.Antiword = "antiword"
	}
	return &Reader{cfg: cfg, runner: ExecRunner{Logger: logger}, logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (r *Reader) WithRunner(run Runner) *Reader {
	cp := *r
	cp.runner = run
	return &cp
}

// Paragraphs picks a strategy based on file extension and returns the
// non-empty, trimmed paragraphs in document order.
func (r *Reader) Paragraphs(ctx context.Context, path string) ([]string, error) {
	start := time.Now()
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if r.cfg.MaxFileSize > 0 && info.Size() > r.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), r.cfg.MaxFileSize)
	}

	ext := constants.NormalizeExt(filepath.Ext(path))
	format := constants.MapExtToFormat(ext)
	r.logger.Debug("reading document", "path", path, "format", format)

	var raw []string
	switch format {
	case constants.DOCX:
		raw, err = readDocx(path)
	case constants.DOC:
		raw, err = r.readDoc(ctx, path)
	case constants.PDF:
		raw, err = r.readPDF(ctx, path)
	case constants.TXT:
		raw, err = readText(path)
	default:
		r.logger.Error("unsupported document extension", "extension", ext)
		return nil, fmt.Errorf("unsupported extension: %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s (%s): %w", path, format, err)
	}

	paras := CleanParagraphs(raw)
	r.logger.Debug("document read",
		"path", path,
		"paragraphs", len(paras),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return paras, nil
}

func (r *Reader) readDoc(ctx context.Context, path string) ([]string, error) {
	// antiword -w 0 keeps each paragraph on one line
	out, errb, err := r.runner.Run(ctx, r.cfg.Antiword, "-w", "0", path)
	if err != nil {
		return nil, fmt.Errorf("antiword: %w: %s", err, truncate(string(errb), 512))
	}
	return SplitLines(string(out)), nil
}
