package document

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

func (r *Reader) readPDF(ctx context.Context, path string) ([]string, error) {
	if r.cfg.Pdftotext != "" {
		return r.pdfToText(ctx, path)
	}
	return r.pdfNative(ctx, path)
}

func (r *Reader) pdfToText(ctx context.Context, path string) ([]string, error) {
	// pdftotext -enc UTF-8 -eol unix [-l N] <path> -
	args := []string{"-enc", "UTF-8", "-eol", "unix"}
	if r.cfg.MaxPages > 0 {
		args = append(args, "-l", fmt.Sprintf("%d", r.cfg.MaxPages))
	}
	args = append(args, path, "-")
	out, errb, err := r.runner.Run(ctx, r.cfg.Pdftotext, args...)
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w: %s", err, truncate(string(errb), 512))
	}
	return SplitLines(string(out)), nil
}

// pdfNative reads text rows with ledongthuc/pdf; each row is a paragraph.
func (r *Reader) pdfNative(ctx context.Context, path string) ([]string, error) {
	f, pr, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	total := pr.NumPage()
	if r.cfg.MaxPages > 0 && total > r.cfg.MaxPages {
		total = r.cfg.MaxPages
	}

	var lines []string
	for i := 1; i <= total; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := pr.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			r.logger.Warn("pdf page unreadable", "path", path, "page", i, "error", err)
			continue
		}
		for _, row := range rows {
			lines = append(lines, joinRow(row.Content))
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no text found in %d page(s)", total)
	}
	return lines, nil
}

// joinRow concatenates the text runs of one row. Rows carry no glyph widths,
// so a run placed at its own X position starts a new word: a space is added
// unless either side already has one. Runs sharing an X position (pieces of
// one show-text operation) are glued.
func joinRow(runs pdf.TextHorizontal) string {
	var b strings.Builder
	prevX := math.Inf(-1)
	for _, run := range runs {
		if run.S == "" {
			continue
		}
		if b.Len() > 0 && run.X > prevX && !endsWithSpace(b.String()) && !startsWithSpace(run.S) {
			b.WriteByte(' ')
		}
		b.WriteString(run.S)
		prevX = run.X
	}
	return b.String()
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
