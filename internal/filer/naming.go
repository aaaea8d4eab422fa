package filer

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/report-filer/internal/extract"
	"github.com/joseph-ayodele/report-filer/internal/textnorm"
)

var reUnsafe = regexp.MustCompile(`[^a-z0-9_]+`)

// SafePart folds accents, turns spaces into underscores, lowercases and
// drops everything outside [a-z0-9_].
func SafePart(s string) string {
	s = strings.ReplaceAll(textnorm.Fold(s), " ", "_")
	return reUnsafe.ReplaceAllString(strings.ToLower(s), "")
}

// DateParts splits a DD/MM/YYYY date into year, month and day. Anything
// else yields the 0000/00/00 placeholders.
func DateParts(date string) (year, month, day string) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return "0000", "00", "00"
	}
	return parts[2], parts[1], parts[0]
}

// TargetFolder is <tree>/<Transcriber>/<Doctor>/<ExamType>/<YYYY>/<MM>/<DD>.
func TargetFolder(tree string, rec extract.Record) string {
	year, month, day := DateParts(rec.TranscriptionDate)
	return filepath.Join(
		tree,
		pathPart(rec.Transcriber),
		pathPart(rec.Doctor),
		pathPart(rec.ExamType),
		pathPart(year),
		pathPart(month),
		pathPart(day),
	)
}

// FileName is <patient>_<exam>_<id><ext> with the extension lowercased.
func FileName(rec extract.Record, id int, ext string) string {
	return SafePart(rec.PatientName) + "_" + SafePart(rec.ExamType) + "_" + strconv.Itoa(id) + strings.ToLower(ext)
}

// pathPart keeps a roster name from escaping its folder level.
func pathPart(s string) string {
	s = strings.NewReplacer("/", "-", `\`, "-").Replace(strings.TrimSpace(s))
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}
