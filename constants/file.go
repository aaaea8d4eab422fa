package constants

import "strings"

// Document formats understood by the paragraph reader.
const (
	DOCX = "DOCX"
	DOC  = "DOC"
	PDF  = "PDF"
	TXT  = "TXT"
)

// DocumentExtensions holds the document half of a drop (lowercase, without '.').
var DocumentExtensions = map[string]struct{}{
	"doc":  {},
	"docx": {},
	"pdf":  {},
	"txt":  {},
}

// AudioExtensions holds the audio half of a drop.
var AudioExtensions = map[string]struct{}{
	"mp3":  {},
	"wav":  {},
	"m4a":  {},
	"ogg":  {},
	"flac": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsDocumentExt reports whether ext names a document.
func IsDocumentExt(ext string) bool {
	_, ok := DocumentExtensions[NormalizeExt(ext)]
	return ok
}

// IsAudioExt reports whether ext names an audio recording.
func IsAudioExt(ext string) bool {
	_, ok := AudioExtensions[NormalizeExt(ext)]
	return ok
}

// MapExtToFormat returns the document format for ext, or "" if unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "docx":
		return DOCX
	case "doc":
		return DOC
	case "pdf":
		return PDF
	case "txt":
		return TXT
	default:
		return ""
	}
}
