package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/report-filer/constants"
)

// Kind classifies an inbox file by extension.
type Kind int

const (
	KindOther Kind = iota
	KindDocument
	KindAudio
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindAudio:
		return "audio"
	default:
		return "other"
	}
}

// KindOf returns the kind of path.
func KindOf(path string) Kind {
	ext := filepath.Ext(path)
	switch {
	case constants.IsDocumentExt(ext):
		return KindDocument
	case constants.IsAudioExt(ext):
		return KindAudio
	default:
		return KindOther
	}
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
