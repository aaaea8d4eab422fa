package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// State is the verdict on the current inbox contents.
type State int

const (
	// StateEmpty means there is nothing to do.
	StateEmpty State = iota
	// StatePair means exactly one document and one audio file are present.
	StatePair
	// StateWaiting means a single valid file is waiting for its partner.
	StateWaiting
	// StateInvalid means the contents can never form a drop.
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePair:
		return "pair"
	case StateWaiting:
		return "waiting"
	default:
		return "invalid"
	}
}

// Drop is a document and its dictation audio.
type Drop struct {
	Document string
	Audio    string
}

// Files returns both paths, document first.
func (d Drop) Files() []string { return []string{d.Document, d.Audio} }

// Inspection describes one look at the inbox.
type Inspection struct {
	State  State
	Drop   Drop
	Files  []string  // visible files, sorted
	Oldest time.Time // earliest modification time among Files
	Reason string    // why the contents are invalid
}

// Inspect lists the visible regular files directly under dir and decides
// whether they form a drop. Hidden files and subdirectories are ignored.
func Inspect(dir string) (Inspection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Inspection{}, fmt.Errorf("read inbox: %w", err)
	}

	var out Inspection
	for _, e := range entries {
		if e.IsDir() || IsHidden(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// vanished between ReadDir and Info
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		out.Files = append(out.Files, filepath.Join(dir, e.Name()))
		if out.Oldest.IsZero() || info.ModTime().Before(out.Oldest) {
			out.Oldest = info.ModTime()
		}
	}
	sort.Strings(out.Files)

	switch len(out.Files) {
	case 0:
		out.State = StateEmpty
	case 1:
		if KindOf(out.Files[0]) == KindOther {
			out.State = StateInvalid
			out.Reason = fmt.Sprintf("unsupported file %s", filepath.Base(out.Files[0]))
		} else {
			out.State = StateWaiting
		}
	case 2:
		out.classifyPair()
	default:
		out.State = StateInvalid
		out.Reason = fmt.Sprintf("expected 2 files, found %d", len(out.Files))
	}
	return out, nil
}

func (in *Inspection) classifyPair() {
	for _, f := range in.Files {
		switch KindOf(f) {
		case KindDocument:
			if in.Drop.Document == "" {
				in.Drop.Document = f
				continue
			}
		case KindAudio:
			if in.Drop.Audio == "" {
				in.Drop.Audio = f
				continue
			}
		}
		in.Drop = Drop{}
		in.State = StateInvalid
		in.Reason = "expected one document and one audio file"
		return
	}
	in.State = StatePair
}
