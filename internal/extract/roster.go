package extract

import (
	"strings"

	"github.com/joseph-ayodele/report-filer/internal/textnorm"
)

// Entry maps a canonical name to the keywords that identify it.
type Entry struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords,omitempty"`
}

// Roster is an ordered, read-only vocabulary. Declaration order is priority:
// when keywords of several entries appear in a text, the earliest entry wins.
type Roster struct {
	name    string
	entries []Entry
	folded  [][]string
}

// NewRoster copies entries. An entry without keywords is matched by each
// whitespace-separated token of its name.
func NewRoster(name string, entries []Entry) Roster {
	r := Roster{name: name}
	for _, e := range entries {
		kws := e.Keywords
		if len(kws) == 0 {
			kws = strings.Fields(e.Name)
		}
		kws = append([]string(nil), kws...)

		var folded []string
		for _, kw := range kws {
			if f := strings.TrimSpace(textnorm.Upper(kw)); f != "" {
				folded = append(folded, f)
			}
		}
		r.entries = append(r.entries, Entry{Name: e.Name, Keywords: kws})
		r.folded = append(r.folded, folded)
	}
	return r
}

// Name is the roster's label, used in logs.
func (r Roster) Name() string { return r.name }

// Len is the number of entries.
func (r Roster) Len() int { return len(r.entries) }

// Entries returns a copy of the entries in priority order.
func (r Roster) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = Entry{Name: e.Name, Keywords: append([]string(nil), e.Keywords...)}
	}
	return out
}

// Classify returns the first entry with a keyword contained in source, or "".
func (r Roster) Classify(source string) string {
	if source == "" {
		return ""
	}
	text := textnorm.Upper(source)
	for i, kws := range r.folded {
		for _, kw := range kws {
			if strings.Contains(text, kw) {
				return r.entries[i].Name
			}
		}
	}
	return ""
}

// ClassifyBottomUp scans paragraphs from last to first and returns the first
// non-empty classification. Signature blocks sit at the end of a report.
func (r Roster) ClassifyBottomUp(paragraphs []string) string {
	for i := len(paragraphs) - 1; i >= 0; i-- {
		if name := r.Classify(paragraphs[i]); name != "" {
			return name
		}
	}
	return ""
}
