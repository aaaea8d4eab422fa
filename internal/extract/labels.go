package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/report-filer/internal/textnorm"
)

// Label identifies one "label: value" field of a report header.
type Label string

const (
	LabelPatient        Label = "patient"
	LabelDocumentID     Label = "document_id"
	LabelEntity         Label = "entity"
	LabelProcedure      Label = "procedure"
	LabelCreationDate   Label = "creation_date"
	LabelReferralNumber Label = "referral_number"
	LabelTranscription  Label = "transcription"
)

// AllLabels is the fixed scan order.
var AllLabels = []Label{
	LabelPatient,
	LabelDocumentID,
	LabelEntity,
	LabelProcedure,
	LabelCreationDate,
	LabelReferralNumber,
	LabelTranscription,
}

// DefaultLabelTexts are regexp fragments matched against accent-folded,
// lower-cased paragraphs.
var DefaultLabelTexts = map[Label]string{
	LabelPatient:        `paciente`,
	LabelDocumentID:     `documento`,
	LabelEntity:         `entidad`,
	LabelProcedure:      `procedimiento`,
	LabelCreationDate:   `fecha`,
	LabelReferralNumber: `nro\s+remision`,
	LabelTranscription:  `transcripcion`,
}

type labelPattern struct {
	label Label
	re    *regexp.Regexp
}

// Labels is a compiled, ordered set of label patterns.
type Labels struct {
	patterns []labelPattern
}

// CompileLabels builds patterns in AllLabels order. Missing labels fall back
// to DefaultLabelTexts.
func CompileLabels(texts map[Label]string) (Labels, error) {
	var out Labels
	for _, l := range AllLabels {
		text := strings.TrimSpace(texts[l])
		if text == "" {
			text = DefaultLabelTexts[l]
		}
		re, err := regexp.Compile(`^(?:` + text + `)\s*:\s*(.*)$`)
		if err != nil {
			return Labels{}, fmt.Errorf("label %s: %w", l, err)
		}
		out.patterns = append(out.patterns, labelPattern{label: l, re: re})
	}
	return out, nil
}

// DefaultLabels compiles DefaultLabelTexts.
func DefaultLabels() Labels {
	l, err := CompileLabels(DefaultLabelTexts)
	if err != nil {
		panic(err)
	}
	return l
}

// Match tests one paragraph against the patterns in order; the first match wins.
// The value keeps the paragraph's spelling and case as written.
func (ls Labels) Match(paragraph string) (Label, string, bool) {
	raw := strings.TrimSpace(paragraph)
	normalized := strings.TrimSpace(textnorm.Lower(raw))
	for _, p := range ls.patterns {
		m := p.re.FindStringSubmatchIndex(normalized)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(normalized[m[2]:m[3]])
		if rawValue, ok := rawAfterLabel(raw, normalized[:m[2]]); ok {
			value = rawValue
		}
		return p.label, value, true
	}
	return "", "", false
}

// rawAfterLabel returns the text after the first ASCII colon of raw when
// everything up to that colon folds to the matched label prefix.
func rawAfterLabel(raw, matchedPrefix string) (string, bool) {
	i := strings.IndexByte(raw, ':')
	j := strings.LastIndexByte(matchedPrefix, ':')
	if i < 0 || j < 0 {
		return "", false
	}
	if textnorm.Lower(raw[:i+1]) != matchedPrefix[:j+1] {
		return "", false
	}
	return strings.TrimSpace(raw[i+1:]), true
}
