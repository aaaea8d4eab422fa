// Package rosters loads the vocabularies and label patterns the extractor
// classifies against. The embedded defaults can be replaced by a file
// without rebuilding.
package rosters

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/report-filer/internal/common"
	"github.com/joseph-ayodele/report-filer/internal/extract"
)

//go:embed defaults.json
var defaultsJSON []byte

// File is the on-disk shape of a roster document. Arrays keep declaration
// order, which is the match priority.
type File struct {
	Labels           map[extract.Label]string `json:"labels,omitempty"`
	SignatureMarkers []string                 `json:"signature_markers,omitempty"`
	Transcribers     []extract.Entry          `json:"transcribers"`
	Doctors          []extract.Entry          `json:"doctors"`
	ExamTypes        []extract.Entry          `json:"exam_types"`
}

// DefaultJSON returns a copy of the embedded roster document.
func DefaultJSON() []byte {
	return append([]byte(nil), defaultsJSON...)
}

// Default parses the embedded rosters.
func Default() extract.Config {
	cfg, err := Parse(defaultsJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded rosters: %v", err))
	}
	return cfg
}

// Load reads path, or returns Default when path is empty.
func Load(path string) (extract.Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return extract.Config{}, common.NewAppError("ROSTER_ERROR", "read roster file", err)
	}
	return Parse(b)
}

// Parse validates data against the roster schema and compiles it.
func Parse(data []byte) (extract.Config, error) {
	if err := Validate(data); err != nil {
		return extract.Config{}, common.NewAppError("ROSTER_ERROR", "invalid roster document", fmt.Errorf("%w: %w", common.ErrInvalidInput, err))
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return extract.Config{}, common.NewAppError("ROSTER_ERROR", "decode roster document", err)
	}
	return f.Compile()
}

// Compile turns a decoded File into an extractor configuration.
func (f File) Compile() (extract.Config, error) {
	for name, entries := range map[string][]extract.Entry{
		"transcribers": f.Transcribers,
		"doctors":      f.Doctors,
		"exam_types":   f.ExamTypes,
	} {
		if err := checkUnique(name, entries); err != nil {
			return extract.Config{}, common.NewAppError("ROSTER_ERROR", err.Error(), common.ErrInvalidInput)
		}
	}

	labels, err := extract.CompileLabels(f.Labels)
	if err != nil {
		return extract.Config{}, common.NewAppError("ROSTER_ERROR", "compile labels", err)
	}
	markers := f.SignatureMarkers
	if len(markers) == 0 {
		markers = extract.DefaultSignatureMarkers
	}

	return extract.Config{
		Labels:           labels,
		SignatureMarkers: append([]string(nil), markers...),
		Transcribers:     extract.NewRoster("transcribers", f.Transcribers),
		Doctors:          extract.NewRoster("doctors", f.Doctors),
		ExamTypes:        extract.NewRoster("exam_types", f.ExamTypes),
	}, nil
}

// Validate checks data against BuildRosterJSONSchema.
func Validate(data []byte) error {
	b, err := json.Marshal(BuildRosterJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rosters.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rosters.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

func checkUnique(roster string, entries []extract.Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		key := strings.ToUpper(strings.TrimSpace(e.Name))
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%s: duplicate entry %q", roster, e.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}
