package rosters

// BuildRosterJSONSchema returns the JSON-Schema (draft 2020-12 subset) every
// roster file must satisfy.
func BuildRosterJSONSchema() map[string]any {
	entry := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"name"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 1},
			"keywords": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
		},
	}
	roster := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    entry,
	}

	labelProps := map[string]any{}
	for _, l := range []string{"patient", "document_id", "entity", "procedure", "creation_date", "referral_number", "transcription"} {
		labelProps[l] = map[string]any{"type": "string", "minLength": 1}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"transcribers", "doctors", "exam_types"},
		"properties": map[string]any{
			"labels": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           labelProps,
			},
			"signature_markers": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
			"transcribers": roster,
			"doctors":      roster,
			"exam_types":   roster,
		},
	}
}
