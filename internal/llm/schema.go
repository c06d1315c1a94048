package llm

// JSON keys of a structured answer.
const (
	KeyName           = "name"
	KeyPhoneNumber    = "phone_number"
	KeyEmailID        = "email_id"
	KeyJobTitle       = "job_title"
	KeyCurrentCompany = "current_company"
	KeySkills         = "skills"
	KeyLocation       = "location"
)

// ResumeJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// Every key is optional; a missing key means the field was not found.
func ResumeJSONSchema() map[string]any {
	props := map[string]any{
		KeyName:           stringOrNull(),
		KeyPhoneNumber:    stringOrNull(),
		KeyEmailID:        stringOrNull(),
		KeyJobTitle:       stringOrNull(),
		KeyCurrentCompany: stringOrNull(),
		KeySkills: map[string]any{
			"anyOf": []any{
				map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				map[string]any{"type": "string"},
				map[string]any{"type": "null"},
			},
		},
		KeyLocation: stringOrNull(),
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func stringOrNull() map[string]any {
	return map[string]any{"type": []any{"string", "null"}}
}
