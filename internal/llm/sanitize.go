package llm

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

var keyAliases = map[string]string{
	"name":            KeyName,
	"full_name":       KeyName,
	"phone":           KeyPhoneNumber,
	"phone_no":        KeyPhoneNumber,
	"phone_no.":       KeyPhoneNumber,
	"phone_number":    KeyPhoneNumber,
	"email":           KeyEmailID,
	"email_id":        KeyEmailID,
	"email_address":   KeyEmailID,
	"job_title":       KeyJobTitle,
	"title":           KeyJobTitle,
	"current_company": KeyCurrentCompany,
	"company":         KeyCurrentCompany,
	"skills":          KeySkills,
	"location":        KeyLocation,
}

// SanitizeAnswerJSON normalizes a model's JSON answer so it can validate against
// ResumeJSONSchema: keys are canonicalized, null-ish values and unknown keys are
// dropped, numbers become strings, and a comma-separated skills string becomes a list.
// It returns the cleaned document and the keys it dropped.
func SanitizeAnswerJSON(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	out := make(map[string]any, len(m))
	var dropped []string
	for k, v := range m {
		key, ok := keyAliases[canonicalKey(k)]
		if !ok {
			dropped = append(dropped, k)
			continue
		}
		if key == KeySkills {
			if list := skillsList(v); len(list) > 0 {
				out[key] = list
			}
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); !IsNullish(s) {
				out[key] = s
			}
		case float64:
			out[key] = strconv.FormatFloat(t, 'f', -1, 64)
		case nil:
		default:
			dropped = append(dropped, k)
		}
	}
	sort.Strings(dropped)

	b, err := json.Marshal(out)
	if err != nil {
		return nil, nil, err
	}
	return b, dropped, nil
}

func canonicalKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.NewReplacer(" ", "_", "-", "_").Replace(k)
	return k
}

func skillsList(v any) []string {
	var raw []string
	switch t := v.(type) {
	case string:
		raw = strings.Split(t, ",")
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}
	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); !IsNullish(s) {
			out = append(out, s)
		}
	}
	return out
}

// IsNullish reports whether a model answered "not found" for a value.
func IsNullish(s string) bool {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(s), `"'*.`)) {
	case "", "null", "none", "n/a", "na", "not found", "not available", "not mentioned", "not specified", "not provided", "unknown":
		return true
	}
	return false
}

// StripCodeFence removes a surrounding markdown code fence, if any.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the info string ("json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
