package fields

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/llm"
)

// Answer is a parsed model answer.
type Answer struct {
	Record entity.ResumeRecord
	// Recognized counts the field labels (or JSON keys) found, Null values included.
	Recognized int
	// Mode is "json", "lines" or "inline".
	Mode string
}

var labelAliases = map[string]entity.Column{
	"name":             entity.ColName,
	"full name":        entity.ColName,
	"candidate name":   entity.ColName,
	"phone no":         entity.ColPhoneNumber,
	"phone number":     entity.ColPhoneNumber,
	"phone":            entity.ColPhoneNumber,
	"mobile":           entity.ColPhoneNumber,
	"mobile number":    entity.ColPhoneNumber,
	"contact number":   entity.ColPhoneNumber,
	"email id":         entity.ColEmailID,
	"email":            entity.ColEmailID,
	"email address":    entity.ColEmailID,
	"e-mail":           entity.ColEmailID,
	"job title":        entity.ColJobTitle,
	"title":            entity.ColJobTitle,
	"designation":      entity.ColJobTitle,
	"current company":  entity.ColCurrentCompany,
	"company":          entity.ColCurrentCompany,
	"current employer": entity.ColCurrentCompany,
	"skills":           entity.ColSkills,
	"key skills":       entity.ColSkills,
	"technical skills": entity.ColSkills,
	"location":         entity.ColLocation,
	"current location": entity.ColLocation,
}

// Inline answers put every field on one line separated by " - ".
var inlinePatterns = []struct {
	col entity.Column
	re  *regexp.Regexp
}{
	{entity.ColName, regexp.MustCompile(`Name:\s*(.*?)( - |$)`)},
	{entity.ColPhoneNumber, regexp.MustCompile(`Phone No.\s*(.*?)( - |$)`)},
	{entity.ColEmailID, regexp.MustCompile(`Email Id:\s*(.*?)( - |$)`)},
	{entity.ColJobTitle, regexp.MustCompile(`Job Title:\s*(.*?)( - |$)`)},
	{entity.ColCurrentCompany, regexp.MustCompile(`Current Company:\s*(.*?)( - |$)`)},
	{entity.ColSkills, regexp.MustCompile(`Skills:\s*(.*?)( - |$)`)},
	{entity.ColLocation, regexp.MustCompile(`Location:\s*(.*?)( - |$)`)},
}

var (
	reListPrefix = regexp.MustCompile(`^(?:\d+[.)]|[-*•·>])\s*`)
	quoteFixer   = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`)
)

// ParseAnswer maps a model's free-form answer onto a record.
//
// A JSON object answer is sanitized, checked against llm.ResumeJSONSchema and
// mapped directly. Anything else is read twice: once as "Label: value" lines
// and once as the single-line " - " separated form. The reading that
// recognizes more labels wins; lines win a tie.
func ParseAnswer(answer string) Answer {
	answer = quoteFixer.Replace(llm.StripCodeFence(answer))
	if strings.HasPrefix(answer, "{") {
		if a, err := parseJSON(answer); err == nil {
			return a
		}
	}
	lines := parseLines(answer)
	inline := parseInline(answer)
	if inline.Recognized > lines.Recognized {
		return inline
	}
	return lines
}

func parseJSON(answer string) (Answer, error) {
	clean, _, err := llm.SanitizeAnswerJSON([]byte(answer))
	if err != nil {
		return Answer{}, fmt.Errorf("sanitize answer: %w", err)
	}
	if err := llm.ValidateResumeJSON(clean); err != nil {
		return Answer{}, err
	}
	var doc struct {
		Name           *string  `json:"name"`
		PhoneNumber    *string  `json:"phone_number"`
		EmailID        *string  `json:"email_id"`
		JobTitle       *string  `json:"job_title"`
		CurrentCompany *string  `json:"current_company"`
		Skills         []string `json:"skills"`
		Location       *string  `json:"location"`
	}
	if err := json.Unmarshal(clean, &doc); err != nil {
		return Answer{}, fmt.Errorf("decode answer: %w", err)
	}

	a := Answer{Record: entity.NewResumeRecord(), Mode: "json"}
	set := func(dst *string, v *string) {
		a.Recognized++
		if v != nil {
			*dst = value(*v)
		}
	}
	// Missing keys were null before sanitizing, so every key counts as answered.
	set(&a.Record.Name, doc.Name)
	set(&a.Record.PhoneNumber, doc.PhoneNumber)
	set(&a.Record.EmailID, doc.EmailID)
	set(&a.Record.JobTitle, doc.JobTitle)
	set(&a.Record.CurrentCompany, doc.CurrentCompany)
	set(&a.Record.Location, doc.Location)
	a.Recognized++
	if len(doc.Skills) > 0 {
		a.Record.Skills = doc.Skills
	}
	return a, nil
}

func parseLines(answer string) Answer {
	a := Answer{Record: entity.NewResumeRecord(), Mode: "lines"}
	seen := make(map[entity.Column]bool)
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		line = reListPrefix.ReplaceAllString(line, "")
		label, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		col, ok := labelAliases[normalizeLabel(label)]
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		a.Recognized++
		assign(&a.Record, col, val)
	}
	return a
}

func parseInline(answer string) Answer {
	a := Answer{Record: entity.NewResumeRecord(), Mode: "inline"}
	answer = strings.ReplaceAll(answer, "\n", " ")
	for _, p := range inlinePatterns {
		m := p.re.FindStringSubmatch(answer)
		if m == nil {
			continue
		}
		a.Recognized++
		v := m[1]
		if p.col == entity.ColPhoneNumber {
			v = strings.TrimPrefix(strings.TrimSpace(v), ":")
		}
		assign(&a.Record, p.col, v)
	}
	return a
}

func normalizeLabel(s string) string {
	s = strings.ToLower(collapse(s))
	return strings.TrimSpace(strings.TrimRight(s, ". "))
}

func assign(rec *entity.ResumeRecord, col entity.Column, raw string) {
	switch col {
	case entity.ColName:
		rec.Name = value(raw)
	case entity.ColPhoneNumber:
		rec.PhoneNumber = value(raw)
	case entity.ColEmailID:
		rec.EmailID = value(raw)
	case entity.ColJobTitle:
		rec.JobTitle = value(raw)
	case entity.ColCurrentCompany:
		rec.CurrentCompany = value(raw)
	case entity.ColSkills:
		rec.Skills = splitSkills(raw)
	case entity.ColLocation:
		rec.Location = value(raw)
	}
}

func value(raw string) string {
	v := strings.TrimSpace(raw)
	v = strings.TrimSpace(strings.Trim(v, `"'`))
	if llm.IsNullish(v) {
		return entity.NullMarker
	}
	return v
}

func splitSkills(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(strings.Trim(strings.TrimSpace(tok), `"'`))
		if llm.IsNullish(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
