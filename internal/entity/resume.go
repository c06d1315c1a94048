package entity

import "strings"

// NullMarker is the canonical "field not found" value. Every output sink and
// the record store use it; records never carry empty or missing fields.
const NullMarker = "Null"

// Column identifies one ResumeRecord field in tabular output.
type Column string

const (
	ColName           Column = "Name"
	ColPhoneNumber    Column = "PhoneNumber"
	ColEmailID        Column = "EmailId"
	ColJobTitle       Column = "JobTitle"
	ColCurrentCompany Column = "CurrentCompany"
	ColSkills         Column = "Skills"
	ColLocation       Column = "Location"
)

// FullColumns is every field in schema order.
var FullColumns = []Column{
	ColName, ColPhoneNumber, ColEmailID, ColJobTitle, ColCurrentCompany, ColSkills, ColLocation,
}

// SummaryColumns is the reduced set shown on the form page.
var SummaryColumns = []Column{ColName, ColPhoneNumber, ColEmailID, ColLocation}

var headers = map[Column]string{
	ColName:           "Name",
	ColPhoneNumber:    "Phone Number",
	ColEmailID:        "Email ID",
	ColJobTitle:       "Job Title",
	ColCurrentCompany: "Current Company",
	ColSkills:         "Skills",
	ColLocation:       "Location",
}

// Header is the display label written in the first row of a table.
func (c Column) Header() string {
	if h, ok := headers[c]; ok {
		return h
	}
	return string(c)
}

var keys = map[Column]string{
	ColName:           "name",
	ColPhoneNumber:    "phone_number",
	ColEmailID:        "email_id",
	ColJobTitle:       "job_title",
	ColCurrentCompany: "current_company",
	ColSkills:         "skills",
	ColLocation:       "location",
}

// Key is the snake_case name used by structured sinks and the record store.
func (c Column) Key() string {
	if k, ok := keys[c]; ok {
		return k
	}
	return strings.ToLower(string(c))
}

// ParseColumnSet maps "full" or "summary" onto a column set.
func ParseColumnSet(s string) ([]Column, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return FullColumns, true
	case "summary":
		return SummaryColumns, true
	}
	return FullColumns, false
}

// Headers returns the display labels for cols.
func Headers(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header()
	}
	return out
}

// ResumeRecord is the fixed-schema result of extracting one resume.
// Skills is nil when no skills were found.
type ResumeRecord struct {
	Name           string   `json:"name" yaml:"name"`
	PhoneNumber    string   `json:"phone_number" yaml:"phone_number"`
	EmailID        string   `json:"email_id" yaml:"email_id"`
	JobTitle       string   `json:"job_title" yaml:"job_title"`
	CurrentCompany string   `json:"current_company" yaml:"current_company"`
	Skills         []string `json:"skills" yaml:"skills"`
	Location       string   `json:"location" yaml:"location"`
}

// NewResumeRecord returns a record with every field set to the null-marker.
func NewResumeRecord() ResumeRecord {
	return ResumeRecord{
		Name:           NullMarker,
		PhoneNumber:    NullMarker,
		EmailID:        NullMarker,
		JobTitle:       NullMarker,
		CurrentCompany: NullMarker,
		Location:       NullMarker,
	}
}

// SkillsText joins skills with ", " or returns the null-marker.
func (r ResumeRecord) SkillsText() string {
	if len(r.Skills) == 0 {
		return NullMarker
	}
	return strings.Join(r.Skills, ", ")
}

// Value renders a single column.
func (r ResumeRecord) Value(c Column) string {
	var v string
	switch c {
	case ColName:
		v = r.Name
	case ColPhoneNumber:
		v = r.PhoneNumber
	case ColEmailID:
		v = r.EmailID
	case ColJobTitle:
		v = r.JobTitle
	case ColCurrentCompany:
		v = r.CurrentCompany
	case ColSkills:
		return r.SkillsText()
	case ColLocation:
		v = r.Location
	}
	if v == "" {
		return NullMarker
	}
	return v
}

// Values renders a table row for cols.
func (r ResumeRecord) Values(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = r.Value(c)
	}
	return out
}

// IsEmpty reports whether no field was found.
func (r ResumeRecord) IsEmpty() bool {
	for _, c := range FullColumns {
		if r.Value(c) != NullMarker {
			return false
		}
	}
	return true
}

// IsNull reports whether v is the null-marker (or blank).
func IsNull(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == NullMarker
}
