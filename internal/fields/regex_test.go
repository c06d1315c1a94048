package fields

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"acme corp":       "Acme Corp",
		"SENIOR engineer": "Senior Engineer",
		"o'neil":          "O'Neil",
		"3d artist":       "3D Artist",
		"c++, node.js":    "C++, Node.Js",
		"":                "",
		"élodie martín":   "Élodie Martín",
		"ǆemal":           "ǅemal",
	}
	for in, want := range tests {
		assert.Equal(t, want, TitleCase(in), in)
	}
}

func TestRegexExtractor_LabeledResume(t *testing.T) {
	text := `Name: Jane   Doe
Phone: +1 (555) 123-4567
Email: Jane.Doe@Example.com
Job Title: senior software engineer
Current Company: acme corp
Skills: Go, rust , Kubernetes.
Location: berlin`

	rec := NewRegexExtractor(Options{}).Extract(text)

	assert.Equal(t, entity.ResumeRecord{
		Name:           "Jane Doe",
		PhoneNumber:    "+1 (555) 123-4567",
		EmailID:        "jane.doe@example.com",
		JobTitle:       "Senior Software Engineer",
		CurrentCompany: "Acme Corp",
		Skills:         []string{"Go", "Rust", "Kubernetes"},
		Location:       "Berlin",
	}, rec)
}

func TestRegexExtractor_LabelOnOwnLine(t *testing.T) {
	text := "Name:\nJane Doe\nLocation:\n  Berlin\nSkills:\nGo, Rust\nJob Title:\n\nEngineer\nPhone:\n555-123-4567"

	rec := NewRegexExtractor(Options{}).Extract(text)

	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "Berlin", rec.Location)
	assert.Equal(t, []string{"Go", "Rust"}, rec.Skills)
	assert.Equal(t, "Engineer", rec.JobTitle)
	assert.Equal(t, "555-123-4567", rec.PhoneNumber)
}

func TestRegexExtractor_NextLabelIsNotAValue(t *testing.T) {
	rec := NewRegexExtractor(Options{}).Extract("Name:\nEmail: jane@x.com\nSkills:\nLocation: paris")
	assert.Equal(t, entity.NullMarker, rec.Name)
	assert.Nil(t, rec.Skills)
	assert.Equal(t, "Paris", rec.Location)
	assert.Equal(t, "jane@x.com", rec.EmailID)
}

func TestRegexExtractor_ValueWithoutColonStaysOnLine(t *testing.T) {
	rec := NewRegexExtractor(Options{}).Extract("Name\nJane Doe")
	assert.Equal(t, entity.NullMarker, rec.Name)
}

func TestRegexExtractor_NoLabels(t *testing.T) {
	for _, text := range []string{
		"",
		"   \n\t ",
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
	} {
		rec := NewRegexExtractor(Options{}).Extract(text)
		assert.Equal(t, entity.NewResumeRecord(), rec, "%q", text)
		assert.True(t, rec.IsEmpty())
	}
}

func TestRegexExtractor_EmailAnyCase(t *testing.T) {
	for _, text := range []string{"Email: a@b.com", "EMAIL: A@B.COM", "contact me.\nemail: a@b.com."} {
		rec := NewRegexExtractor(Options{}).Extract(text)
		assert.Equal(t, "a@b.com", rec.EmailID, text)
	}
}

func TestRegexExtractor_SkillsIdempotent(t *testing.T) {
	ex := NewRegexExtractor(Options{})

	first := ex.Extract("Skills: Go, Rust")
	require.Equal(t, []string{"Go", "Rust"}, first.Skills)

	again := ex.Extract("Skills: " + strings.Join(first.Skills, ", "))
	assert.Equal(t, first.Skills, again.Skills)
}

func TestRegexExtractor_Skills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"bracket list", "skills: ['python', 'sql']", []string{"Python", "Sql"}},
		{"empty tokens dropped", "Skills: go,, ,rust", []string{"Go", "Rust"}},
		{"symbols kept", "Skills: C++, C#, .NET", []string{"C++", "C#", ".Net"}},
		{"prose without colon", "my skills include go, rust", []string{"Include Go", "Rust"}},
		{"stops at line end", "Skills: go\nLocation: paris", []string{"Go"}},
		{"singular label", "Skill: docker", []string{"Docker"}},
		{"no skills", "Name: bob", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRegexExtractor(Options{}).Extract(tt.text).Skills)
		})
	}
}

func TestRegexExtractor_ValuesStopAtPunctuation(t *testing.T) {
	rec := NewRegexExtractor(Options{}).Extract("current company: acme corp\nLocation: NY-10001")
	assert.Equal(t, "Acme Corp", rec.CurrentCompany)
	assert.Equal(t, "Ny", rec.Location)
	assert.Equal(t, entity.NullMarker, rec.Name)
}

func TestRegexExtractor_Phone(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want string
	}{
		{"labeled", "Phone No. 555-1234", Options{}, "555-1234"},
		{"mobile label", "Mobile: +91 98765 43210", Options{}, "+91 98765 43210"},
		{"short labeled ignored, loose used", "phone: 12\ncall 555-123-4567", Options{}, "555-123-4567"},
		{"unlabeled", "reach me at (555) 123-4567 anytime", Options{}, "(555) 123-4567"},
		{"unlabeled disabled", "reach me at (555) 123-4567 anytime", Options{RequirePhoneLabel: true}, entity.NullMarker},
		{"none", "no digits here", Options{}, entity.NullMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRegexExtractor(tt.opts).Extract(tt.text).PhoneNumber)
		})
	}
}

func TestRegexExtractor_FirstMatchWins(t *testing.T) {
	rec := NewRegexExtractor(Options{}).Extract("email: first@a.com\nemail: second@b.com\nname: ann\nname: bob")
	assert.Equal(t, "first@a.com", rec.EmailID)
	assert.Equal(t, "Ann", rec.Name)
}

func TestRegexExtractor_ExtractFields(t *testing.T) {
	ex := NewRegexExtractor(Options{})
	rec, err := ex.ExtractFields(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, rec.IsEmpty())
	assert.Equal(t, "regex", ex.Name())
}
