package fields

import (
	"context"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// Labels are matched on lower-cased text. After a colon the value may start
// on a following line; without one it must share the label's line. Values
// themselves never cross a line break.
const sep = `[ \t]*(?::\s*)?`

var (
	reName     = regexp.MustCompile(`\bname\b` + sep + `([a-z][a-z \t]*)(:?)`)
	reJobTitle = regexp.MustCompile(`\bjob[ \t]*title\b` + sep + `([a-z][a-z \t]*)(:?)`)
	reCompany  = regexp.MustCompile(`\bcurrent[ \t]*company\b` + sep + `([a-z][a-z \t]*)(:?)`)
	reLocation = regexp.MustCompile(`\blocation\b` + sep + `([a-z][a-z \t]*)(:?)`)
	reEmail    = regexp.MustCompile(`[a-z0-9_.+-]+@[a-z0-9-]+(?:\.[a-z0-9-]+)+`)
	reSkills   = regexp.MustCompile(`\bskills?\b` + sep + `(?:\[([^\]\n]*)\]|([a-z0-9][a-z0-9 \t,+#./-]*)(:?))`)

	rePhoneLabeled = regexp.MustCompile(`\b(?:telephone|phone|mobile|cell|tel|contact)\b(?:[ \t]*(?:no\.?|number|#))?` + sep + `(\+?[\d(][\d \t()+.-]*\d)`)
	rePhoneLoose   = regexp.MustCompile(`(?:\+?\d{1,3})?[ \t-]?\(?\d{3}\)?[ \t.-]?\d{3}[ \t.-]?\d{4}`)
)

const minPhoneDigits = 7

// Options tune the regex strategy.
type Options struct {
	// RequirePhoneLabel disables the unlabeled phone-number fallback.
	RequirePhoneLabel bool
}

// RegexExtractor pulls fields out of resume text with label-anchored patterns.
// It never calls out and never fails; a field that does not match stays Null.
type RegexExtractor struct {
	opts Options
}

func NewRegexExtractor(opts Options) *RegexExtractor {
	return &RegexExtractor{opts: opts}
}

func (e *RegexExtractor) Name() string { return "regex" }

func (e *RegexExtractor) ExtractFields(_ context.Context, text string) (entity.ResumeRecord, error) {
	return e.Extract(text), nil
}

// Extract applies every field pattern to text. The first match of each wins.
func (e *RegexExtractor) Extract(text string) entity.ResumeRecord {
	rec := entity.NewResumeRecord()
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return rec
	}

	rec.Name = words(reName, text)
	rec.JobTitle = words(reJobTitle, text)
	rec.CurrentCompany = words(reCompany, text)
	rec.Location = words(reLocation, text)
	rec.PhoneNumber = e.phone(text)
	if m := reEmail.FindString(text); m != "" {
		rec.EmailID = strings.TrimRight(m, ".-")
	}
	rec.Skills = skills(text)
	return rec
}

func words(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil || m[2] != "" {
		// a trailing colon means the match ran into the next label
		return entity.NullMarker
	}
	v := collapse(m[1])
	if v == "" {
		return entity.NullMarker
	}
	return TitleCase(v)
}

func (e *RegexExtractor) phone(text string) string {
	for _, m := range rePhoneLabeled.FindAllStringSubmatch(text, -1) {
		if v := strings.TrimSpace(m[1]); countDigits(v) >= minPhoneDigits {
			return v
		}
	}
	if e.opts.RequirePhoneLabel {
		return entity.NullMarker
	}
	if m := rePhoneLoose.FindString(text); m != "" {
		return strings.Trim(m, " \t-")
	}
	return entity.NullMarker
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func skills(text string) []string {
	m := reSkills.FindStringSubmatch(text)
	if m == nil || m[3] != "" {
		return nil
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimRight(strings.Trim(collapse(tok), `"'`), ".")
		if tok == "" {
			continue
		}
		out = append(out, TitleCase(tok))
	}
	return out
}
