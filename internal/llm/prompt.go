package llm

import (
	"strings"
)

// Field labels as they appear in the prompt and, ideally, in the answer.
var FieldLabels = []string{
	"Name",
	"Phone No.",
	"Email Id",
	"Job Title",
	"Current Company",
	"Skills",
	"Location",
}

const textPlaceholder = "{text}"

const promptTemplate = `Act as a highly skilled and experienced Application Tracking System (ATS) with deep expertise in the technology field, including software engineering, data science, data analysis, and big data engineering. Your task is to extract the following details from the provided resume:
{fields}

resume: {text}

If any detail is not present in the resume, return 'Null' for that field.
{format}`

const linesInstruction = `Answer with exactly one line per detail, in the order listed above, formatted as "<label>: <value>" using the labels above verbatim. For Skills give a comma-separated list. Do not add any other text.`

const jsonInstruction = `Return ONLY a JSON object with the keys "name", "phone_number", "email_id", "job_title", "current_company", "skills" (an array of strings) and "location". Use null for any detail that is not present. Do not wrap the JSON in markdown.`

// BuildPrompt embeds resume text into the fixed instruction template.
// Text longer than maxChars (when > 0) is cut and marked as truncated.
func BuildPrompt(text string, format ResponseFormat, maxChars int) string {
	text = strings.TrimSpace(text)
	if cut, ok := Clip(text, maxChars); ok {
		text = cut + "\n…(truncated)"
	}

	var fields strings.Builder
	for i, l := range FieldLabels {
		if i > 0 {
			fields.WriteString("\n")
		}
		fields.WriteString("- ")
		fields.WriteString(l)
	}

	instruction := linesInstruction
	if format == FormatJSON {
		instruction = jsonInstruction
	}

	// Substitute text last so braces inside the resume are never interpreted.
	p := strings.Replace(promptTemplate, "{fields}", fields.String(), 1)
	p = strings.Replace(p, "{format}", instruction, 1)
	return strings.Replace(p, textPlaceholder, text, 1)
}

// Clip returns the first n characters (runes) of s and whether anything was
// dropped. n <= 0 means no limit.
func Clip(s string, n int) (string, bool) {
	if n <= 0 || len(s) <= n {
		return s, false
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], true
		}
		i++
	}
	return s, false
}
