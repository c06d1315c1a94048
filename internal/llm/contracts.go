package llm

import (
	"context"
	"time"
)

// Generator is the generative-text collaborator: one prompt in, one free-form answer out.
// Implementations make a single blocking round-trip and never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// ResponseFormat is the answer shape requested from the model.
type ResponseFormat string

const (
	FormatLines ResponseFormat = "lines" // one "Label: value" per line
	FormatJSON  ResponseFormat = "json"  // a JSON object matching ResumeJSONSchema
)

// ParseResponseFormat maps config input onto a ResponseFormat, defaulting to lines.
func ParseResponseFormat(s string) ResponseFormat {
	if ResponseFormat(s) == FormatJSON {
		return FormatJSON
	}
	return FormatLines
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float32
	Timeout        time.Duration
	ResponseFormat ResponseFormat
}
