// Package fields turns plain resume text into an entity.ResumeRecord, either
// with local label-anchored patterns or by parsing a generative model's answer.
package fields

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
	"github.com/joseph-ayodele/resume-extractor/internal/llm"
)

// Deps carries what each strategy needs; only the selected strategy's part is used.
type Deps struct {
	Generator llm.Generator
	LLM       LLMOptions
	Regex     Options
	Logger    *slog.Logger
}

// New returns the field extractor for strategy.
func New(strategy constants.Strategy, deps Deps) (extract.FieldExtractor, error) {
	switch strategy {
	case constants.StrategyRegex:
		return NewRegexExtractor(deps.Regex), nil
	case constants.StrategyLLM:
		if deps.Generator == nil {
			return nil, fmt.Errorf("strategy %q requires a generator", strategy)
		}
		return NewLLMExtractor(deps.Generator, deps.LLM, deps.Logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}
