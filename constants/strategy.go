package constants

import (
	"strings"
)

// Strategy selects how fields are pulled out of resume text.
type Strategy string

const (
	StrategyLLM   Strategy = "llm"
	StrategyRegex Strategy = "regex"
)

var allStrategies = []Strategy{
	StrategyLLM,
	StrategyRegex,
}

func StrategiesAsStringSlice() []string {
	result := make([]string, len(allStrategies))
	for i, s := range allStrategies {
		result[i] = string(s)
	}
	return result
}

// CanonicalizeStrategy maps user input (flags, env, form values) onto a Strategy.
// Unknown input falls back to the regex strategy and reports false.
func CanonicalizeStrategy(input string) (Strategy, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return StrategyRegex, false
	}

	synonyms := map[string]Strategy{
		"ai":     StrategyLLM,
		"gemini": StrategyLLM,
		"openai": StrategyLLM,
		"model":  StrategyLLM,
		"local":  StrategyRegex,
		"rules":  StrategyRegex,
		"re":     StrategyRegex,
	}
	if s, ok := synonyms[normalized]; ok {
		return s, true
	}

	for _, s := range allStrategies {
		if normalized == string(s) {
			return s, true
		}
	}

	return StrategyRegex, false
}
