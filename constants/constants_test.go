package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapExtToFormat(t *testing.T) {
	cases := map[string]string{
		".pdf":  PDF,
		"PDF":   PDF,
		".DocX": DOCX,
		".doc":  "",
		".txt":  "",
		"":      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, MapExtToFormat(in), "ext %q", in)
	}
}

func TestIsAllowedExt(t *testing.T) {
	assert.True(t, IsAllowedExt(".pdf"))
	assert.True(t, IsAllowedExt("docx"))
	assert.False(t, IsAllowedExt(".png"))
}

func TestCanonicalizeStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
		ok   bool
	}{
		{"llm", StrategyLLM, true},
		{" Gemini ", StrategyLLM, true},
		{"regex", StrategyRegex, true},
		{"local", StrategyRegex, true},
		{"", StrategyRegex, false},
		{"magic", StrategyRegex, false},
	}
	for _, tt := range tests {
		got, ok := CanonicalizeStrategy(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
	assert.Equal(t, []string{"llm", "regex"}, StrategiesAsStringSlice())
}
