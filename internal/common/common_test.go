package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env
	for _, k := range []string{"STRATEGY", "LLM_PROVIDER", "GOOGLE_API_KEY", "GEMINI_API_KEY", "OUTPUT_FORMATS", "LLM_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, constants.StrategyRegex, cfg.Extractor.Strategy)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"xlsx", "csv"}, cfg.Output.Formats)
	assert.Equal(t, "full", cfg.Output.Columns)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STRATEGY", "gemini")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OUTPUT_FORMATS", " CSV , yaml,,")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("PHONE_LABEL_REQUIRED", "true")

	cfg := LoadConfig()
	assert.Equal(t, constants.StrategyLLM, cfg.Extractor.Strategy)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, []string{"csv", "yaml"}, cfg.Output.Formats)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Extractor.PhoneLabelRequired)
	require.NoError(t, cfg.Validate())
}

func TestConfig_SetProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-or")
	cfg := &Config{LLM: LLMConfig{Provider: "gemini"}}
	cfg.SetProvider(" OpenRouter ")
	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, "sk-or", cfg.LLM.APIKey)
}

func TestConfigValidate_MissingKey(t *testing.T) {
	cfg := &Config{
		Extractor: ExtractorConfig{Strategy: constants.StrategyLLM},
		LLM:       LLMConfig{Provider: "gemini", ResponseFormat: "lines"},
		Output:    OutputConfig{Dir: ".", Formats: []string{"pdf"}, Columns: "full"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "API key for gemini")
	assert.Contains(t, err.Error(), "OUTPUT_FORMATS")
}

func TestConfigValidate_OutputFormatAliases(t *testing.T) {
	cfg := &Config{
		Extractor: ExtractorConfig{Strategy: constants.StrategyRegex},
		Output:    OutputConfig{Dir: "out", Formats: []string{"yml", "yaml", "csv"}, Columns: "summary"},
	}
	require.NoError(t, cfg.Validate())
}

func TestValidator(t *testing.T) {
	v := NewValidator().
		Field("MODE", "fast", OneOf("slow", "steady")).
		Field("TOKEN", "  ", Required, OneOf("x")).
		Field("DIR", "out", Required)

	require.True(t, v.HasErrors())
	require.Len(t, v.Errors(), 2)
	assert.Equal(t, `MODE="fast" must be one of slow, steady`, v.Errors()[0].Error())
	assert.Equal(t, "TOKEN=\"  \" is required", v.Errors()[1].Error())
	assert.Equal(t, `MODE="fast" must be one of slow, steady; TOKEN="  " is required`, v.ErrorMessage())
	assert.False(t, NewValidator().Field("K", "a", OneOf("a")).HasErrors())
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("boom")

	err := ExtractionError("a.pdf", cause)
	assert.True(t, errors.Is(err, ErrExtraction))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeExtraction, ErrorCode(err))

	err = ServiceError("gemini", cause)
	assert.True(t, errors.Is(err, ErrService))
	assert.False(t, errors.Is(err, ErrExtraction))

	err = InputError("no file provided", nil)
	assert.True(t, errors.Is(err, ErrInput))
	assert.Equal(t, "INPUT_ERROR: no file provided: invalid input", err.Error())

	assert.Equal(t, "", ErrorCode(cause))
	assert.Nil(t, WrapError(nil, "x"))
}

func TestContextValues(t *testing.T) {
	ctx := WithSourcePath(WithRunID(context.Background(), "run-1"), "/tmp/a.pdf")
	assert.Equal(t, "run-1", RunIDFromContext(ctx))
	assert.Equal(t, "/tmp/a.pdf", SourcePathFromContext(ctx))
	assert.Equal(t, "", RunIDFromContext(context.Background()))
}
