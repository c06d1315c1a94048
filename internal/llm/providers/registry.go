// Package providers builds an llm.Generator by provider name.
package providers

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/joseph-ayodele/resume-extractor/internal/llm"
	"github.com/joseph-ayodele/resume-extractor/internal/llm/gemini"
	"github.com/joseph-ayodele/resume-extractor/internal/llm/openai"
)

// Factory creates a generator.
type Factory func(ctx context.Context, cfg llm.ProviderConfig, logger *slog.Logger) (llm.Generator, error)

var registry = map[string]Factory{
	"gemini": func(ctx context.Context, cfg llm.ProviderConfig, logger *slog.Logger) (llm.Generator, error) {
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:         cfg.APIKey,
			Model:          cfg.Model,
			Temperature:    cfg.Temperature,
			Timeout:        cfg.Timeout,
			ResponseFormat: cfg.ResponseFormat,
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
	"openai": func(_ context.Context, cfg llm.ProviderConfig, logger *slog.Logger) (llm.Generator, error) {
		return openai.NewClient(openai.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			Temperature:    cfg.Temperature,
			Timeout:        cfg.Timeout,
			ResponseFormat: cfg.ResponseFormat,
		}, logger), nil
	},
	"openrouter": func(ctx context.Context, cfg llm.ProviderConfig, logger *slog.Logger) (llm.Generator, error) {
		// OpenRouter speaks the OpenAI chat/completions API.
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://openrouter.ai/api/v1"
		}
		return openai.NewClient(openai.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			Temperature:    cfg.Temperature,
			Timeout:        cfg.Timeout,
			ResponseFormat: cfg.ResponseFormat,
		}, logger), nil
	},
}

// New creates a generator by provider name.
func New(ctx context.Context, name string, cfg llm.ProviderConfig, logger *slog.Logger) (llm.Generator, error) {
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s (available: %s)", name, strings.Join(Names(), ", "))
	}
	return factory(ctx, cfg, logger)
}

// Register adds or replaces a provider factory.
func Register(name string, f Factory) {
	registry[name] = f
}

// Names lists registered providers.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
