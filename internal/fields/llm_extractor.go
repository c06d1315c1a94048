package fields

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/llm"
)

// LLMOptions shape the prompt sent to the generator.
type LLMOptions struct {
	Format   llm.ResponseFormat
	MaxChars int
}

// LLMExtractor asks a generator for the fields and parses its answer.
// It makes exactly one call per document and never retries.
type LLMExtractor struct {
	gen    llm.Generator
	opts   LLMOptions
	logger *slog.Logger
}

func NewLLMExtractor(gen llm.Generator, opts LLMOptions, logger *slog.Logger) *LLMExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Format == "" {
		opts.Format = llm.FormatLines
	}
	return &LLMExtractor{gen: gen, opts: opts, logger: logger}
}

func (e *LLMExtractor) Name() string { return "llm:" + e.gen.Name() }

func (e *LLMExtractor) ExtractFields(ctx context.Context, text string) (entity.ResumeRecord, error) {
	if strings.TrimSpace(text) == "" {
		return entity.NewResumeRecord(), nil
	}

	start := time.Now()
	prompt := llm.BuildPrompt(text, e.opts.Format, e.opts.MaxChars)
	answer, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.logger.Error("fields.llm.generate_error",
			"provider", e.gen.Name(),
			"path", common.SourcePathFromContext(ctx),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.ResumeRecord{}, common.ServiceError(e.gen.Name(), err)
	}

	parsed := ParseAnswer(answer)
	e.logger.Info("fields.llm.ok",
		"provider", e.gen.Name(),
		"path", common.SourcePathFromContext(ctx),
		"mode", parsed.Mode,
		"recognized", parsed.Recognized,
		"answer_bytes", len(answer),
		"elapsed_ms", time.Since(start).Milliseconds())
	if parsed.Recognized == 0 {
		e.logger.Warn("fields.llm.unrecognized_answer", "provider", e.gen.Name(), "answer", truncate(answer, 200))
	}
	return parsed.Record, nil
}

func truncate(s string, n int) string {
	if cut, ok := llm.Clip(s, n); ok {
		return cut + "…"
	}
	return s
}
