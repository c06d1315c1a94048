// Package textextract turns PDF and DOCX resumes into plain text.
package textextract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
)

type Config struct {
	Pdftotext         string // binary name or absolute path; if empty -> "pdftotext"
	PdftotextFallback bool   // run pdftotext when the embedded reader yields nothing
	MaxPages          int    // 0 = no limit
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

var _ extract.TextExtractor = (*Extractor)(nil)

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: NewCommandRunner(logger), logger: logger}
}

// WithRunner swaps the command runner (tests stub pdftotext this way).
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract picks a reader based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("text.extract.start", "path", path, "ext", ext)

	var (
		res extract.TextExtractionResult
		err error
	)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.DOCX:
		res, err = e.extractDOCX(path)
	default:
		e.logger.Error("unsupported document extension", "path", path, "extension", ext)
		return extract.TextExtractionResult{}, common.InputError(fmt.Sprintf("unsupported extension %q (want .pdf or .docx)", ext), nil)
	}
	res.Duration = time.Since(start)
	if err != nil {
		if !errors.Is(err, common.ErrExtraction) {
			err = common.ExtractionError(path, err)
		}
		e.logger.Warn("text.extract.failed", "path", path, "error", err, "elapsed_ms", res.Duration.Milliseconds())
		return res, err
	}
	res.Text = Normalize(res.Text)
	e.logger.Debug("text.extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	res := extract.TextExtractionResult{SourceType: constants.PDF, Method: "pdf-text"}
	text, pages, readErr := readPDF(path, e.cfg.MaxPages)
	if readErr == nil && strings.TrimSpace(text) != "" {
		res.Text, res.Pages = text, pages
		return res, nil
	}
	if readErr != nil {
		res.Warnings = append(res.Warnings, readErr.Error())
	}
	if !e.cfg.PdftotextFallback {
		if readErr != nil {
			return res, readErr
		}
		// Readable but textless (e.g. scanned) PDF: empty text is not an error here.
		res.Pages = pages
		return res, nil
	}

	e.logger.Info("text.extract.pdftotext_fallback", "path", path, "reason", fmt.Sprint(readErr))
	text, pages, warns, err := e.pdfToText(ctx, path)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		if readErr != nil {
			return res, fmt.Errorf("%w; pdftotext: %w", readErr, err)
		}
		return res, fmt.Errorf("pdftotext: %w", err)
	}
	res.Text, res.Pages, res.Method = text, pages, "pdftotext"
	return res, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = 1 + strings.Count(strings.TrimRight(text, "\f"), "\f")
	return text, pages, nil, nil
}

func (e *Extractor) extractDOCX(path string) (extract.TextExtractionResult, error) {
	res := extract.TextExtractionResult{SourceType: constants.DOCX, Method: "docx-xml", Pages: 1}
	text, warns, err := readDOCX(path)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		return res, err
	}
	res.Text = text
	return res, nil
}
