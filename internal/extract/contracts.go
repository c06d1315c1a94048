package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // "PDF" | "DOCX"
	Method     string // "pdf-text" | "pdftotext" | "docx-xml"
	Duration   time.Duration
	Warnings   []string
}

// FieldExtractor is Stage 2: text -> fixed-schema record (LLM or regex).
// A field that cannot be found is the null-marker, never an error.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (entity.ResumeRecord, error)
	Name() string
}
