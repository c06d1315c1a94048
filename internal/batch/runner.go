// Package batch runs text extraction then field extraction over one document
// or a folder of documents, one at a time, collecting records and failures.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
)

// ErrNoText marks a document whose text extraction succeeded but produced nothing.
var ErrNoText = errors.New("no text extracted")

// RecordStore persists records as they are produced. Optional.
type RecordStore interface {
	Insert(ctx context.Context, runID uuid.UUID, sourcePath, strategy string, rec entity.ResumeRecord) (uuid.UUID, error)
}

// Runner coordinates the text extractor then the field extractor per file.
type Runner struct {
	logger   *slog.Logger
	text     extract.TextExtractor
	fields   extract.FieldExtractor
	store    RecordStore
	progress ProgressFunc
}

func NewRunner(logger *slog.Logger, text extract.TextExtractor, fields extract.FieldExtractor) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, text: text, fields: fields}
}

// WithStore saves every produced record. Store failures are logged, never fatal.
func (r *Runner) WithStore(s RecordStore) *Runner {
	r.store = s
	return r
}

// WithProgress registers a callback invoked after each file.
func (r *Runner) WithProgress(fn ProgressFunc) *Runner {
	r.progress = fn
	return r
}

// Strategy names the field extractor in use.
func (r *Runner) Strategy() string { return r.fields.Name() }

// ProcessFile extracts one record from a single document.
func (r *Runner) ProcessFile(ctx context.Context, path string) (entity.ResumeRecord, error) {
	runID := uuid.New()
	item, err := r.process(common.WithRunID(ctx, runID.String()), runID, path)
	if err != nil {
		return entity.ResumeRecord{}, err
	}
	return item.Record, nil
}

// ProcessPaths processes paths in order. A failing document is recorded in
// Result.Failures and the remaining documents are still processed. Only
// context cancellation stops the run early.
func (r *Runner) ProcessPaths(ctx context.Context, paths []string) (Result, error) {
	res := Result{RunID: uuid.New()}
	ctx = common.WithRunID(ctx, res.RunID.String())
	start := time.Now()
	res.Stats.Matched = len(paths)

	r.logger.Info("batch.start", "run_id", res.RunID, "files", len(paths), "strategy", r.fields.Name())
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			res.Stats.Duration = time.Since(start)
			r.logger.Warn("batch.cancelled", "run_id", res.RunID, "completed", i, "total", len(paths))
			return res, err
		}

		item, err := r.process(ctx, res.RunID, path)
		status := constants.FileStatusOK
		if err != nil {
			status = constants.FileStatusFailed
			if errors.Is(err, ErrNoText) {
				status = constants.FileStatusEmpty
				res.Stats.Empty++
			}
			res.Failures = append(res.Failures, Failure{Path: path, Status: status, Err: err})
			res.Stats.Failed++
		} else {
			res.Items = append(res.Items, item)
			res.Stats.Succeeded++
		}
		p := Progress{Completed: i + 1, Total: len(paths), Path: path, Status: status, Err: err}
		res.Log = append(res.Log, p)
		r.report(p)
	}
	res.Stats.Duration = time.Since(start)

	r.logger.Info("batch.done",
		"run_id", res.RunID,
		"succeeded", res.Stats.Succeeded,
		"failed", res.Stats.Failed,
		"elapsed_ms", res.Stats.Duration.Milliseconds())
	return res, nil
}

// ProcessDirectory processes every .pdf/.docx file directly inside dir.
// Subdirectories, hidden files and other extensions are ignored.
func (r *Runner) ProcessDirectory(ctx context.Context, dir string) (Result, error) {
	paths, scanned, err := ListDocuments(dir)
	if err != nil {
		return Result{}, err
	}
	if len(paths) == 0 {
		r.logger.Warn("batch.no_documents", "dir", dir, "scanned", scanned)
		res := Result{RunID: uuid.New(), Warnings: []string{fmt.Sprintf("no PDF or DOCX files found in %s", dir)}}
		res.Stats.Scanned = scanned
		return res, nil
	}
	res, err := r.ProcessPaths(ctx, paths)
	res.Stats.Scanned = scanned
	return res, err
}

func (r *Runner) process(ctx context.Context, runID uuid.UUID, path string) (Item, error) {
	ctx = common.WithSourcePath(ctx, path)
	start := time.Now()

	tr, err := r.text.Extract(ctx, path)
	if err != nil {
		r.logger.Error("batch.file.text_failed", "run_id", runID, "path", path, "error", err)
		return Item{}, err
	}
	if tr.Text == "" {
		r.logger.Warn("batch.file.empty", "run_id", runID, "path", path, "method", tr.Method)
		return Item{}, common.ExtractionError(path, ErrNoText)
	}

	rec, err := r.fields.ExtractFields(ctx, tr.Text)
	if err != nil {
		r.logger.Error("batch.file.fields_failed", "run_id", runID, "path", path, "strategy", r.fields.Name(), "error", err)
		return Item{}, err
	}

	item := Item{Path: path, Record: rec, Method: tr.Method, Pages: tr.Pages}
	if r.store != nil {
		id, err := r.store.Insert(ctx, runID, path, r.fields.Name(), rec)
		if err != nil {
			r.logger.Warn("batch.file.store_failed", "run_id", runID, "path", path, "error", err)
		} else {
			item.RecordID = id
		}
	}

	r.logger.Info("batch.file.ok",
		"run_id", runID,
		"path", path,
		"method", tr.Method,
		"chars", len(tr.Text),
		"elapsed_ms", time.Since(start).Milliseconds())
	return item, nil
}

func (r *Runner) report(p Progress) {
	r.logger.Info("batch.progress", "progress", p.String(), "path", p.Path, "status", p.Status)
	if r.progress != nil {
		r.progress(p)
	}
}
