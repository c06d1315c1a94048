package ingest

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// Processor turns one document into a record.
type Processor interface {
	ProcessFile(ctx context.Context, path string) (entity.ResumeRecord, error)
}

// SaveFunc receives the full record set after every change.
type SaveFunc func(records []entity.ResumeRecord) error

// Collector keeps one record per watched document, in first-seen order.
type Collector struct {
	proc    Processor
	save    SaveFunc
	logger  *slog.Logger
	index   map[string]int
	records []entity.ResumeRecord
}

func NewCollector(proc Processor, save SaveFunc, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{proc: proc, save: save, logger: logger, index: map[string]int{}}
}

// Run consumes paths until events closes or ctx is done. A document that
// fails is logged and skipped; a document seen again replaces its record.
func (c *Collector) Run(ctx context.Context, events <-chan string, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			c.logger.Warn("watch.error", "error", err)
		case path, ok := <-events:
			if !ok {
				return nil
			}
			c.Handle(ctx, path)
		}
	}
}

// Handle processes one path and saves the record set.
func (c *Collector) Handle(ctx context.Context, path string) {
	rec, err := c.proc.ProcessFile(ctx, path)
	if err != nil {
		c.logger.Error("watch.file_failed", "path", path, "error", err)
		return
	}
	if i, ok := c.index[path]; ok {
		c.records[i] = rec
	} else {
		c.index[path] = len(c.records)
		c.records = append(c.records, rec)
	}
	if c.save == nil {
		return
	}
	if err := c.save(c.Records()); err != nil {
		c.logger.Error("watch.save_failed", "records", len(c.records), "error", err)
	}
}

// Records returns a copy of the collected records.
func (c *Collector) Records() []entity.ResumeRecord {
	return append([]entity.ResumeRecord(nil), c.records...)
}
