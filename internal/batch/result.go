package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// Item is one successfully processed document.
type Item struct {
	Path     string
	Record   entity.ResumeRecord
	Method   string
	Pages    int
	RecordID uuid.UUID // zero unless a store is attached
}

// Failure is one document that produced no record.
type Failure struct {
	Path   string
	Status constants.FileStatus
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

type Stats struct {
	Scanned   int // directory entries looked at
	Matched   int // documents attempted
	Succeeded int
	Failed    int
	Empty     int // subset of Failed
	Duration  time.Duration
}

type Result struct {
	RunID    uuid.UUID
	Items    []Item
	Failures []Failure
	Warnings []string
	Log      []Progress // one entry per attempted document, in order
	Stats    Stats
}

// Records returns the records in processing order.
func (r Result) Records() []entity.ResumeRecord {
	out := make([]entity.ResumeRecord, len(r.Items))
	for i, it := range r.Items {
		out[i] = it.Record
	}
	return out
}

// Progress is reported after each document.
type Progress struct {
	Completed int
	Total     int
	Path      string
	Status    constants.FileStatus
	Err       error
}

// String renders "(completed/total)".
func (p Progress) String() string {
	return fmt.Sprintf("(%d/%d)", p.Completed, p.Total)
}

type ProgressFunc func(Progress)
