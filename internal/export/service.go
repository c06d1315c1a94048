// Package export writes extracted records to CSV, XLSX, JSON and YAML files.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// Default output names.
const (
	FolderBase = "folder_resume_output"
	SingleBase = "single_resume_output"
	FolderCSV  = "resumes_extracted_details.csv"
)

// Target describes one save operation.
type Target struct {
	Dir     string
	Base    string            // file name without extension
	Names   map[Format]string // per-format file name overrides
	Columns []entity.Column   // defaults to entity.FullColumns
	Formats []Format
}

// FolderTarget is the target used for folder runs.
func FolderTarget(dir string, cols []entity.Column, formats []Format) Target {
	return Target{Dir: dir, Base: FolderBase, Names: map[Format]string{FormatCSV: FolderCSV}, Columns: cols, Formats: formats}
}

// SingleTarget is the target used for single-document runs.
func SingleTarget(dir string, cols []entity.Column, formats []Format) Target {
	return Target{Dir: dir, Base: SingleBase, Columns: cols, Formats: formats}
}

// FileName returns the file name written for f.
func (t Target) FileName(f Format) string {
	if n, ok := t.Names[f]; ok && n != "" {
		return n
	}
	return t.Base + f.Ext()
}

// Written is one file produced by Save.
type Written struct {
	Format Format
	Path   string
	Rows   int
}

// Service saves record sets to disk.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Save writes records to every format in t. Each sink is rendered fully in
// memory before its file is written, so a failing sink leaves no partial
// file and does not stop the others. The returned error joins all sink failures.
func (s *Service) Save(t Target, records []entity.ResumeRecord) ([]Written, error) {
	if len(t.Columns) == 0 {
		t.Columns = entity.FullColumns
	}
	if t.Dir == "" {
		t.Dir = "."
	}
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var (
		out  []Written
		errs []error
	)
	for _, f := range t.Formats {
		start := time.Now()
		path := filepath.Join(t.Dir, t.FileName(f))

		data, err := Render(f, records, t.Columns)
		if err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
		if err != nil {
			s.logger.Error("export.save_failed", "format", f, "path", path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}

		s.logger.Info("export."+string(f)+".ok",
			"path", path,
			"rows", len(records),
			"bytes", len(data),
			"elapsed_ms", time.Since(start).Milliseconds())
		out = append(out, Written{Format: f, Path: path, Rows: len(records)})
	}
	return out, errors.Join(errs...)
}
