package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/batch"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/export"
)

// PageResult is what one extraction shows on the page (or returns as JSON).
type PageResult struct {
	Mode      string        `json:"mode"`
	Strategy  string        `json:"strategy"`
	Headers   []string      `json:"headers"`
	Rows      [][]string    `json:"rows"`
	Failures  []FailureView `json:"failures,omitempty"`
	Progress  []string      `json:"progress,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
	Downloads []string      `json:"downloads,omitempty"`
	SaveError string        `json:"save_error,omitempty"`
}

type FailureView struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) index(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, pageData{})
}

func (s *Server) extractFile(c *fiber.Ctx) error {
	strategy, runner := s.runner(c.FormValue("strategy"))
	if runner == nil {
		return s.fail(c, common.InputError("no extraction strategy is configured", nil))
	}

	fh, err := c.FormFile("resume")
	if err != nil || fh == nil {
		return s.fail(c, common.InputError("no file provided (pdf or docx)", err))
	}
	ext := filepath.Ext(fh.Filename)
	if !constants.IsAllowedExt(ext) {
		return s.fail(c, common.InputError(fmt.Sprintf("unsupported file format %q: only pdf and docx are allowed", ext), nil))
	}
	if fh.Size > s.cfg.UploadMaxBytes {
		return s.fail(c, common.InputError("file too large: limit is "+humanize.Bytes(uint64(s.cfg.UploadMaxBytes)), nil))
	}

	tmp, err := saveUpload(fh, s.cfg.UploadMaxBytes)
	if err != nil {
		return s.fail(c, err)
	}
	defer func() { _ = os.RemoveAll(filepath.Dir(tmp)) }()

	rec, err := runner.ProcessFile(common.WithSourcePath(c.UserContext(), fh.Filename), tmp)
	if err != nil {
		s.logger.Warn("http.extract_file.failed", "file", fh.Filename, "strategy", strategy, "error", err)
		return s.fail(c, err)
	}

	res := PageResult{
		Mode:     "file",
		Strategy: runner.Strategy(),
		Headers:  entity.Headers(s.cfg.PageColumns),
		Rows:     [][]string{rec.Values(s.cfg.PageColumns)},
		Progress: []string{batch.Progress{Completed: 1, Total: 1}.String() + " " + fh.Filename},
	}
	s.save(&res, export.SingleTarget(s.cfg.OutputDir, entity.FullColumns, s.cfg.Formats), []entity.ResumeRecord{rec})
	return s.respond(c, res)
}

func (s *Server) extractFolder(c *fiber.Ctx) error {
	_, runner := s.runner(c.FormValue("strategy"))
	if runner == nil {
		return s.fail(c, common.InputError("no extraction strategy is configured", nil))
	}
	folder := strings.TrimSpace(c.FormValue("folder"))

	result, err := runner.ProcessDirectory(c.UserContext(), folder)
	if err != nil {
		return s.fail(c, err)
	}

	res := PageResult{
		Mode:     "folder",
		Strategy: runner.Strategy(),
		Headers:  entity.Headers(s.cfg.PageColumns),
		Warnings: result.Warnings,
	}
	for _, it := range result.Items {
		res.Rows = append(res.Rows, it.Record.Values(s.cfg.PageColumns))
	}
	for _, f := range result.Failures {
		res.Failures = append(res.Failures, FailureView{Path: filepath.Base(f.Path), Status: string(f.Status), Message: f.Err.Error()})
	}
	res.Progress = progressLog(result)

	if len(result.Items) > 0 {
		s.save(&res, export.FolderTarget(s.cfg.OutputDir, entity.FullColumns, s.cfg.Formats), result.Records())
	}
	return s.respond(c, res)
}

func progressLog(r batch.Result) []string {
	out := make([]string, len(r.Log))
	for i, p := range r.Log {
		out[i] = fmt.Sprintf("%s %s %s", p, filepath.Base(p.Path), p.Status)
	}
	return out
}

func (s *Server) save(res *PageResult, t export.Target, records []entity.ResumeRecord) {
	if s.exporter == nil {
		return
	}
	written, err := s.exporter.Save(t, records)
	for _, w := range written {
		res.Downloads = append(res.Downloads, filepath.Base(w.Path))
	}
	if err != nil {
		// The extracted rows are still shown.
		res.SaveError = err.Error()
	}
}

func (s *Server) download(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return c.Status(fiber.StatusBadRequest).SendString("invalid file name")
	}
	path := filepath.Join(s.cfg.OutputDir, name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return c.Status(fiber.StatusNotFound).SendString("file not found")
	}
	return c.Download(path, name)
}

func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{"code": common.ErrorCode(err), "message": err.Error()})
	}
	return s.render(c, status, pageData{Error: err.Error()})
}

func (s *Server) respond(c *fiber.Ctx, res PageResult) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusOK).JSON(res)
	}
	return s.render(c, fiber.StatusOK, pageData{Result: &res})
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// saveUpload copies the upload into a fresh temp dir, keeping its base name so
// the text extractor can dispatch on the extension.
func saveUpload(fh *multipart.FileHeader, max int64) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", common.InputError("failed to open uploaded file", err)
	}
	defer func() { _ = src.Close() }()

	dir, err := os.MkdirTemp("", "resume-upload-*")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(fh.Filename))
	dst, err := os.Create(path)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	n, err := io.Copy(dst, io.LimitReader(src, max+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("store upload: %w", err)
	}
	if n > max {
		_ = os.RemoveAll(dir)
		return "", common.InputError("file too large: limit is "+humanize.Bytes(uint64(max)), nil)
	}
	return path, nil
}
