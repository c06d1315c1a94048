// Package server serves the single-page extraction form over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/batch"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/export"
)

type Config struct {
	OutputDir       string
	Formats         []export.Format
	PageColumns     []entity.Column // columns shown on the page; files always carry every column
	UploadMaxBytes  int64
	DefaultStrategy constants.Strategy
}

// HealthFunc reports readiness of an optional dependency (the record store).
type HealthFunc func(ctx context.Context) error

type Server struct {
	app      *fiber.App
	cfg      Config
	runners  map[constants.Strategy]*batch.Runner
	exporter *export.Service
	health   HealthFunc
	logger   *slog.Logger
}

// New wires the routes. runners holds one batch runner per available strategy.
func New(cfg Config, runners map[constants.Strategy]*batch.Runner, exporter *export.Service, health HealthFunc, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.UploadMaxBytes <= 0 {
		cfg.UploadMaxBytes = 15 << 20
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if len(cfg.PageColumns) == 0 {
		cfg.PageColumns = entity.SummaryColumns
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = []export.Format{export.FormatXLSX, export.FormatCSV}
	}
	if _, ok := runners[cfg.DefaultStrategy]; !ok {
		for _, s := range []constants.Strategy{constants.StrategyLLM, constants.StrategyRegex} {
			if _, ok := runners[s]; ok {
				cfg.DefaultStrategy = s
				break
			}
		}
	}

	s := &Server{cfg: cfg, runners: runners, exporter: exporter, health: health, logger: logger}
	s.app = fiber.New(fiber.Config{
		AppName:               "resume-extractor",
		BodyLimit:             int(cfg.UploadMaxBytes) + 1<<20, // multipart overhead
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/", s.index)
	s.app.Post("/extract/file", s.extractFile)
	s.app.Post("/extract/folder", s.extractFolder)
	s.app.Get("/download/:name", s.download)
	s.app.Get("/health", s.healthz)
}

// App exposes the fiber app (tests drive it with app.Test).
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving HTTP on addr.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) runner(name string) (constants.Strategy, *batch.Runner) {
	if st, ok := constants.CanonicalizeStrategy(name); ok {
		if r, ok := s.runners[st]; ok {
			return st, r
		}
	}
	return s.cfg.DefaultStrategy, s.runners[s.cfg.DefaultStrategy]
}

func (s *Server) healthz(c *fiber.Ctx) error {
	if s.health == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
	defer cancel()
	if err := s.health(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// statusFor maps the error taxonomy onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInput):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrExtraction):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, common.ErrService):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
