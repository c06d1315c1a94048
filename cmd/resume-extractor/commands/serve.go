package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/batch"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resume upload form",
	Long: `Serve a small web form: upload one resume or name a folder on the
server, pick a strategy, and get the extracted rows plus spreadsheet
downloads.

The llm strategy is offered only when a provider is configured.

Examples:
  resume-extractor serve
  resume-extractor serve --addr 127.0.0.1:9000 --upload-max 5MB`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("addr", "", "listen address (default $HTTP_ADDR or :8501)")
	flags.String("upload-max", "", "largest accepted upload, e.g. 15MB (default $UPLOAD_MAX_MB)")
	flags.String("formats", "", "download formats: xlsx, csv, json, yaml (default $OUTPUT_FORMATS or xlsx,csv)")
	flags.String("columns", "", "columns shown on the page: full, summary (default summary)")
	flags.Duration("shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer app.close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = app.cfg.Server.HTTPAddr
	}
	uploadMax := int64(app.cfg.Server.UploadMaxMB) << 20
	if s, _ := cmd.Flags().GetString("upload-max"); s != "" {
		n, err := humanize.ParseBytes(s)
		if err != nil {
			return fmt.Errorf("invalid --upload-max %q: %w", s, err)
		}
		uploadMax = int64(n)
	}
	pageColumns := entity.SummaryColumns
	if cmd.Flags().Changed("columns") {
		pageColumns = app.columns
	}

	runners := map[constants.Strategy]*batch.Runner{}
	for _, s := range []constants.Strategy{constants.StrategyRegex, constants.StrategyLLM} {
		r, err := app.runner(ctx, s)
		if err != nil {
			app.logger.Warn("strategy unavailable", "strategy", s, "error", err)
			continue
		}
		runners[s] = r
	}

	var health server.HealthFunc
	if store := app.openStore(ctx); store != nil {
		health = func(ctx context.Context) error { return store.HealthCheck(ctx, time.Second) }
	}

	srv := server.New(server.Config{
		OutputDir:       app.cfg.Output.Dir,
		Formats:         app.formats,
		PageColumns:     pageColumns,
		UploadMaxBytes:  uploadMax,
		DefaultStrategy: app.cfg.Extractor.Strategy,
	}, runners, app.exporter, health, app.logger)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("form server configured", "upload_max", humanize.Bytes(uint64(uploadMax)), "strategies", len(runners))
		errCh <- srv.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	grace, _ := cmd.Flags().GetDuration("shutdown-timeout")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	app.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
