package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/export"
	"github.com/joseph-ayodele/resume-extractor/internal/ingest"
)

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Re-extract a folder's spreadsheet whenever a resume is added or changed",
	Long: `Watch a folder (not its subfolders) for new or modified PDF and DOCX
files. Each change is extracted and the folder outputs are rewritten with
one row per document. Stop with Ctrl-C.

Examples:
  resume-extractor watch ./inbox
  resume-extractor watch ./inbox --initial-scan=false --debounce 2s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	flags := watchCmd.Flags()
	flags.Bool("initial-scan", true, "extract documents already in the folder first")
	flags.Duration("debounce", 500*time.Millisecond, "wait this long after the last write before extracting")
	flags.String("formats", "", "output formats: xlsx, csv, json, yaml (default $OUTPUT_FORMATS or xlsx,csv)")
	flags.String("columns", "", "output columns: full, summary (default $OUTPUT_COLUMNS or full)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer app.close()

	runner, err := app.runner(ctx, app.cfg.Extractor.Strategy)
	if err != nil {
		return err
	}

	initial, _ := cmd.Flags().GetBool("initial-scan")
	debounce, _ := cmd.Flags().GetDuration("debounce")
	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Dir:         args[0],
		InitialScan: initial,
		Debounce:    debounce,
		Logger:      app.logger,
	})
	if err != nil {
		return err
	}

	target := export.FolderTarget(app.cfg.Output.Dir, app.columns, app.formats)
	collector := ingest.NewCollector(runner, func(records []entity.ResumeRecord) error {
		written, err := app.exporter.Save(target, records)
		for _, w := range written {
			logInfo("updated %s (%d rows)", w.Path, w.Rows)
		}
		return err
	}, app.logger)

	logInfo("watching %s (Ctrl-C to stop)", args[0])
	if err := collector.Run(ctx, events, errs); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logInfo("stopped with %d records", len(collector.Records()))
	return nil
}
