package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resume-extractor/internal/batch"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/export"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file-or-folder>",
	Short: "Extract fields from one resume or every resume in a folder",
	Long: `Extract fields from a single PDF/DOCX resume, or from every PDF and DOCX
directly inside a folder (subfolders are not scanned).

A folder run writes resumes_extracted_details.csv and
folder_resume_output.xlsx; a single file writes single_resume_output.*.
Files that cannot be read are reported and skipped.

Examples:
  resume-extractor batch ./resumes
  resume-extractor batch cv.pdf --columns summary --formats csv,json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	flags := batchCmd.Flags()
	flags.String("formats", "", "output formats: xlsx, csv, json, yaml (default $OUTPUT_FORMATS or xlsx,csv)")
	flags.String("columns", "", "output columns: full, summary (default $OUTPUT_COLUMNS or full)")
	flags.Bool("print", false, "also print the extracted rows to stdout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer app.close()

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return common.InputError("cannot access "+path, err)
	}

	runner, err := app.runner(ctx, app.cfg.Extractor.Strategy)
	if err != nil {
		return err
	}
	runner.WithProgress(func(p batch.Progress) {
		status := string(p.Status)
		if p.Err != nil {
			status += ": " + p.Err.Error()
		}
		logInfo("%s %s %s", p, p.Path, status)
	})

	var (
		res    batch.Result
		target export.Target
	)
	if info.IsDir() {
		res, err = runner.ProcessDirectory(ctx, path)
		target = export.FolderTarget(app.cfg.Output.Dir, app.columns, app.formats)
	} else {
		res, err = runner.ProcessPaths(ctx, []string{path})
		target = export.SingleTarget(app.cfg.Output.Dir, app.columns, app.formats)
	}
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		logInfo("warning: %s", w)
	}

	records := res.Records()
	if len(records) == 0 {
		if res.Stats.Failed == 0 {
			return nil
		}
		return fmt.Errorf("no resumes could be extracted (%d failed)", res.Stats.Failed)
	}

	written, err := app.exporter.Save(target, records)
	for _, w := range written {
		logInfo("wrote %s (%d rows, %s)", w.Path, w.Rows, fileSize(w.Path))
	}
	if err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("print"); show {
		printRows(records, app.columns)
	}

	logInfo("run %s done: %d succeeded, %d failed, %d empty in %s",
		res.RunID, res.Stats.Succeeded, res.Stats.Failed, res.Stats.Empty, res.Stats.Duration.Round(time.Millisecond))
	return nil
}

func printRows(records []entity.ResumeRecord, cols []entity.Column) {
	fmt.Println(strings.Join(entity.Headers(cols), "\t"))
	for _, r := range records {
		fmt.Println(strings.Join(r.Values(cols), "\t"))
	}
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(info.Size()))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
