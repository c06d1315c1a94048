// Package commands implements the CLI commands for resume-extractor.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume-extractor",
	Short: "Pull contact and career fields out of PDF and DOCX resumes",
	Long: `resume-extractor reads PDF and DOCX resumes, extracts name, phone,
email, job title, current company, skills and location, and writes the
results as spreadsheets.

Configuration comes from the environment (and a .env file when present);
flags override it.

Examples:
  # Extract every resume in a folder with the local patterns
  resume-extractor batch ./resumes

  # Use a generative model and write JSON as well
  resume-extractor batch ./resumes --strategy llm --formats xlsx,csv,json

  # Serve the upload form
  resume-extractor serve --addr :8501

  # Keep a folder's spreadsheet up to date as files arrive
  resume-extractor watch ./inbox`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var globalFlags struct {
	debug     bool
	quiet     bool
	jsonLogs  bool
	strategy  string
	provider  string
	model     string
	outputDir string
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&globalFlags.debug, "debug", false, "enable debug logging")
	flags.BoolVarP(&globalFlags.quiet, "quiet", "q", false, "only log errors and suppress progress output")
	flags.BoolVar(&globalFlags.jsonLogs, "json-logs", false, "log as JSON")
	flags.StringVar(&globalFlags.strategy, "strategy", "", "field extraction strategy: regex, llm (default $STRATEGY or regex)")
	flags.StringVar(&globalFlags.provider, "provider", "", "llm provider: gemini, openai, openrouter (default $LLM_PROVIDER)")
	flags.StringVar(&globalFlags.model, "model", "", "llm model name (provider default when empty)")
	flags.StringVarP(&globalFlags.outputDir, "output-dir", "o", "", "directory for output files (default $OUTPUT_DIR or .)")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints a progress message to stderr unless quiet mode is on.
func logInfo(format string, args ...any) {
	if !globalFlags.quiet {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
