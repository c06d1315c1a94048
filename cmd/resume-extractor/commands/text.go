package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var textCmd = &cobra.Command{
	Use:   "text <file>",
	Short: "Print the plain text extracted from a PDF or DOCX",
	Long: `Print the normalized text the field extractors see. Useful for checking
why a field came out as Null.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := app.text.Extract(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			logInfo("warning: %s", w)
		}
		logInfo("%s via %s: %d pages, %d chars in %s", res.SourceType, res.Method, res.Pages, len(res.Text), res.Duration)
		fmt.Println(res.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(textCmd)
}
