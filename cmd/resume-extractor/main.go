// Package main is the entry point for the resume-extractor CLI.
package main

import (
	"os"

	"github.com/joseph-ayodele/resume-extractor/cmd/resume-extractor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
