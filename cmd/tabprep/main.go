package main

import (
	"os"

	"github.com/YuminosukeSato/tabprep/cmd/tabprep/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Errors are already logged with structured context by the pipeline.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
