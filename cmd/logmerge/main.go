// Package main is the entry point for the logmerge CLI.
//
// Usage:
//
//	logmerge [flags] <command> [args]
//
// Commands:
//
//	merge    - Filter several log files and merge them into one
//	filter   - Filter one log file
//	match    - Report the lines of a file containing any of the given strings
//	version  - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/kbukum/logmerge/cmd/logmerge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
