package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/logmerge/config"
	"github.com/kbukum/logmerge/logmerge"
)

// runFlags are the flags shared by merge and filter. They override the
// merge section of the configuration only when set.
type runFlags struct {
	output      string
	filter      string
	order       string
	print       bool
	bufferSize  string
	maxLineSize string
}

func (f *runFlags) register(cmd *cobra.Command, withOrder bool) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", config.DefaultOutput, envUsage(`output file, "-" for stdout`, "merge.output"))
	fs.StringVarP(&f.filter, "filter", "f", config.DefaultFilter, envUsage("filter: "+strings.Join(logmerge.FilterNames(), ", "), "merge.filter"))
	if withOrder {
		fs.StringVar(&f.order, "order", config.DefaultOrder, envUsage("ordering: "+strings.Join(logmerge.OrderNames(), ", "), "merge.order"))
	}
	fs.BoolVarP(&f.print, "print", "p", false, envUsage(`print each record as "{position}: {content}" to stdout`, "merge.print"))
	fs.StringVar(&f.bufferSize, "buffer-size", "", envUsage(`read/write buffer size, e.g. "64KB" (default 64KB)`, "merge.buffer_size"))
	fs.StringVar(&f.maxLineSize, "max-line-size", "", envUsage(`longest accepted line, e.g. "4MB" (default 1MB)`, "merge.max_line_size"))
}

// envUsage appends the environment variable that sets the same key.
func envUsage(usage, key string) string {
	return usage + " [$" + config.EnvVar(key) + "]"
}

// apply copies set flags and positional inputs onto m.
func (f *runFlags) apply(cmd *cobra.Command, args []string, m *config.MergeConfig) {
	fs := cmd.Flags()
	if len(args) > 0 {
		m.Inputs = args
	}
	if fs.Changed("output") {
		m.Output = f.output
	}
	if fs.Changed("filter") {
		m.Filter = f.filter
	}
	if fs.Changed("order") {
		m.Order = f.order
	}
	if fs.Changed("print") {
		m.Print = f.print
	}
	if fs.Changed("buffer-size") {
		m.BufferSize = f.bufferSize
	}
	if fs.Changed("max-line-size") {
		m.MaxLineSize = f.maxLineSize
	}
}
