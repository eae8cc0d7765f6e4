package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/logmerge/config"
	"github.com/kbukum/logmerge/logmerge"
	"github.com/kbukum/logmerge/validation"
)

func newFilterCmd(a *app) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "filter [flags] <input>",
		Short: "Filter one log file",
		Long: `Write the lines of <input> accepted by the filter to the output, in their
original order.

With --print and no --output, the accepted lines are printed with their
positions and nothing is written.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &a.cfg.Merge
			flags.apply(cmd, args, m)
			if err := validation.New().
				Custom(len(m.Inputs) == 1, "inputs", fmt.Sprintf("filter takes exactly one input, got %d", len(m.Inputs))).
				Error(); err != nil {
				return err
			}
			if err := validateRun(m); err != nil {
				return err
			}
			filter, err := logmerge.ParseFilter(m.Filter)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if m.Print && m.Output == config.DefaultOutput {
				return a.runner(cmd).PrintFiltered(ctx, cmd.OutOrStdout(), m.Inputs[0], filter)
			}
			var extra []logmerge.RunnerOption
			if m.Print {
				extra = append(extra, logmerge.WithTap(cmd.OutOrStdout()))
			}
			return a.runner(cmd, extra...).FilterAndWriteLines(ctx, m.Inputs[0], filter, m.Output)
		},
	}
	flags.register(cmd, false)
	return cmd
}
