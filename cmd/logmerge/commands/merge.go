package commands

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/logmerge/config"
	"github.com/kbukum/logmerge/logmerge"
	"github.com/kbukum/logmerge/validation"
)

func newMergeCmd(a *app) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "merge [flags] <input>...",
		Short: "Filter several log files and merge them into one",
		Long: `Filter each input, then merge the results pairwise from the last input
backwards: merge(a, merge(b, c)). Each input should already be sorted under
the chosen ordering; ties go to the later input.

With --print and no --output, the merged records are printed with their
positions and nothing is written.`,
		Annotations: map[string]string{annotationSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &a.cfg.Merge
			flags.apply(cmd, args, m)
			if err := validateRun(m); err != nil {
				return err
			}
			filter, err := logmerge.ParseFilter(m.Filter)
			if err != nil {
				return err
			}
			order, err := logmerge.ParseOrder(m.Order)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if m.Print && m.Output == config.DefaultOutput {
				return a.runner(cmd).PrintMerged(ctx, cmd.OutOrStdout(), m.Inputs, filter, order)
			}
			var extra []logmerge.RunnerOption
			if m.Print {
				extra = append(extra, logmerge.WithTap(cmd.OutOrStdout()))
			}
			return a.runner(cmd, extra...).FilterMergeAndWriteLines(ctx, m.Inputs, m.Output, filter, order)
		},
	}
	flags.register(cmd, true)
	return cmd
}

// validateRun checks the run settings after flags were applied. An empty
// input list is left to the run itself, which reports NO_SOURCES.
func validateRun(m *config.MergeConfig) error {
	if _, _, err := m.Sizes(); err != nil {
		return err
	}
	return validation.New().Required("output", m.Output).Error()
}
