package commands

import (
	"github.com/spf13/cobra"
)

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match <file> <string>...",
		Short: "Report the lines of a file containing any of the given strings",
		Long: `Print "{line}: {content}" for every line of <file> that contains one of
the strings. A line containing several of the strings is printed once per
string.`,
		Args:        cobra.MinimumNArgs(2),
		Annotations: map[string]string{annotationSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner(cmd).WriteMatches(cmd.Context(), cmd.OutOrStdout(), args[1:], args[0])
		},
	}
}
