package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/logmerge/config"
	"github.com/kbukum/logmerge/lines"
	"github.com/kbukum/logmerge/logger"
	"github.com/kbukum/logmerge/logmerge"
	"github.com/kbukum/logmerge/observability"
	"github.com/kbukum/logmerge/version"
)

// app holds what the persistent pre-run sets up for every command.
type app struct {
	configFile string
	envFile    string
	verbose    bool

	cfg      config.Config
	metrics  *observability.Metrics
	shutdown observability.ShutdownFunc
}

// annotationSetup marks commands that need configuration, logging and
// telemetry before they run.
const annotationSetup = "logmerge/setup"

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "logmerge",
		Short: "Filter and merge line-oriented log files",
		Long: `logmerge - filter and merge line-oriented log files.

Every line is numbered with its 1-based position in its own file. Filters
select lines per file; merge interleaves the filtered files by an ordering and
writes the line contents to one output file. The output appears only when the
whole run succeeds.

Settings come from logmerge.yml (., ./config, ./cmd/logmerge), an optional
.env file and LOGMERGE_* environment variables; flags override them all.

Examples:
  # Keep even lines of three files and merge them by first character
  logmerge merge -f even --order first-char -o merged.log a.log b.log c.log

  # Print merged records with their positions instead of writing a file
  logmerge merge --print a.log b.log

  # Keep lines mentioning ERROR
  logmerge filter -f contains:ERROR -o errors.log app.log

  # Find lines containing either string
  logmerge match app.log "timeout" "refused"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationSetup] == "" {
				return nil
			}
			return a.setup(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file (default: search for logmerge.yml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", ".env file (default: search for .env)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newMergeCmd(a),
		newFilterCmd(a),
		newMatchCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and flushes telemetry afterwards, also when
// the command failed.
func Execute() error {
	ctx := context.Background()
	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	if a.shutdown != nil {
		if serr := a.shutdown(ctx); err == nil {
			err = serr
		}
	}
	return err
}

// setup loads configuration, initializes logging and telemetry.
func (a *app) setup(ctx context.Context) error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	if err := config.LoadConfig(config.DefaultName, &a.cfg, opts...); err != nil {
		return err
	}
	if a.verbose {
		a.cfg.Logging.Level = "debug"
	}
	a.cfg.ApplyDefaults()
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger.Init(a.cfg.Logging)

	shutdown, err := observability.Setup(ctx, a.cfg.Telemetry, a.cfg.Name, version.Get().Short())
	if err != nil {
		return err
	}
	a.shutdown = shutdown

	metrics, err := observability.NewMetrics(observability.Meter(a.cfg.Name))
	if err != nil {
		return err
	}
	a.metrics = metrics
	return nil
}

// runner builds a Runner from the merged configuration. Sizes were checked
// by validateRun.
func (a *app) runner(cmd *cobra.Command, extra ...logmerge.RunnerOption) *logmerge.Runner {
	bufSize, maxLineSize, _ := a.cfg.Merge.Sizes()
	opts := []logmerge.RunnerOption{
		logmerge.WithLogger(logger.Get("logmerge")),
		logmerge.WithMetrics(a.metrics),
		logmerge.WithStdout(cmd.OutOrStdout()),
		logmerge.WithLineOptions(
			lines.WithBufferSize(bufSize),
			lines.WithMaxLineSize(maxLineSize),
		),
	}
	return logmerge.NewRunner(append(opts, extra...)...)
}
