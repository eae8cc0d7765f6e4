package logmerge

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/logmerge/errors"
	"github.com/kbukum/logmerge/lines"
	"github.com/kbukum/logmerge/logger"
	"github.com/kbukum/logmerge/observability"
	"github.com/kbukum/logmerge/pipeline"
)

// Operation names used in logs, spans and metrics.
const (
	OpMerge  = "merge"
	OpFilter = "filter"
	OpMatch  = "match"
	OpPrint  = "print"
)

// Runner executes filter, merge and match runs. Each run gets an ID, a
// span, counters and a summary log line. The zero value is not usable; use
// NewRunner.
type Runner struct {
	log      *logger.Logger
	metrics  *observability.Metrics
	lineOpts []lines.Option
	tap      io.Writer
	stdout   io.Writer
	newID    func() string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the run logger.
func WithLogger(l *logger.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// WithMetrics records run counters on m.
func WithMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithLineOptions sets the read and write options for every file.
func WithLineOptions(opts ...lines.Option) RunnerOption {
	return func(r *Runner) { r.lineOpts = append(r.lineOpts, opts...) }
}

// WithTap prints every merged record, as "{position}: {content}", to w as it
// passes towards the output.
func WithTap(w io.Writer) RunnerOption {
	return func(r *Runner) { r.tap = w }
}

// WithStdout sends output "-" to w instead of the process standard output.
func WithStdout(w io.Writer) RunnerOption {
	return func(r *Runner) { r.stdout = w }
}

// NewRunner creates a Runner. Without WithLogger it logs through the
// "logmerge" component logger.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{newID: uuid.NewString}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get("logmerge")
	}
	return r
}

// FilterMergeAndWriteLines filters each input, folds the results into one
// stream ordered by before and writes the record contents to output.
func (r *Runner) FilterMergeAndWriteLines(ctx context.Context, inputs []string, output string, filter Filter, before Order) error {
	fields := logger.Fields(logger.FieldSources, inputs, logger.FieldOutput, output)
	return r.track(ctx, OpMerge, fields, func(ctx context.Context, run *observability.Run) error {
		merged, err := r.merged(run, inputs, filter, before)
		if err != nil {
			return err
		}
		if r.tap != nil {
			merged = pipeline.Tap(merged, Printer(r.tap))
		}
		return r.write(ctx, run, merged, output)
	})
}

// FilterAndWriteLines writes the contents of the input lines accepted by
// filter to output, in their original order.
func (r *Runner) FilterAndWriteLines(ctx context.Context, input string, filter Filter, output string) error {
	fields := logger.Fields(logger.FieldSource, input, logger.FieldOutput, output)
	return r.track(ctx, OpFilter, fields, func(ctx context.Context, run *observability.Run) error {
		src := r.source(run, input, filter)
		if r.tap != nil {
			src = pipeline.Tap(src, Printer(r.tap))
		}
		return r.write(ctx, run, src, output)
	})
}

// PrintMerged filters and folds the inputs like FilterMergeAndWriteLines but
// only prints each merged record to w; nothing else is written.
func (r *Runner) PrintMerged(ctx context.Context, w io.Writer, inputs []string, filter Filter, before Order) error {
	fields := logger.Fields(logger.FieldSources, inputs)
	return r.track(ctx, OpPrint, fields, func(ctx context.Context, run *observability.Run) error {
		merged, err := r.merged(run, inputs, filter, before)
		if err != nil {
			return err
		}
		return r.print(ctx, run, merged, w)
	})
}

// PrintFiltered prints the lines of input accepted by filter to w, as
// "{position}: {content}", in their original order; nothing else is written.
func (r *Runner) PrintFiltered(ctx context.Context, w io.Writer, input string, filter Filter) error {
	fields := logger.Fields(logger.FieldSource, input)
	return r.track(ctx, OpPrint, fields, func(ctx context.Context, run *observability.Run) error {
		return r.print(ctx, run, r.source(run, input, filter), w)
	})
}

func (r *Runner) print(ctx context.Context, run *observability.Run, p *pipeline.Pipeline[Record], w io.Writer) error {
	printer := Printer(w)
	return pipeline.Drain(p, func(ctx context.Context, rec Record) error {
		if err := printer(ctx, rec); err != nil {
			return err
		}
		run.AddWritten(1)
		return nil
	}).Run(ctx)
}

// source numbers and filters one input, counting what it reads and drops.
func (r *Runner) source(run *observability.Run, path string, filter Filter) *pipeline.Pipeline[Record] {
	if filter == nil {
		filter = AcceptAll
	}
	read := pipeline.Tap(lines.Open(path, r.lineOpts...), func(context.Context, Record) error {
		run.AddRead(1)
		return nil
	})
	return pipeline.Filter(read, func(rec Record) bool {
		if filter(rec) {
			return true
		}
		run.AddDropped(1)
		return false
	})
}

func (r *Runner) merged(run *observability.Run, inputs []string, filter Filter, before Order) (*pipeline.Pipeline[Record], error) {
	if before == nil {
		before = ByContent
	}
	sources := make([]*pipeline.Pipeline[Record], len(inputs))
	for i, path := range inputs {
		sources[i] = r.source(run, path, filter)
	}
	merged, err := pipeline.MergeSortedAll(before, sources...)
	if stderrors.Is(err, pipeline.ErrNoSources) {
		return nil, errors.NoSources().WithCause(err)
	}
	return merged, err
}

// write drains p into the sink for output. The sink is committed only when
// the whole stream was written; otherwise it is aborted.
func (r *Runner) write(ctx context.Context, run *observability.Run, p *pipeline.Pipeline[Record], output string) error {
	sink, err := r.sink(output)
	if err != nil {
		return err
	}
	err = pipeline.Drain(p, func(ctx context.Context, rec Record) error {
		if err := sink.WriteLine(ctx, rec.Content()); err != nil {
			return err
		}
		run.AddWritten(1)
		return nil
	}).Run(ctx)
	if err != nil {
		if aerr := sink.Abort(); aerr != nil {
			r.log.WithError(aerr).Warn("failed to discard partial output", logger.Fields(logger.FieldOutput, sink.Name()))
		}
		return err
	}
	return sink.Commit()
}

func (r *Runner) sink(output string) (lines.Sink, error) {
	if output == lines.Stdin && r.stdout != nil {
		return lines.NewWriterSink("stdout", r.stdout), nil
	}
	return lines.Create(output, r.lineOpts...)
}

// track wraps fn in a run: ID, span, counters and a summary log line.
func (r *Runner) track(ctx context.Context, op string, fields map[string]interface{}, fn func(context.Context, *observability.Run) error) error {
	ctx, run := observability.StartRun(ctx, op, r.newID(), r.metrics)
	log := r.log.WithFields(logger.Fields(logger.FieldRunID, run.ID, logger.FieldOperation, op))
	log.Debug("run started", fields)

	if sources, ok := fields[logger.FieldSources].([]string); ok {
		run.SetAttributes(attribute.StringSlice(observability.AttrSources, sources))
	}
	if output, ok := fields[logger.FieldOutput].(string); ok {
		run.SetAttributes(attribute.String(observability.AttrOutput, output))
	}

	err := fn(ctx, run)
	status := run.End(ctx, err)

	read, dropped, written := run.Counts()
	summary := logger.MergeWithDuration(logger.Fields(
		logger.FieldStatus, status,
		logger.FieldRecordsRead, read,
		logger.FieldRecordsDropped, dropped,
		logger.FieldRecordsWritten, written,
	), run.Duration())
	if err != nil {
		summary[logger.FieldError] = err.Error()
		summary[logger.FieldErrorCode] = string(errors.Wrap(err).Code)
		log.Error("run failed", summary)
		return err
	}
	log.Info("run complete", summary)
	return nil
}
