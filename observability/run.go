package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Run status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Run tracks one merge or filter run: its span, its counters and its
// start time. A nil *Metrics is allowed and records nothing.
type Run struct {
	ID        string
	Operation string
	StartTime time.Time

	span    trace.Span
	metrics *Metrics

	read    int64
	dropped int64
	written int64
}

// StartRun opens a span for operation and returns a context carrying the Run.
func StartRun(ctx context.Context, operation, runID string, metrics *Metrics) (context.Context, *Run) {
	ctx, span := StartSpan(ctx, SpanRun, trace.WithAttributes(
		attribute.String(AttrOperation, operation),
		attribute.String(AttrRunID, runID),
	))
	r := &Run{
		ID:        runID,
		Operation: operation,
		StartTime: time.Now(),
		span:      span,
		metrics:   metrics,
	}
	return ctx, r
}

// AddRead counts n records pulled from sources.
func (r *Run) AddRead(n int64) { r.read += n }

// AddDropped counts n records rejected by the filter.
func (r *Run) AddDropped(n int64) { r.dropped += n }

// AddWritten counts n contents written.
func (r *Run) AddWritten(n int64) { r.written += n }

// Counts returns the records read, dropped and written so far.
func (r *Run) Counts() (read, dropped, written int64) {
	return r.read, r.dropped, r.written
}

// SetAttributes adds attributes to the run span.
func (r *Run) SetAttributes(attrs ...attribute.KeyValue) {
	r.span.SetAttributes(attrs...)
}

// Duration returns the time since the run started.
func (r *Run) Duration() time.Duration {
	return time.Since(r.StartTime)
}

// End records the counters, sets the span status from err and ends the span.
// It returns the status string that was recorded.
func (r *Run) End(ctx context.Context, err error) string {
	status := StatusOK
	if err != nil {
		status = StatusError
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	} else {
		r.span.SetStatus(codes.Ok, "")
	}
	duration := r.Duration()
	r.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrWritten, r.written),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	if r.metrics != nil {
		r.metrics.RecordRead(ctx, r.Operation, r.read)
		r.metrics.RecordDropped(ctx, r.Operation, r.dropped)
		r.metrics.RecordWritten(ctx, r.Operation, r.written)
		r.metrics.RecordRun(ctx, r.Operation, status, duration)
	}
	r.span.End()
	return status
}
