package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/logmerge/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The caller shuts it down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("telemetry").Debug("meter initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by merge and filter runs.
type Metrics struct {
	recordsRead    metric.Int64Counter
	recordsDropped metric.Int64Counter
	recordsWritten metric.Int64Counter
	runTotal       metric.Int64Counter
	runDuration    metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	recordsRead, err := meter.Int64Counter("logmerge.records.read",
		metric.WithDescription("Line records pulled from sources"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating logmerge.records.read counter: %w", err)
	}

	recordsDropped, err := meter.Int64Counter("logmerge.records.dropped",
		metric.WithDescription("Line records rejected by the filter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating logmerge.records.dropped counter: %w", err)
	}

	recordsWritten, err := meter.Int64Counter("logmerge.records.written",
		metric.WithDescription("Line contents written to the output"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating logmerge.records.written counter: %w", err)
	}

	runTotal, err := meter.Int64Counter("logmerge.run.total",
		metric.WithDescription("Completed runs by operation and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating logmerge.run.total counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("logmerge.run.duration",
		metric.WithDescription("Duration of runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating logmerge.run.duration histogram: %w", err)
	}

	return &Metrics{
		recordsRead:    recordsRead,
		recordsDropped: recordsDropped,
		recordsWritten: recordsWritten,
		runTotal:       runTotal,
		runDuration:    runDuration,
	}, nil
}

// RecordRead counts n records pulled for operation.
func (m *Metrics) RecordRead(ctx context.Context, operation string, n int64) {
	m.recordsRead.Add(ctx, n, operationAttr(operation))
}

// RecordDropped counts n records rejected by the filter.
func (m *Metrics) RecordDropped(ctx context.Context, operation string, n int64) {
	m.recordsDropped.Add(ctx, n, operationAttr(operation))
}

// RecordWritten counts n contents written to the output.
func (m *Metrics) RecordWritten(ctx context.Context, operation string, n int64) {
	m.recordsWritten.Add(ctx, n, operationAttr(operation))
}

// RecordRun records a completed run.
func (m *Metrics) RecordRun(ctx context.Context, operation, status string, duration time.Duration) {
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), operationAttr(operation))
}

func operationAttr(operation string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("operation", operation))
}
