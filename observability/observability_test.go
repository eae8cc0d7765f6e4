package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func useInMemoryTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func sumOf(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s is not an int64 sum", name)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
	if cfg.Enabled {
		t.Error("export must stay disabled by default")
	}
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, "logmerge", "dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.rate), func(t *testing.T) {
			if got := samplerFor(tc.rate).Description(); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("logmerge", "1.2.3", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := map[string]string{}
	for _, kv := range res.Attributes() {
		found[string(kv.Key)] = kv.Value.Emit()
	}
	if found[AttrServiceName] != "logmerge" {
		t.Errorf("expected service.name logmerge, got %q", found[AttrServiceName])
	}
	if found["deployment.environment"] != "test" {
		t.Errorf("expected environment test, got %q", found["deployment.environment"])
	}
}

func TestNewMetrics(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordRead(ctx, "merge", 3)
	metrics.RecordDropped(ctx, "merge", 1)
	metrics.RecordWritten(ctx, "merge", 2)
	metrics.RecordRun(ctx, "merge", StatusOK, 10*time.Millisecond)
}

func TestStartSpan(t *testing.T) {
	exporter := useInMemoryTracer(t)

	_, span := StartSpan(context.Background(), "test-operation")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "test-operation" {
		t.Fatalf("expected one test-operation span, got %v", spans)
	}
}

func TestRunRecordsSpanAndMetrics(t *testing.T) {
	exporter := useInMemoryTracer(t)
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	ctx, run := StartRun(context.Background(), "merge", "run-1", metrics)
	run.AddRead(5)
	run.AddDropped(2)
	run.AddWritten(3)
	if status := run.End(ctx, nil); status != StatusOK {
		t.Errorf("expected ok, got %s", status)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != SpanRun {
		t.Fatalf("expected one %s span, got %v", SpanRun, spans)
	}
	if spans[0].Status.Code != codes.Ok {
		t.Errorf("expected Ok status, got %v", spans[0].Status.Code)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	if got := sumOf(t, rm, "logmerge.records.read"); got != 5 {
		t.Errorf("expected 5 read, got %d", got)
	}
	if got := sumOf(t, rm, "logmerge.records.dropped"); got != 2 {
		t.Errorf("expected 2 dropped, got %d", got)
	}
	if got := sumOf(t, rm, "logmerge.records.written"); got != 3 {
		t.Errorf("expected 3 written, got %d", got)
	}
	if got := sumOf(t, rm, "logmerge.run.total"); got != 1 {
		t.Errorf("expected 1 run, got %d", got)
	}
}

func TestRunEndWithError(t *testing.T) {
	exporter := useInMemoryTracer(t)

	ctx, run := StartRun(context.Background(), "filter", "run-2", nil)
	if status := run.End(ctx, fmt.Errorf("read failed")); status != StatusError {
		t.Errorf("expected error status, got %s", status)
	}

	span := exporter.GetSpans()[0]
	if span.Status.Code != codes.Error || span.Status.Description != "read failed" {
		t.Errorf("unexpected span status %+v", span.Status)
	}
}

func TestRunCounts(t *testing.T) {
	_, run := StartRun(context.Background(), "merge", "run-3", nil)
	run.AddRead(4)
	run.AddRead(1)
	run.AddWritten(2)
	read, dropped, written := run.Counts()
	if read != 5 || dropped != 0 || written != 2 {
		t.Errorf("got read=%d dropped=%d written=%d", read, dropped, written)
	}
}
