// Package observability wires OpenTelemetry tracing and metrics into
// logmerge runs.
//
// Export is off unless enabled in configuration; without it the global otel
// providers are no-ops and instrumentation costs next to nothing.
//
//	shutdown, err := observability.Setup(ctx, cfg.Telemetry, "logmerge", version.Version)
//	defer shutdown(ctx)
//
//	metrics, _ := observability.NewMetrics(observability.Meter("logmerge"))
//	ctx, run := observability.StartRun(ctx, "merge", runID, metrics)
//	defer run.End(ctx, err)
package observability
