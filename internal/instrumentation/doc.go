// Package instrumentation provides OpenTelemetry instrumentation for
// sheetcheck runs.
//
// sheetcheck is a one-shot command, so telemetry is push-based only. Spans
// and metrics are flushed by Provider.Shutdown at the end of the run. The
// prometheus metrics exporter gathers a dedicated registry and pushes it to a
// Pushgateway under the job "sheetcheck".
//
// # Metrics
//
//   - sheetcheck_check_results_total: Counter of diagnostic checks by check and result
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//
// # Tracing
//
// Spans are created for:
//   - The whole diagnostic run (sheetcheck.run)
//   - Each check (check.<name>)
//   - Google API calls (google.<service>.<operation>)
//   - Outgoing HTTP requests, through otelhttp on the service-account client
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, none, default: none)
//   - PROMETHEUS_PUSHGATEWAY_URL: Pushgateway for the prometheus exporter
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_EXPORTER_OTLP_INSECURE: Use plain HTTP for OTLP (default: false)
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - OTEL_SERVICE_NAME: Service name (default: sheetcheck)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordCheckResult(ctx, "secrets", instrumentation.ResultPass)
package instrumentation
