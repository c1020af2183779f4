// Package observe provides telemetry for retry lifecycles: OpenTelemetry
// tracing and metrics plus structured JSON logging.
//
// An Observer owns the telemetry providers. An Instrumenter derived from it
// wraps a retryer.Config so every attempt, retry, pause, and settlement of a
// submission is traced, counted, and logged without the caller touching
// telemetry code:
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "sync-worker",
//	    Tracing:     observe.TracingConfig{Enabled: true, Exporter: "otlp", SamplePct: 1.0},
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer obs.Shutdown(ctx)
//
//	ins, err := observe.NewInstrumenter(obs)
//	if err != nil {
//	    return err
//	}
//
//	cfg := observe.Instrument(ins, observe.OpMeta{Name: "upload"}, retryer.Config[string]{
//	    Fn: upload,
//	})
//	r, err := retryer.Start(ctx, cfg)
//
// Each submission gets one span (retry.op.<name>); attempts, retries, and
// pauses are recorded as counters, and settlement latency as a histogram.
package observe
