package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels how a submission settled.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeError     Outcome = "error"
	OutcomeCancelled Outcome = "cancelled"
)

// Metrics records retry lifecycle metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordAttempt records one invocation of the unit of work with its
	// duration and error status.
	RecordAttempt(ctx context.Context, meta OpMeta, duration time.Duration, err error)

	// RecordRetry records a retry decision and the failure count that
	// triggered it.
	RecordRetry(ctx context.Context, meta OpMeta, failures int)

	// RecordPause records the opening of a pause window.
	RecordPause(ctx context.Context, meta OpMeta)

	// RecordOutcome records the settlement of a submission and the elapsed
	// time from first attempt to settlement.
	RecordOutcome(ctx context.Context, meta OpMeta, outcome Outcome, elapsed time.Duration)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	attemptCount  metric.Int64Counter
	attemptErrors metric.Int64Counter
	retryCount    metric.Int64Counter
	pauseCount    metric.Int64Counter
	outcomeCount  metric.Int64Counter
	settleHist    metric.Float64Histogram
}

// NewMetrics creates a Metrics instance recording through the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	attemptCount, err := meter.Int64Counter(
		"retry.attempts.total",
		metric.WithDescription("Total number of unit-of-work invocations"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	attemptErrors, err := meter.Int64Counter(
		"retry.attempt.errors",
		metric.WithDescription("Total number of failed unit-of-work invocations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	retryCount, err := meter.Int64Counter(
		"retry.retries.total",
		metric.WithDescription("Total number of retry decisions"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	pauseCount, err := meter.Int64Counter(
		"retry.pauses.total",
		metric.WithDescription("Total number of pause windows opened"),
		metric.WithUnit("{pause}"),
	)
	if err != nil {
		return nil, err
	}

	outcomeCount, err := meter.Int64Counter(
		"retry.outcomes.total",
		metric.WithDescription("Total number of settled submissions by outcome"),
		metric.WithUnit("{settlement}"),
	)
	if err != nil {
		return nil, err
	}

	settleHist, err := meter.Float64Histogram(
		"retry.settle.duration_ms",
		metric.WithDescription("Elapsed time from first attempt to settlement in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		attemptCount:  attemptCount,
		attemptErrors: attemptErrors,
		retryCount:    retryCount,
		pauseCount:    pauseCount,
		outcomeCount:  outcomeCount,
		settleHist:    settleHist,
	}, nil
}

func opAttributes(meta OpMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("op.name", meta.Name),
	}
	if meta.ID != "" {
		attrs = append(attrs, attribute.String("op.id", meta.ID))
	}
	return attrs
}

func (m *metricsImpl) RecordAttempt(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(opAttributes(meta)...)
	m.attemptCount.Add(ctx, 1, opt)
	if err != nil {
		m.attemptErrors.Add(ctx, 1, opt)
	}
}

func (m *metricsImpl) RecordRetry(ctx context.Context, meta OpMeta, failures int) {
	m.retryCount.Add(ctx, 1, metric.WithAttributes(opAttributes(meta)...))
}

func (m *metricsImpl) RecordPause(ctx context.Context, meta OpMeta) {
	m.pauseCount.Add(ctx, 1, metric.WithAttributes(opAttributes(meta)...))
}

func (m *metricsImpl) RecordOutcome(ctx context.Context, meta OpMeta, outcome Outcome, elapsed time.Duration) {
	attrs := append(opAttributes(meta), attribute.String("outcome", string(outcome)))
	opt := metric.WithAttributes(attrs...)
	m.outcomeCount.Add(ctx, 1, opt)
	m.settleHist.Record(ctx, float64(elapsed.Milliseconds()), opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (noopMetrics) RecordAttempt(context.Context, OpMeta, time.Duration, error) {}
func (noopMetrics) RecordRetry(context.Context, OpMeta, int)                    {}
func (noopMetrics) RecordPause(context.Context, OpMeta)                         {}
func (noopMetrics) RecordOutcome(context.Context, OpMeta, Outcome, time.Duration) {
}
