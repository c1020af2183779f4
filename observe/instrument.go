package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/retryops/retryer"
)

// Instrumenter bundles the telemetry components used to instrument retryer
// submissions. Create one per Observer and reuse it across submissions.
type Instrumenter struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NoopInstrumenter returns an Instrumenter whose telemetry does nothing.
// Useful as a default when no Observer is wired.
func NoopInstrumenter() *Instrumenter {
	return &Instrumenter{
		tracer:  newNoopTracer(),
		metrics: noopMetrics{},
		logger:  &noopLogger{},
	}
}

// NewInstrumenter creates an Instrumenter backed by the observer's tracer,
// meter, and logger.
func NewInstrumenter(obs Observer) (*Instrumenter, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return &Instrumenter{
		tracer:  NewTracer(obs.Tracer()),
		metrics: metrics,
		logger:  obs.Logger(),
	}, nil
}

// opState tracks the telemetry lifecycle of one submission: a single span
// from first attempt to settlement, and the settlement latency clock.
type opState struct {
	once    sync.Once
	mu      sync.Mutex
	ctx     context.Context
	span    trace.Span
	started time.Time
}

func (s *opState) begin(ctx context.Context, tracer Tracer, meta OpMeta) {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.ctx, s.span = tracer.StartSpan(ctx, meta)
		s.started = time.Now()
	})
}

func (s *opState) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *opState) finish(tracer Tracer, err error) time.Duration {
	s.mu.Lock()
	span := s.span
	started := s.started
	s.span = nil
	s.mu.Unlock()

	if span != nil {
		tracer.EndSpan(span, err)
	}
	if started.IsZero() {
		return 0
	}
	return time.Since(started)
}

// Instrument wraps a retryer configuration so every attempt, retry, pause,
// and settlement of the submission is traced, counted, and logged. The
// caller's own callbacks are invoked after the telemetry for each event.
func Instrument[T any](ins *Instrumenter, meta OpMeta, config retryer.Config[T]) (retryer.Config[T], error) {
	if ins == nil {
		return config, ErrNilObserver
	}
	if meta.Name == "" {
		return config, ErrMissingOpName
	}

	logger := ins.logger.WithOp(meta)
	state := &opState{}

	fn := config.Fn
	config.Fn = func(ctx context.Context) (T, error) {
		state.begin(ctx, ins.tracer, meta)
		ctx = state.context()

		start := time.Now()
		value, err := fn(ctx)
		duration := time.Since(start)

		ins.metrics.RecordAttempt(ctx, meta, duration, err)
		logger.Debug(ctx, "attempt finished",
			Field{Key: "duration_ms", Value: float64(duration.Milliseconds())},
			Field{Key: "success", Value: err == nil},
		)
		return value, err
	}

	onFail := config.OnFail
	config.OnFail = func(failures int, err error) {
		ctx := state.context()
		ins.metrics.RecordRetry(ctx, meta, failures)
		logger.Warn(ctx, "attempt failed, retrying",
			Field{Key: "failures", Value: failures},
			Field{Key: "error", Value: err.Error()},
		)
		if onFail != nil {
			onFail(failures, err)
		}
	}

	onPause := config.OnPause
	config.OnPause = func() {
		ctx := state.context()
		ins.metrics.RecordPause(ctx, meta)
		logger.Info(ctx, "retryer paused")
		if onPause != nil {
			onPause()
		}
	}

	onContinue := config.OnContinue
	config.OnContinue = func() {
		logger.Info(state.context(), "retryer resumed")
		if onContinue != nil {
			onContinue()
		}
	}

	onSuccess := config.OnSuccess
	config.OnSuccess = func(value T) {
		elapsed := state.finish(ins.tracer, nil)
		ctx := state.context()
		ins.metrics.RecordOutcome(ctx, meta, OutcomeSuccess, elapsed)
		logger.Info(ctx, "settled",
			Field{Key: "outcome", Value: string(OutcomeSuccess)},
			Field{Key: "elapsed_ms", Value: float64(elapsed.Milliseconds())},
		)
		if onSuccess != nil {
			onSuccess(value)
		}
	}

	onError := config.OnError
	config.OnError = func(err error) {
		outcome := OutcomeError
		if retryer.IsCancelled(err) {
			outcome = OutcomeCancelled
		}
		elapsed := state.finish(ins.tracer, err)
		ctx := state.context()
		ins.metrics.RecordOutcome(ctx, meta, outcome, elapsed)
		logger.Error(ctx, "settled",
			Field{Key: "outcome", Value: string(outcome)},
			Field{Key: "elapsed_ms", Value: float64(elapsed.Milliseconds())},
			Field{Key: "error", Value: err.Error()},
		)
		if onError != nil {
			onError(err)
		}
	}

	return config, nil
}
