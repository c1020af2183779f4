package retryer

import (
	"context"
	"sync"
)

// Retryer executes one unit of work with retry, pause, and cancellation
// semantics. Create one with Start; the zero value is not usable.
//
// Contract:
// - Concurrency: all exported methods are safe for concurrent use.
// - Settlement: the Result settles exactly once; every completion path
//   (success, retry exhaustion, cancellation) passes through the same gate.
// - Once settled, control operations are no-ops.
type Retryer[T any] struct {
	cfg    Config[T]
	result *Result[T]

	mu             sync.Mutex
	failures       int
	resolved       bool
	retryCancelled bool
	// resumeCh is non-nil only while a pause window is open. It is buffered
	// with capacity one so speculative Continue calls collapse into a single
	// pending resume signal.
	resumeCh chan struct{}
}

// CancelOptions carries the flags attached to the CancelError a cancelled
// retryer settles with.
type CancelOptions struct {
	// Revert indicates the caller should roll back effects of the work.
	Revert bool

	// Silent indicates the caller should suppress user-visible reporting.
	Silent bool
}

// Start validates the configuration, applies defaults, and launches the
// retry loop in its own goroutine. The returned Retryer is already running.
//
// If the progress gate denies work at submission time, the engine enters a
// pause window before the first attempt instead of issuing a doomed call.
func Start[T any](ctx context.Context, config Config[T]) (*Retryer[T], error) {
	if config.Fn == nil {
		return nil, ErrNilFunc
	}
	config.applyDefaults()

	r := &Retryer[T]{
		cfg:    config,
		result: newResult[T](),
	}
	go r.loop(ctx)
	return r, nil
}

// Result returns the single-settlement future for this submission.
func (r *Retryer[T]) Result() *Result[T] {
	return r.result
}

// FailureCount returns the number of failures consumed by retry decisions so
// far. It freezes at its last value once the result settles.
func (r *Retryer[T]) FailureCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures
}

// IsResolved reports whether the result has settled.
func (r *Retryer[T]) IsResolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

// IsPaused reports whether a pause window is currently open.
func (r *Retryer[T]) IsPaused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resumeCh != nil
}

// Cancel settles the result with a *CancelError carrying the given flags and
// invokes the Abort hook. It pre-empts any in-flight delay or pause wait. A
// late outcome from an already-running Fn invocation is discarded by the
// settlement gate. Cancelling an already-settled retryer is a no-op and does
// not invoke Abort.
func (r *Retryer[T]) Cancel(opts CancelOptions) {
	settled := r.settleFailure(&CancelError{Revert: opts.Revert, Silent: opts.Silent})
	if settled && r.cfg.Abort != nil {
		r.cfg.Abort()
	}
}

// CancelRetries stops future retries: the next failure-handling decision
// settles the result with that failure's error. In-flight work and the
// current wait are not aborted.
func (r *Retryer[T]) CancelRetries() {
	r.mu.Lock()
	r.retryCancelled = true
	r.mu.Unlock()
}

// ResumeRetries re-enables retries after CancelRetries.
func (r *Retryer[T]) ResumeRetries() {
	r.mu.Lock()
	r.retryCancelled = false
	r.mu.Unlock()
}

// Continue signals a paused retryer to re-evaluate whether it can resume.
// Callers may invoke it speculatively any number of times; signals sent
// while no pause window is open, or beyond the one pending resume slot, are
// dropped.
func (r *Retryer[T]) Continue() {
	r.mu.Lock()
	ch := r.resumeCh
	r.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

// loop applies the startup policy and then runs the retry loop.
func (r *Retryer[T]) loop(ctx context.Context) {
	if !r.cfg.Progress.IsAllowed() {
		if !r.pauseCycle(ctx) {
			return
		}
	}
	r.run(ctx)
}

// run is the execution/retry loop. Each iteration issues one attempt and, on
// failure, walks the retry decision: policy check, delay wait, pause check,
// retry-cancellation check.
func (r *Retryer[T]) run(ctx context.Context) {
	for {
		if r.IsResolved() {
			return
		}

		value, err := r.cfg.Fn(ctx)
		if err == nil {
			r.settleSuccess(value)
			return
		}

		r.mu.Lock()
		if r.resolved {
			// A race was already decided elsewhere.
			r.mu.Unlock()
			return
		}
		failures := r.failures
		cancelled := r.retryCancelled
		r.mu.Unlock()

		retry := r.cfg.Retry.ShouldRetry(failures, err)
		wait := r.cfg.Delay.Delay(failures, err)
		if cancelled || !retry {
			r.settleFailure(err)
			return
		}

		r.mu.Lock()
		r.failures++
		failures = r.failures
		r.mu.Unlock()
		if r.cfg.OnFail != nil {
			r.cfg.OnFail(failures, err)
		}

		select {
		case <-r.cfg.Sleep(wait):
		case <-r.result.Done():
			return
		case <-ctx.Done():
			r.settleFailure(ctx.Err())
			return
		}

		if r.shouldPause() {
			if !r.pauseCycle(ctx) {
				return
			}
		}

		if r.retriesCancelled() {
			// Reject with the failure that triggered this retry decision,
			// not anything raised while waiting or paused.
			r.settleFailure(err)
			return
		}
	}
}

// shouldPause reports whether the engine must pause before the next attempt.
// Attention loss always pauses. Connectivity loss pauses only under
// ModeAlways; under ModeOnline and ModeOfflineFirst the progress gate's own
// semantics govern and are not re-checked here.
func (r *Retryer[T]) shouldPause() bool {
	if !r.cfg.Attention.IsActive() {
		return true
	}
	return r.cfg.Mode == ModeAlways && !r.cfg.Progress.IsAllowed()
}

// pauseCycle opens a pause window and blocks until it closes. Each Continue
// signal re-evaluates the gates: if the engine may resume, the window closes
// and OnContinue fires; otherwise OnPause fires again and the window stays
// open. Returns false when the retryer settled while paused, in which case
// the caller must abandon the loop.
func (r *Retryer[T]) pauseCycle(ctx context.Context) bool {
	for {
		r.mu.Lock()
		if r.resolved {
			r.resumeCh = nil
			r.mu.Unlock()
			return false
		}
		if r.resumeCh == nil {
			r.resumeCh = make(chan struct{}, 1)
		}
		ch := r.resumeCh
		r.mu.Unlock()

		if r.cfg.OnPause != nil {
			r.cfg.OnPause()
		}

		select {
		case <-ch:
		case <-r.result.Done():
			r.clearPause()
			return false
		case <-ctx.Done():
			r.clearPause()
			r.settleFailure(ctx.Err())
			return false
		}

		r.mu.Lock()
		if r.resolved {
			r.resumeCh = nil
			r.mu.Unlock()
			return false
		}
		if !r.shouldPause() {
			r.resumeCh = nil
			r.mu.Unlock()
			if r.cfg.OnContinue != nil {
				r.cfg.OnContinue()
			}
			return true
		}
		r.mu.Unlock()
	}
}

func (r *Retryer[T]) clearPause() {
	r.mu.Lock()
	r.resumeCh = nil
	r.mu.Unlock()
}

func (r *Retryer[T]) retriesCancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryCancelled
}

// settleSuccess settles the result with value. Later settlement attempts are
// no-ops.
func (r *Retryer[T]) settleSuccess(value T) {
	r.mu.Lock()
	if r.resolved {
		r.mu.Unlock()
		return
	}
	r.resolved = true
	r.resumeCh = nil
	r.mu.Unlock()

	if r.cfg.OnSuccess != nil {
		r.cfg.OnSuccess(value)
	}
	r.result.settle(value, nil)
}

// settleFailure settles the result with err, reporting whether this call won
// the settlement. A waiter blocked in a pause window is released by the
// result's Done channel closing.
func (r *Retryer[T]) settleFailure(err error) bool {
	r.mu.Lock()
	if r.resolved {
		r.mu.Unlock()
		return false
	}
	r.resolved = true
	r.resumeCh = nil
	r.mu.Unlock()

	if r.cfg.OnError != nil {
		r.cfg.OnError(err)
	}
	var zero T
	r.result.settle(zero, err)
	return true
}
