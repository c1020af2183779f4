package retryer

import "context"

// Result is a single-settlement future. It settles exactly once with either
// a value or an error, no matter how many completion paths race inside the
// engine.
//
// Contract:
// - Concurrency: safe for concurrent use by any number of waiters.
// - Context: Wait honors cancellation and returns ctx.Err() without
//   consuming the settlement.
type Result[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newResult[T any]() *Result[T] {
	return &Result[T]{done: make(chan struct{})}
}

// settle records the outcome and releases all waiters. The engine's
// settlement gate guarantees it is called at most once.
func (r *Result[T]) settle(value T, err error) {
	r.value = value
	r.err = err
	close(r.done)
}

// Done returns a channel that is closed once the result has settled.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the result settles or ctx is cancelled.
func (r *Result[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Outcome returns the settled value and error. The boolean reports whether
// the result has settled; when false the other returns are meaningless.
func (r *Result[T]) Outcome() (T, error, bool) {
	select {
	case <-r.done:
		return r.value, r.err, true
	default:
		var zero T
		return zero, nil, false
	}
}
