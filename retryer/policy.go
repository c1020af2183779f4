package retryer

import "time"

// Default policy values.
const (
	// DefaultMaxRetries is the number of retries when Config.Retry is unset,
	// giving four total attempts.
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the delay before the first retry under the default
	// delay policy.
	DefaultBaseDelay = time.Second

	// DefaultMaxDelay caps the delay under the default delay policy.
	DefaultMaxDelay = 30 * time.Second
)

// ProgressMode selects how strongly the progress gate is honored.
type ProgressMode int

const (
	// ModeOnline requires the progress gate to permit work before the first
	// attempt starts.
	ModeOnline ProgressMode = iota
	// ModeAlways attempts work regardless of the progress gate, but still
	// pauses between retries while the gate denies progress.
	ModeAlways
	// ModeOfflineFirst issues the first attempt regardless of the progress
	// gate and defers to the gate's own semantics afterwards.
	ModeOfflineFirst
)

// String returns the string representation of the mode.
func (m ProgressMode) String() string {
	switch m {
	case ModeOnline:
		return "online"
	case ModeAlways:
		return "always"
	case ModeOfflineFirst:
		return "offlineFirst"
	default:
		return "unknown"
	}
}

type retryKind int

const (
	retryUnset retryKind = iota
	retryNever
	retryAlways
	retryCount
	retryPredicate
)

// RetryPolicy decides whether a failed attempt is retried. The zero value is
// "unset"; Start substitutes RetryCount(DefaultMaxRetries).
type RetryPolicy struct {
	kind  retryKind
	count int
	pred  func(failures int, err error) bool
}

// RetryNever disables retries; the first failure settles the result.
func RetryNever() RetryPolicy {
	return RetryPolicy{kind: retryNever}
}

// RetryAlways retries every failure until the retryer is cancelled or
// retries are cancelled.
func RetryAlways() RetryPolicy {
	return RetryPolicy{kind: retryAlways}
}

// RetryCount retries while fewer than n retries have been consumed, giving
// n+1 total attempts.
func RetryCount(n int) RetryPolicy {
	return RetryPolicy{kind: retryCount, count: n}
}

// RetryIf retries while pred returns true. The predicate receives the number
// of failures consumed so far (0 for the first failure) and the error that
// caused it.
func RetryIf(pred func(failures int, err error) bool) RetryPolicy {
	return RetryPolicy{kind: retryPredicate, pred: pred}
}

// ShouldRetry reports whether a failure with the given failure count should
// be retried.
func (p RetryPolicy) ShouldRetry(failures int, err error) bool {
	switch p.kind {
	case retryAlways:
		return true
	case retryCount:
		return failures < p.count
	case retryPredicate:
		return p.pred(failures, err)
	default:
		return false
	}
}

type delayKind int

const (
	delayUnset delayKind = iota
	delayFixed
	delayComputed
)

// DelayPolicy computes the wait before the next attempt. The zero value is
// "unset"; Start substitutes the default exponential backoff.
type DelayPolicy struct {
	kind  delayKind
	fixed time.Duration
	fn    func(failures int, err error) time.Duration
}

// DelayFixed waits the same duration before every retry.
func DelayFixed(d time.Duration) DelayPolicy {
	return DelayPolicy{kind: delayFixed, fixed: d}
}

// DelayFunc computes the delay from the failure count and the error that
// triggered the retry.
func DelayFunc(fn func(failures int, err error) time.Duration) DelayPolicy {
	return DelayPolicy{kind: delayComputed, fn: fn}
}

// Delay returns the wait before the next attempt.
func (p DelayPolicy) Delay(failures int, err error) time.Duration {
	switch p.kind {
	case delayFixed:
		return p.fixed
	case delayComputed:
		return p.fn(failures, err)
	default:
		return DefaultBackoff(failures)
	}
}

// DefaultBackoff is the default delay policy: exponential backoff starting at
// DefaultBaseDelay, doubling per failure, capped at DefaultMaxDelay.
func DefaultBackoff(failures int) time.Duration {
	// 1s << 5 already exceeds the cap; guard against shift overflow.
	if failures >= 5 {
		return DefaultMaxDelay
	}
	d := DefaultBaseDelay << uint(failures)
	if d > DefaultMaxDelay {
		return DefaultMaxDelay
	}
	return d
}
