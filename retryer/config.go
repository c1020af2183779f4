package retryer

import (
	"context"
	"time"
)

// Func is the unit of work being retried.
type Func[T any] func(ctx context.Context) (T, error)

// AttentionGate reports whether the consumer's context is in a state where
// proceeding visibly matters (for example, foregrounded).
type AttentionGate interface {
	IsActive() bool
}

// ProgressGate reports whether connectivity or other environmental
// conditions permit attempting work.
type ProgressGate interface {
	IsAllowed() bool
}

// Config configures a Retryer for one submission.
type Config[T any] struct {
	// Fn is the unit of work. Required.
	Fn Func[T]

	// Abort is invoked at most once, when the retryer is cancelled via
	// Cancel. It is the caller's chance to tear down in-flight work; the
	// engine itself never force-terminates a running Fn invocation.
	Abort func()

	// OnError is invoked once if the result settles with a failure.
	OnError func(err error)

	// OnSuccess is invoked once if the result settles with a value.
	OnSuccess func(value T)

	// OnFail is invoked before each retry with the number of failures
	// consumed so far (starting at 1) and the error that caused it.
	OnFail func(failures int, err error)

	// OnPause is invoked when the engine enters a pause window, and again
	// each time a Continue signal arrives while the window must stay open.
	OnPause func()

	// OnContinue is invoked when a pause window closes and execution
	// resumes.
	OnContinue func()

	// Retry decides whether a failed attempt is retried.
	// Default: RetryCount(DefaultMaxRetries)
	Retry RetryPolicy

	// Delay computes the wait before the next attempt.
	// Default: DefaultBackoff
	Delay DelayPolicy

	// Mode selects how strongly the progress gate is honored.
	// Default: ModeOnline
	Mode ProgressMode

	// Attention gates pausing on consumer engagement.
	// Default: always active.
	Attention AttentionGate

	// Progress gates attempting work on environmental conditions.
	// Default: always allowed.
	Progress ProgressGate

	// Sleep is the delay primitive used to wait between attempts. Tests
	// inject a deterministic implementation here.
	// Default: time.After
	Sleep func(d time.Duration) <-chan time.Time
}

// alwaysActive is the default AttentionGate.
type alwaysActive struct{}

func (alwaysActive) IsActive() bool { return true }

// alwaysAllowed is the default ProgressGate.
type alwaysAllowed struct{}

func (alwaysAllowed) IsAllowed() bool { return true }

func (c *Config[T]) applyDefaults() {
	if c.Retry.kind == retryUnset {
		c.Retry = RetryCount(DefaultMaxRetries)
	}
	if c.Delay.kind == delayUnset {
		c.Delay = DelayFunc(func(failures int, _ error) time.Duration {
			return DefaultBackoff(failures)
		})
	}
	if c.Attention == nil {
		c.Attention = alwaysActive{}
	}
	if c.Progress == nil {
		c.Progress = alwaysAllowed{}
	}
	if c.Sleep == nil {
		c.Sleep = time.After
	}
}
