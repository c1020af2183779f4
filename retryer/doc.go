// Package retryer provides a cancellable, pausable retry engine for
// asynchronous units of work.
//
// A Retryer owns one execution lifecycle: it runs the unit of work, and on
// failure consults a retry policy and a delay policy to decide whether and
// when to try again. Between attempts the engine may pause, for example
// because the host reports that the consumer is not engaged or that
// connectivity does not permit progress. The final outcome is surfaced
// exactly once through a single-settlement Result.
//
// # Usage
//
//	r, err := retryer.Start(ctx, retryer.Config[string]{
//	    Fn: func(ctx context.Context) (string, error) {
//	        return fetchRemote(ctx)
//	    },
//	    Retry: retryer.RetryCount(3),
//	    OnFail: func(failures int, err error) {
//	        log.Printf("attempt failed (%d): %v", failures, err)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	value, err := r.Result().Wait(ctx)
//
// # Control operations
//
// A running Retryer exposes four control operations, all safe to call from
// any goroutine at any time:
//
//   - Cancel settles the result with a *CancelError and invokes the Abort
//     hook. It pre-empts any in-flight delay or pause wait.
//   - Continue signals a paused engine to re-evaluate whether it can resume.
//     Speculative calls are harmless.
//   - CancelRetries stops future retries without aborting in-flight work;
//     the next failure settles the result.
//   - ResumeRetries re-enables retries.
//
// Once the Result has settled, every control operation is a no-op.
//
// # Pausing
//
// Whether the engine pauses between attempts is decided by two injected
// gates: an AttentionGate (is the consumer's context engaged) and a
// ProgressGate (do conditions permit work). The ProgressMode selects how
// strongly the progress gate is honored. The gate package provides
// implementations suitable for hosts and for deterministic tests.
package retryer
