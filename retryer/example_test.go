package retryer_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/retryops/gate"
	"github.com/jonwraymond/retryops/retryer"
)

func ExampleStart() {
	attempts := 0

	r, err := retryer.Start(context.Background(), retryer.Config[string]{
		Fn: func(ctx context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("temporary failure")
			}
			return "fetched", nil
		},
		Retry: retryer.RetryCount(3),
		Delay: retryer.DelayFixed(0), // No backoff, for a predictable example
		OnFail: func(failures int, err error) {
			fmt.Printf("failure %d: %v\n", failures, err)
		},
	})
	if err != nil {
		fmt.Println("start:", err)
		return
	}

	value, err := r.Result().Wait(context.Background())
	fmt.Println(value, err)
	// Output:
	// failure 1: temporary failure
	// failure 2: temporary failure
	// fetched <nil>
}

func ExampleRetryer_Cancel() {
	r, err := retryer.Start(context.Background(), retryer.Config[int]{
		Fn: func(ctx context.Context) (int, error) {
			return 0, errors.New("unreachable host")
		},
		Retry: retryer.RetryAlways(),
		Delay: retryer.DelayFixed(time.Hour),
	})
	if err != nil {
		fmt.Println("start:", err)
		return
	}

	// Cancellation pre-empts the pending delay wait.
	r.Cancel(retryer.CancelOptions{Revert: true})

	_, werr := r.Result().Wait(context.Background())
	var ce *retryer.CancelError
	if errors.As(werr, &ce) {
		fmt.Println("cancelled, revert:", ce.Revert)
	}
	// Output:
	// cancelled, revert: true
}

func ExampleRetryer_Continue() {
	offline := gate.NewManual(false)
	paused := make(chan struct{}, 1)

	r, err := retryer.Start(context.Background(), retryer.Config[string]{
		Fn: func(ctx context.Context) (string, error) {
			return "delivered", nil
		},
		Progress: offline,
		OnPause: func() {
			select {
			case paused <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		fmt.Println("start:", err)
		return
	}

	// The progress gate denied work at submission, so no attempt has run.
	<-paused
	offline.Set(true)
	r.Continue()

	value, werr := r.Result().Wait(context.Background())
	fmt.Println(value, werr)
	// Output:
	// delivered <nil>
}
