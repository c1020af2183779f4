package retryer

import (
	"context"
	"errors"
	"testing"
)

func BenchmarkRetryer_SuccessFirstAttempt(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r, err := Start(ctx, Config[int]{
			Fn: func(ctx context.Context) (int, error) {
				return 1, nil
			},
			Sleep: sleepNow,
		})
		if err != nil {
			b.Fatal(err)
		}
		if _, err := r.Result().Wait(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRetryer_ThreeRetries(b *testing.B) {
	ctx := context.Background()
	boom := errors.New("boom")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		attempts := 0
		r, err := Start(ctx, Config[int]{
			Fn: func(ctx context.Context) (int, error) {
				attempts++
				if attempts < 4 {
					return 0, boom
				}
				return attempts, nil
			},
			Sleep: sleepNow,
		})
		if err != nil {
			b.Fatal(err)
		}
		if _, err := r.Result().Wait(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDefaultBackoff(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = DefaultBackoff(i % 16)
	}
}
