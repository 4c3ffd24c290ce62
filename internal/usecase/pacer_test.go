package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPacerRun(t *testing.T) {
	t.Run("runs every task in order", func(t *testing.T) {
		var order []int
		failed := NewPacer(0).Run(context.Background(), 4, func(ctx context.Context, i int) error {
			order = append(order, i)
			return nil
		}, nil)

		if failed != 0 {
			t.Errorf("failed = %d, want 0", failed)
		}
		if len(order) != 4 || order[0] != 0 || order[3] != 3 {
			t.Errorf("order = %v, want [0 1 2 3]", order)
		}
	})

	t.Run("a failing task does not stop the loop", func(t *testing.T) {
		var ran, reported []int
		failed := NewPacer(0).Run(context.Background(), 5, func(ctx context.Context, i int) error {
			ran = append(ran, i)
			if i%2 == 1 {
				return errors.New("lookup failed")
			}
			return nil
		}, func(i int, err error) {
			reported = append(reported, i)
		})

		if failed != 2 {
			t.Errorf("failed = %d, want 2", failed)
		}
		if len(ran) != 5 {
			t.Errorf("ran %d tasks, want 5", len(ran))
		}
		if len(reported) != 2 || reported[0] != 1 || reported[1] != 3 {
			t.Errorf("reported = %v, want [1 3]", reported)
		}
	})

	t.Run("failed tasks are not retried", func(t *testing.T) {
		calls := 0
		NewPacer(0).Run(context.Background(), 1, func(ctx context.Context, i int) error {
			calls++
			return errors.New("boom")
		}, nil)

		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("spaces dispatches by the interval", func(t *testing.T) {
		interval := 20 * time.Millisecond
		start := time.Now()

		NewPacer(interval).Run(context.Background(), 3, func(ctx context.Context, i int) error {
			return nil
		}, nil)

		// First dispatch is immediate, the next two wait one interval each
		if elapsed := time.Since(start); elapsed < 2*interval-5*time.Millisecond {
			t.Errorf("elapsed = %v, want at least ~%v", elapsed, 2*interval)
		}
	})

	t.Run("stops when the context is cancelled while waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0

		NewPacer(time.Hour).Run(ctx, 3, func(ctx context.Context, i int) error {
			calls++
			cancel()
			return nil
		}, nil)

		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("zero count does nothing", func(t *testing.T) {
		failed := NewPacer(0).Run(context.Background(), 0, func(ctx context.Context, i int) error {
			t.Error("task should not run")
			return nil
		}, nil)

		if failed != 0 {
			t.Errorf("failed = %d, want 0", failed)
		}
	})
}
