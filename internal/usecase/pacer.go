package usecase

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer dispatches tasks one at a time with a minimum gap between dispatches.
// It keeps catalog lookups under the provider's rate limit.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer enforcing interval between dispatches.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Run calls task for indexes 0..count-1 sequentially. A failing task is
// reported to onError and the loop moves on; nothing is retried.
// Run stops early only if ctx is done while waiting for the next slot.
// It returns the number of tasks that failed.
func (p *Pacer) Run(ctx context.Context, count int, task func(ctx context.Context, i int) error, onError func(i int, err error)) int {
	failed := 0
	for i := 0; i < count; i++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return failed
		}
		if err := task(ctx, i); err != nil {
			failed++
			if onError != nil {
				onError(i, err)
			}
		}
	}
	return failed
}
