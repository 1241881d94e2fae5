// Package readiness waits for backing services at startup.
package readiness

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Wait calls ping until it succeeds, retrying with capped Fibonacci backoff for
// at most timeout (30s when non-positive).
func Wait(ctx context.Context, timeout time.Duration, name string, ping func(context.Context) error) error {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxDuration(timeout, b)

	attempt := 0
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := ping(pingCtx); err != nil {
			slog.WarnContext(ctx, "backing service not ready", "service", name, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}

		return nil
	})
}
