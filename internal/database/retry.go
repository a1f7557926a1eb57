package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campushub/internal/middleware"
	"campushub/internal/observability"
)

// RetryForever calls attempt until it succeeds, waiting delay between failures.
// It only gives up when ctx is cancelled.
func RetryForever[T any](ctx context.Context, driver string, delay time.Duration, attempt func(context.Context) (T, error)) (T, error) {
	for n := 1; ; n++ {
		v, err := attempt(ctx)
		if err == nil {
			observability.DatabaseConnectAttempts.WithLabelValues(driver, "success").Inc()
			return v, nil
		}
		observability.DatabaseConnectAttempts.WithLabelValues(driver, "failure").Inc()
		middleware.Logger.WarnContext(ctx, "database connection failed, retrying",
			slog.String("driver", driver),
			slog.Int("attempt", n),
			slog.Duration("retry_in", delay),
			slog.String("error", err.Error()),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			var zero T
			return zero, fmt.Errorf("%s connection abandoned after %d attempts: %w", driver, n, ctx.Err())
		case <-timer.C:
		}
	}
}
