package xcmd

import (
	"context"
	"time"
)

// PeriodicRun calls execute every period until ctx is done or execute
// fails. Cancellation of ctx is a normal stop and returns nil.
func PeriodicRun(ctx context.Context, execute func(ctx context.Context) error, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if err := execute(ctx); err != nil {
				return err
			}
		}
	}
}
