package xcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ErrInterrupted is the cancellation cause of a context stopped by a signal.
var ErrInterrupted = errors.New("interrupted")

// WithSignals returns a copy of ctx that is canceled when one of signals
// arrives, SIGINT and SIGTERM if none are given. context.Cause of the
// returned context wraps ErrInterrupted and names the signal. Calling stop
// releases the signal handler.
func WithSignals(ctx context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	ctx, cancel := context.WithCancelCause(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	go func() {
		select {
		case sig := <-sigChan:
			cancel(fmt.Errorf("%w: %s", ErrInterrupted, sig))
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel(context.Canceled)
	}
}
