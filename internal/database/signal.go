package database

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithShutdownSignal returns a context that is cancelled on SIGTERM or SIGINT.
// onSignal, when set, runs before the cancellation so in-flight queries and
// deletes can be reported. The returned stop releases the signal handler.
func WithShutdownSignal(parent context.Context, onSignal func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			if onSignal != nil {
				onSignal(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
