package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"opencanada-grants-parser/internal/observability"
)

// GracefulShutdown returns a context cancelled on SIGINT/SIGTERM. The crawl
// checks it between operations, so an interrupted run still flushes and
// closes the sink before exiting.
func GracefulShutdown(parent context.Context, logger *observability.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
