package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/endorses/blockstatd/internal/pkg/constants"
	"github.com/endorses/blockstatd/internal/pkg/logger"
)

// SetupHandler sets up a signal handler that cancels the provided context on
// SIGINT, SIGTERM, or SIGHUP. If onSignal is non-nil it runs before the
// cancellation, so shutdown work that must precede loop exit (like removing
// the PID file) happens while the daemon is still quiescent between cycles.
// Returns a cleanup function that should be called when the signal handler is
// no longer needed.
func SetupHandler(ctx context.Context, cancel context.CancelFunc, onSignal func()) (cleanup func()) {
	sigCh := make(chan os.Signal, constants.SignalChannelBuffer)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case sig, ok := <-sigCh:
			if !ok {
				return
			}
			logger.Info("Received signal, stopping gracefully", "signal", sig.String())
			if onSignal != nil {
				onSignal()
			}
			cancel()
		case <-ctx.Done():
			// Context already cancelled, nothing to do
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
		<-done // Wait for goroutine to exit
	}
}
