package app

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/sonemaro/lintconf/pkg/logger"
)

// signalState tracks the state of signal handling
type signalState struct {
	shutdownInitiated atomic.Bool
}

// exit is replaced in tests.
var exit = os.Exit

// setupSignalHandling cancels the app context on the first SIGINT or SIGTERM
// and exits on the second. The returned func releases the handler.
func (a *App) setupSignalHandling() func() {
	state := &signalState{}
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})

	a.log.Debug("Initializing signal handlers")
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for {
			select {
			case sig := <-sigChan:
				a.handleSignal(sig, state)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}

func (a *App) handleSignal(sig os.Signal, state *signalState) {
	a.log.WithFields(logger.Fields{
		"signal": sig.String(),
	}).Debug("Received system signal")

	if !state.shutdownInitiated.CompareAndSwap(false, true) {
		a.log.Warn("Received second interrupt, forcing exit")
		a.progress.Stop()
		exit(1)
		return
	}

	a.log.Info("Interrupted, cancelling running operations")
	a.cancel()
}
