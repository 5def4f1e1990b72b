//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// setupShutdownHandler returns a context canceled on an interrupt signal.
// syscall.SIGTERM is not available on Windows, so only os.Interrupt is used.
func setupShutdownHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		<-sigChan
		signal.Stop(sigChan)
		cancel()
	}()

	return ctx, cancel
}
