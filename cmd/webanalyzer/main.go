package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// A context that ends on SIGINT/SIGTERM drives graceful shutdown for
	// every command.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
