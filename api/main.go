package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// @title Epidemic Statistics API
// @version 1.0
// @description Read-only reporting API over epidemic daily statistics.
// @host localhost:8080
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
