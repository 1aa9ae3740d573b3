package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"opinfo/internal/cli"
)

// main only wires the command tree to the process. Commands live in
// internal/cli so they can be exercised in tests.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
