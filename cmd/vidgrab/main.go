// Package main is the entrypoint of vidgrab.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vidgrab/internal/cfg"
	"vidgrab/internal/downloads"
	"vidgrab/internal/logging"
)

// main is the main entrypoint of the program.
func main() {
	os.Exit(run())
}

// run executes the command tree and returns the process exit code.
func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer logging.Close()

	cfg.InitCommands()
	if err := cfg.Execute(ctx); err != nil {
		if downloads.IsCancelled(err) {
			fmt.Fprintln(os.Stderr, "Cancelled")
			return 130
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
