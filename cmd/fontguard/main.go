// Package main provides the fontguard command.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ExitError carries a process exit code. An empty Message exits silently.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp(os.Stdout, os.Stderr).rootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		if exitError.Message != "" {
			fmt.Fprintln(os.Stderr, exitError.Message)
		}
		stop()
		os.Exit(exitError.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	stop()
	os.Exit(1)
}
