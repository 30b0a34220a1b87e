package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/jpstream/internal/config"
	"github.com/jacoelho/jpstream/internal/runner"
)

func main() {
	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	r, exitResult := runner.New(cfg, logger)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return r.Run(ctx)
}
