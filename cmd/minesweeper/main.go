package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "unable to load .env: %s\n", err)
		os.Exit(1)
	}

	logging, err := config.NewLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to read logging config: %s\n", err)
		os.Exit(1)
	}
	logger, closeLog := logging.NewLogger(os.Stderr)
	defer closeLog()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	a := app.New(logger)
	if err := a.Start(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		cancel()
		closeLog()
		os.Exit(1)
	}
}
