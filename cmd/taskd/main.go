// Command taskd accepts JSON tasks over HTTP and persists their payloads from
// a priority-ordered background scheduler.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/taskd/pkg/config"
	"github.com/dmitrymomot/taskd/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("taskd exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	var cfg AppConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog.Close()
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	return a.run(ctx)
}
