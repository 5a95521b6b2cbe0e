// Command ingest runs the api-football fetch jobs and the processing pipeline
// from the command line.
//
// Usage:
//
//	epl-ingest fetch-teams --historical
//	epl-ingest fetch-fixtures --season 2023 --season 2024 --status FT
//	epl-ingest fetch-player-stats --limit 50
//	epl-ingest process
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/app"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/config"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(openJobs, os.Stdout)
	root.SetErr(os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// openJobs builds the services against the configured warehouse. Logs go to
// stderr so stdout carries only the JSON summary.
func openJobs(ctx context.Context) (jobs, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return jobs{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSONTo(os.Stderr, cfg.LogLevel).With("service", cfg.ServiceName, "component", "ingest")
	logging.SetDefault(logger)

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		return jobs{}, nil, err
	}
	services := app.NewServices(cfg, db, logger)

	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return jobs{fetch: services.Fetch, pipeline: services.Pipeline}, cleanup, nil
}
