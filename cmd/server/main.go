package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/jobhub/internal/app"
	"github.com/honeycarbs/jobhub/internal/config"
	"github.com/honeycarbs/jobhub/internal/mcp"
	"github.com/honeycarbs/jobhub/pkg/logging"
	"github.com/honeycarbs/jobhub/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, logging.WithFormat(logging.Format(cfg.LogFormat)))
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	res, cleanup, err := app.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, cfg, res)

	if err := res.Scheduler.Start(ctx); err != nil {
		logger.Error("failed to start warm-up scheduler", "err", err)
		cleanup()
		os.Exit(1)
	}

	logger.Info("MCP server initialized and starting",
		"addr", net.JoinHostPort(cfg.Host, cfg.Port),
		"providers", len(res.Aggregator.Providers()),
		"warmup", cfg.WarmupSchedule,
	)

	err = shutdown.Serve(
		ctx,
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		srv.Run,
		srv,
		shutdown.Func(res.Scheduler.Stop),
		shutdown.Func(func(context.Context) error {
			cleanup()
			return nil
		}),
	)
	if err != nil {
		logger.Error("MCP server exited with error", "err", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("MCP server stopped")
}
