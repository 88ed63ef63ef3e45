// Package app assembles the long lived objects shared by the server and the CLI.
package app

import (
	"context"

	"github.com/honeycarbs/jobhub/internal/config"
	"github.com/honeycarbs/jobhub/internal/domain/analysis"
	"github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/internal/domain/job/providers"
	"github.com/honeycarbs/jobhub/internal/metrics"
	"github.com/honeycarbs/jobhub/internal/scheduler"
	storage "github.com/honeycarbs/jobhub/internal/storage/neo4j"
	"github.com/honeycarbs/jobhub/pkg/httpclient"
	"github.com/honeycarbs/jobhub/pkg/logging"
	n4j "github.com/honeycarbs/jobhub/pkg/neo4j"
	"github.com/honeycarbs/jobhub/pkg/sheets"
)

// Resources holds everything the tools and commands work with. Snapshots and
// Sheets are nil when their backends are not configured.
type Resources struct {
	Config     config.Config
	Logger     *logging.Logger
	Metrics    *metrics.Metrics
	Aggregator *job.Aggregator
	Analysis   *analysis.Service
	Scheduler  *scheduler.Scheduler
	Snapshots  job.SnapshotWriter
	Sheets     *sheets.Client
}

func newResources(
	cfg config.Config,
	logger *logging.Logger,
	m *metrics.Metrics,
	agg *job.Aggregator,
	svc *analysis.Service,
	sched *scheduler.Scheduler,
	snapshots job.SnapshotWriter,
	sheetsClient *sheets.Client,
) *Resources {
	return &Resources{
		Config:     cfg,
		Logger:     logger,
		Metrics:    m,
		Aggregator: agg,
		Analysis:   svc,
		Scheduler:  sched,
		Snapshots:  snapshots,
		Sheets:     sheetsClient,
	}
}

// provideHTTPClient builds the client shared by every source adapter
func provideHTTPClient(cfg config.Config) *httpclient.Client {
	return httpclient.New(httpclient.Config{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
}

// provideProviders builds the provider registry from config
func provideProviders(cfg config.Config, client *httpclient.Client, logger *logging.Logger, rec job.Recorder) ([]*job.Provider, error) {
	return providers.Build(providers.Deps{
		Config:   cfg,
		HTTP:     client,
		Logger:   logger,
		Recorder: rec,
	})
}

func provideAnalysis(agg *job.Aggregator) *analysis.Service {
	return analysis.NewService(agg)
}

func provideScheduler(cfg config.Config, agg *job.Aggregator, logger *logging.Logger) (*scheduler.Scheduler, error) {
	return scheduler.New(cfg.WarmupSchedule, agg, logger.Named("scheduler"))
}

// provideNeo4jClient connects when Neo4j is configured. An unreachable
// database disables graph snapshots instead of failing startup.
func provideNeo4jClient(ctx context.Context, cfg config.Config, logger *logging.Logger) (*n4j.Client, func()) {
	if !cfg.Neo4jEnabled() {
		return nil, func() {}
	}

	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	})
	if err != nil {
		logger.Warn("neo4j unavailable, graph snapshots disabled", "err", err)
		return nil, func() {}
	}

	logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
	return client, func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("failed to close neo4j driver", "err", err)
		}
	}
}

func provideSnapshotWriter(client *n4j.Client) job.SnapshotWriter {
	if client == nil {
		return nil
	}
	return storage.NewSnapshotRepository(client)
}

func provideSheetsClient(ctx context.Context, cfg config.Config, logger *logging.Logger) *sheets.Client {
	if cfg.Sheets.CredentialsPath == "" {
		return nil
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		logger.Warn("google sheets unavailable, export disabled", "err", err)
		return nil
	}
	return client
}
