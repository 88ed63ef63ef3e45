//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobhub/internal/config"
	"github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/internal/metrics"
	"github.com/honeycarbs/jobhub/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Observability
		metrics.New,
		wire.Bind(new(job.Recorder), new(*metrics.Metrics)),

		// Sources
		provideHTTPClient,
		provideProviders,
		job.NewAggregatorWithDeps,

		// Services
		provideAnalysis,
		provideScheduler,

		// Exports
		provideNeo4jClient,
		provideSnapshotWriter,
		provideSheetsClient,

		newResources,
	)

	return nil, nil, nil
}
