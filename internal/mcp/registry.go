package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobhub/internal/app"
	"github.com/honeycarbs/jobhub/internal/mcp/tools"
	"github.com/honeycarbs/jobhub/pkg/logging"
)

type ToolRegistry struct {
	logger *logging.Logger
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

// RegisterAll installs every tool backed by res. Export tools are registered
// even when their backend is missing so clients learn why they cannot run.
func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res *app.Resources) []string {
	var exporter tools.SheetsExporter
	if res.Sheets != nil {
		exporter = newSheetsExporter(res.Sheets)
	}

	opts := []tools.Option{
		tools.WithLogger(r.logger.Named("tools")),
		tools.WithJobTools(res.Aggregator),
		tools.WithJobStats(res.Analysis),
		tools.WithSheetsExport(res.Aggregator, exporter),
		tools.WithGraphSnapshot(res.Aggregator, res.Snapshots),
	}
	if res.Metrics != nil {
		opts = append(opts, tools.WithObserver(res.Metrics))
	}

	names := tools.Register(server, opts...)
	r.logger.Info("tools registered", "tools", names)
	return names
}
