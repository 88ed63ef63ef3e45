package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobhub/internal/domain/job"
)

// GraphSnapshotParams defines the arguments for the graph_snapshot tool
type GraphSnapshotParams struct {
	Filter JobFilter `json:"filter,omitempty" jsonschema:"Selects the exported jobs, all jobs when empty"`
}

type graphSnapshotTool struct {
	source JobSource
	writer job.SnapshotWriter
	now    func() time.Time
}

// WithGraphSnapshot registers the graph_snapshot tool. A nil writer makes the
// tool report that Neo4j is not configured.
func WithGraphSnapshot(source JobSource, writer job.SnapshotWriter) Option {
	return func(reg *registry) {
		reg.add(func(reg *registry) {
			t := graphSnapshotTool{source: source, writer: writer, now: reg.now}
			addTool(reg, &sdkmcp.Tool{
				Name:        "graph_snapshot",
				Description: "Write the collected jobs, posters and providers to the Neo4j graph",
			}, t.handle)
		})
	}
}

func (t graphSnapshotTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *GraphSnapshotParams) (*sdkmcp.CallToolResult, any, error) {
	if t.writer == nil {
		return nil, nil, errors.New("graph_snapshot unavailable: Neo4j client not configured")
	}
	if params == nil {
		params = &GraphSnapshotParams{}
	}

	jobs, err := selectJobs(ctx, t.source, params.Filter, t.now())
	if err != nil {
		return nil, nil, fmt.Errorf("graph_snapshot: %w", err)
	}

	stats, err := t.writer.WriteSnapshot(ctx, jobs)
	if err != nil {
		return nil, nil, fmt.Errorf("graph_snapshot: %w", err)
	}

	msg := fmt.Sprintf("[graph_snapshot] wrote %d job(s), %d poster(s), %d provider(s)", stats.Jobs, stats.Posters, stats.Providers)
	return textResult(msg), stats, nil
}
