package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobhub/internal/domain/analysis"
)

// StatsService builds aggregate reports
type StatsService interface {
	Summarize(ctx context.Context, horizon time.Duration) (analysis.Report, error)
}

// JobStatsParams defines the arguments for the job_stats tool
type JobStatsParams struct {
	HorizonDays int `json:"horizon_days,omitempty" jsonschema:"Days ahead to look for deadlines, default 7"`
}

type statsTool struct {
	service StatsService
}

// WithJobStats registers the job_stats tool
func WithJobStats(service StatsService) Option {
	return func(reg *registry) {
		reg.add(func(reg *registry) {
			t := statsTool{service: service}
			addTool(reg, &sdkmcp.Tool{
				Name:        "job_stats",
				Description: "Report totals, provider health, vacancy types and upcoming deadlines",
			}, t.handle)
		})
	}
}

func (t statsTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *JobStatsParams) (*sdkmcp.CallToolResult, any, error) {
	if t.service == nil {
		return nil, nil, fmt.Errorf("job_stats: analysis service not configured")
	}

	horizon := analysis.DefaultHorizon
	if params != nil && params.HorizonDays > 0 {
		horizon = time.Duration(params.HorizonDays) * 24 * time.Hour
	}

	report, err := t.service.Summarize(ctx, horizon)
	if err != nil {
		return nil, nil, fmt.Errorf("job_stats: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[job_stats] %d job(s) from %d provider(s)\n", report.TotalJobs, len(report.Providers))
	for _, p := range report.Providers {
		fmt.Fprintf(&sb, "\n- %s: %s, %d job(s), %d dropped", p.Name, p.Status, p.Jobs, p.Dropped)
	}
	if len(report.UpcomingDeadlines) > 0 {
		fmt.Fprintf(&sb, "\n\nUpcoming deadlines:")
		for _, s := range report.UpcomingDeadlines {
			fmt.Fprintf(&sb, "\n- %s %s at %s", s.Deadline, s.Title, s.Company)
		}
	}

	return textResult(sb.String()), report, nil
}
