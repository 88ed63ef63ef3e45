package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/domain/job"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// ListJobsParams defines the arguments for the list_jobs tool
type ListJobsParams struct {
	Provider           string `json:"provider,omitempty" jsonschema:"Provider name, all providers when empty"`
	Query              string `json:"query,omitempty" jsonschema:"Case insensitive text matched against title, company and description"`
	Location           string `json:"location,omitempty" jsonschema:"Case insensitive substring of the job location"`
	VacancyType        string `json:"vacancy_type,omitempty" jsonschema:"One of full-time, part-time, internship, contractor, temporary, volunteer, not-specified"`
	ActiveOnly         bool   `json:"active_only,omitempty" jsonschema:"Drop jobs whose deadline has passed"`
	Limit              int    `json:"limit,omitempty" jsonschema:"Maximum jobs returned, default 50, at most 500"`
	Offset             int    `json:"offset,omitempty" jsonschema:"Jobs to skip before the first returned one"`
	IncludeDescription bool   `json:"include_description,omitempty" jsonschema:"Include the full description text"`
}

func (p ListJobsParams) filter() JobFilter {
	return JobFilter{
		Provider:    p.Provider,
		Query:       p.Query,
		Location:    p.Location,
		VacancyType: p.VacancyType,
		ActiveOnly:  p.ActiveOnly,
	}
}

// ListJobsResult is the structured response of list_jobs
type ListJobsResult struct {
	Total int                 `json:"total" jsonschema:"Jobs matching the filter before paging"`
	Jobs  []domain.JobSummary `json:"jobs"`
}

// ProviderInfo describes one provider and its cache
type ProviderInfo struct {
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Description string     `json:"description,omitempty"`
	URI         string     `json:"uri,omitempty"`
	TTL         string     `json:"ttl"`
	Status      job.Status `json:"status"`
	FetchedAt   *time.Time `json:"fetched_at,omitempty"`
	Jobs        int        `json:"jobs"`
	Dropped     int        `json:"dropped"`
	LastError   string     `json:"last_error,omitempty"`
}

// ListProvidersResult is the structured response of list_providers
type ListProvidersResult struct {
	Providers []ProviderInfo `json:"providers"`
}

// PosterJobsParams defines the arguments for the poster_jobs tool
type PosterJobsParams struct {
	Provider string `json:"provider" jsonschema:"Provider name"`
	Poster   string `json:"poster" jsonschema:"Poster (company) name as listed by the provider"`
}

// PosterJobsResult is the structured response of poster_jobs
type PosterJobsResult struct {
	Poster domain.PosterSummary `json:"poster"`
	Jobs   []domain.JobSummary  `json:"jobs"`
}

// RefreshProviderParams defines the arguments for the refresh_provider tool
type RefreshProviderParams struct {
	Provider string `json:"provider" jsonschema:"Provider name"`
}

type jobTools struct {
	source JobSource
	now    func() time.Time
}

// WithJobTools registers list_jobs, list_providers, poster_jobs and refresh_provider
func WithJobTools(source JobSource) Option {
	return func(reg *registry) {
		reg.add(func(reg *registry) {
			t := jobTools{source: source, now: reg.now}

			addTool(reg, &sdkmcp.Tool{
				Name:        "list_jobs",
				Description: "List collected job postings across providers with optional filters and paging",
			}, t.listJobs)

			addTool(reg, &sdkmcp.Tool{
				Name:        "list_providers",
				Description: "List job providers with their cache status, without triggering a fetch",
			}, t.listProviders)

			addTool(reg, &sdkmcp.Tool{
				Name:        "poster_jobs",
				Description: "List the jobs one company published on a provider",
			}, t.posterJobs)

			addTool(reg, &sdkmcp.Tool{
				Name:        "refresh_provider",
				Description: "Discard a provider's cached jobs and fetch them again",
			}, t.refreshProvider)
		})
	}
}

func (t jobTools) listJobs(ctx context.Context, req *sdkmcp.CallToolRequest, params *ListJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &ListJobsParams{}
	}

	jobs, err := selectJobs(ctx, t.source, params.filter(), t.now())
	if err != nil {
		return nil, nil, fmt.Errorf("list_jobs: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)
	offset := min(max(params.Offset, 0), len(jobs))
	page := jobs[offset:min(offset+limit, len(jobs))]

	result := ListJobsResult{
		Total: len(jobs),
		Jobs:  domain.Summaries(page, params.IncludeDescription),
	}

	var sb strings.Builder
	if len(page) == 0 {
		fmt.Fprintf(&sb, "[list_jobs] %d job(s) matched, none in this page", result.Total)
	} else {
		fmt.Fprintf(&sb, "[list_jobs] %d job(s) matched, showing %d-%d\n", result.Total, offset+1, offset+len(page))
	}
	for _, s := range result.Jobs {
		fmt.Fprintf(&sb, "\n- %s at %s (%s) %s", s.Title, s.Company, s.Provider, s.URL)
	}

	return textResult(sb.String()), result, nil
}

func (t jobTools) listProviders(ctx context.Context, req *sdkmcp.CallToolRequest, _ *struct{}) (*sdkmcp.CallToolResult, any, error) {
	providers := t.source.Providers()
	result := ListProvidersResult{Providers: make([]ProviderInfo, 0, len(providers))}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[list_providers] %d provider(s)\n", len(providers))
	for _, p := range providers {
		info := providerInfo(p)
		result.Providers = append(result.Providers, info)
		fmt.Fprintf(&sb, "\n- %s: %s, %d job(s)", info.Name, info.Status, info.Jobs)
		if info.LastError != "" {
			fmt.Fprintf(&sb, ", last error: %s", info.LastError)
		}
	}

	return textResult(sb.String()), result, nil
}

func (t jobTools) posterJobs(ctx context.Context, req *sdkmcp.CallToolRequest, params *PosterJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || strings.TrimSpace(params.Provider) == "" || strings.TrimSpace(params.Poster) == "" {
		return nil, nil, errors.New("poster_jobs: provider and poster are required")
	}

	p, err := findProvider(t.source, params.Provider)
	if err != nil {
		return nil, nil, fmt.Errorf("poster_jobs: %w", err)
	}

	posters, err := p.Posters(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("poster_jobs: %w", err)
	}

	var poster *domain.Poster
	for _, candidate := range posters {
		if strings.EqualFold(candidate.Name(), strings.TrimSpace(params.Poster)) {
			poster = candidate
			break
		}
	}
	if poster == nil {
		return nil, nil, fmt.Errorf("poster_jobs: %q has no jobs on %s", params.Poster, p.Name())
	}

	jobs, err := p.PosterJobs(ctx, poster)
	if err != nil {
		return nil, nil, fmt.Errorf("poster_jobs: %w", err)
	}

	result := PosterJobsResult{
		Poster: poster.Summary(),
		Jobs:   domain.Summaries(jobs, false),
	}
	msg := fmt.Sprintf("[poster_jobs] %s has %d job(s) on %s", poster.Name(), len(jobs), p.Name())
	return textResult(msg), result, nil
}

func (t jobTools) refreshProvider(ctx context.Context, req *sdkmcp.CallToolRequest, params *RefreshProviderParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || strings.TrimSpace(params.Provider) == "" {
		return nil, nil, errors.New("refresh_provider: provider is required")
	}

	p, err := findProvider(t.source, params.Provider)
	if err != nil {
		return nil, nil, fmt.Errorf("refresh_provider: %w", err)
	}

	if _, err := p.Refresh(ctx); err != nil {
		return nil, nil, fmt.Errorf("refresh_provider: %w", err)
	}

	info := providerInfo(p)
	msg := fmt.Sprintf("[refresh_provider] %s is %s with %d job(s)", info.Name, info.Status, info.Jobs)
	return textResult(msg), info, nil
}

func providerInfo(p *job.Provider) ProviderInfo {
	d := p.Diagnostics()
	info := ProviderInfo{
		Name:        p.Name(),
		Location:    p.Location(),
		Description: p.Description(),
		TTL:         p.TTL().String(),
		Status:      d.Status,
		Jobs:        d.Jobs,
		Dropped:     d.Dropped,
		LastError:   d.LastError,
	}
	if u := p.URI(); u != nil {
		info.URI = u.String()
	}
	if !d.FetchedAt.IsZero() {
		at := d.FetchedAt.UTC()
		info.FetchedAt = &at
	}
	return info
}
