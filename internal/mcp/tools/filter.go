package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/domain/job"
)

// JobSource is the read side of the aggregator used by the tools.
type JobSource interface {
	Providers() []*job.Provider
	Provider(name string) (*job.Provider, bool)
	AllJobsFiltered(ctx context.Context, pred func(domain.Job) bool) []domain.Job
	JobsFromProviderFiltered(ctx context.Context, p *job.Provider, pred func(domain.Job) bool) ([]domain.Job, error)
}

// JobFilter narrows the aggregated job list
type JobFilter struct {
	Provider    string `json:"provider,omitempty" jsonschema:"Provider name, all providers when empty"`
	Query       string `json:"query,omitempty" jsonschema:"Case insensitive text matched against title, company and description"`
	Location    string `json:"location,omitempty" jsonschema:"Case insensitive substring of the job location"`
	VacancyType string `json:"vacancy_type,omitempty" jsonschema:"One of full-time, part-time, internship, contractor, temporary, volunteer, not-specified"`
	ActiveOnly  bool   `json:"active_only,omitempty" jsonschema:"Drop jobs whose deadline has passed"`
}

func findProvider(src JobSource, name string) (*job.Provider, error) {
	p, ok := src.Provider(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", job.ErrUnknownProvider, name)
	}
	return p, nil
}

func (f JobFilter) filter() (job.Filter, error) {
	out := job.Filter{
		Query:      f.Query,
		Location:   f.Location,
		ActiveOnly: f.ActiveOnly,
	}
	if f.VacancyType != "" {
		v, err := domain.ParseVacancyType(f.VacancyType)
		if err != nil {
			return job.Filter{}, err
		}
		out.VacancyType = v
	}
	return out, nil
}

// selectJobs applies f to one provider or to all of them.
func selectJobs(ctx context.Context, src JobSource, f JobFilter, now time.Time) ([]domain.Job, error) {
	jf, err := f.filter()
	if err != nil {
		return nil, err
	}
	pred := jf.Match(now)
	if strings.TrimSpace(f.Provider) == "" {
		return src.AllJobsFiltered(ctx, pred), nil
	}
	p, err := findProvider(src, f.Provider)
	if err != nil {
		return nil, err
	}
	return src.JobsFromProviderFiltered(ctx, p, pred)
}
