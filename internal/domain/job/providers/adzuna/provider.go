// Package adzuna adapts the Adzuna search API to a job provider.
package adzuna

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/honeycarbs/jobhub/internal/domain"
	jobdomain "github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/pkg/adzuna"
)

const (
	Name       = "Adzuna"
	URI        = "https://www.adzuna.com/"
	DefaultTTL = time.Hour
)

// searchClient describes the subset of the Adzuna client used by the adapter.
type searchClient interface {
	SearchJobs(ctx context.Context, query string, params adzuna.SearchParams) ([]adzuna.Job, error)
}

// Adapter implements job.Adapter using a fixed Adzuna search
type Adapter struct {
	client searchClient
	query  string
	params adzuna.SearchParams
}

// NewAdapter builds an Adzuna adapter running query on every refresh
func NewAdapter(client searchClient, query string, params adzuna.SearchParams) (*Adapter, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna adapter: client is required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("adzuna adapter: query is required")
	}
	return &Adapter{client: client, query: query, params: params}, nil
}

// New builds the Adzuna provider. location is the search area and doubles as
// the provider location.
func New(client searchClient, query, location string, opts ...jobdomain.ProviderOption) (*jobdomain.Provider, error) {
	a, err := NewAdapter(client, query, adzuna.SearchParams{Location: location})
	if err != nil {
		return nil, err
	}
	if location == "" {
		location = "Worldwide"
	}
	base := []jobdomain.ProviderOption{
		jobdomain.WithURI(URI),
		jobdomain.WithDescription(fmt.Sprintf("Adzuna search for %q", query)),
		jobdomain.WithTTL(DefaultTTL),
	}
	return jobdomain.NewProvider(Name, location, a, append(base, opts...)...)
}

// Fetch runs the search once; each distinct company becomes one poster.
func (a *Adapter) Fetch(ctx context.Context, p *jobdomain.Provider) (iter.Seq2[domain.Job, error], error) {
	postings, err := a.client.SearchJobs(ctx, a.query, a.params)
	if err != nil {
		return nil, err
	}

	return func(yield func(domain.Job, error) bool) {
		posters := make(map[string]*domain.Poster)
		for _, j := range postings {
			if !yield(toJob(p, posters, j)) {
				return
			}
		}
	}, nil
}

var _ jobdomain.Adapter = (*Adapter)(nil)

func toJob(p *jobdomain.Provider, posters map[string]*domain.Poster, j adzuna.Job) (domain.Job, error) {
	poster, err := posterFor(p, posters, j)
	if err != nil {
		return domain.Job{}, err
	}

	b, err := domain.NewJobBuilder(poster, j.URL, j.Title, j.Location)
	if err != nil {
		return domain.Job{}, fmt.Errorf("adzuna job %s: %w", j.ID, err)
	}

	return b.Description(j.Description).
		Salary(salary(j.SalaryMin, j.SalaryMax)).
		VacancyType(vacancyType(j.ContractTime, j.ContractType)).
		PublishDate(j.PostedAt).
		Build(), nil
}

func posterFor(p *jobdomain.Provider, posters map[string]*domain.Poster, j adzuna.Job) (*domain.Poster, error) {
	name := strings.TrimSpace(j.CompanyName)
	if name == "" {
		return p.DefaultPoster(), nil
	}
	if poster, ok := posters[name]; ok {
		return poster, nil
	}

	location := j.Location
	if strings.TrimSpace(location) == "" {
		location = p.Location()
	}
	b, err := domain.NewPosterBuilder(p, name, location)
	if err != nil {
		return nil, fmt.Errorf("adzuna job %s: %w", j.ID, err)
	}
	poster := b.Build()
	posters[name] = poster
	return poster, nil
}

func vacancyType(contractTime, contractType string) domain.VacancyType {
	switch {
	case contractType == "contract":
		return domain.VacancyContractor
	case contractTime == "full_time":
		return domain.VacancyFullTime
	case contractTime == "part_time":
		return domain.VacancyPartTime
	default:
		return domain.VacancyNotSpecified
	}
}

func salary(lo, hi float64) string {
	switch {
	case lo > 0 && hi > 0 && lo != hi:
		return fmt.Sprintf("%.0f - %.0f", lo, hi)
	case hi > 0:
		return fmt.Sprintf("%.0f", hi)
	case lo > 0:
		return fmt.Sprintf("%.0f", lo)
	default:
		return ""
	}
}
