package analysis

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/domain/job"
)

// DefaultHorizon bounds upcoming deadlines when no horizon is given.
const DefaultHorizon = 7 * 24 * time.Hour

// Source is the read side of the aggregator used for reports.
type Source interface {
	Providers() []*job.Provider
	AllJobs(ctx context.Context) []domain.Job
}

// ProviderStats is the state of one provider after its latest fetch.
type ProviderStats struct {
	Name      string     `json:"name"`
	Status    job.Status `json:"status"`
	Jobs      int        `json:"jobs"`
	Dropped   int        `json:"dropped"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// VacancyCount counts jobs of one vacancy type.
type VacancyCount struct {
	Type  domain.VacancyType `json:"type"`
	Count int                `json:"count"`
}

// Report aggregates the current job set.
type Report struct {
	GeneratedAt       time.Time           `json:"generated_at"`
	TotalJobs         int                 `json:"total_jobs"`
	Providers         []ProviderStats     `json:"providers"`
	VacancyTypes      []VacancyCount      `json:"vacancy_types"`
	UpcomingDeadlines []domain.JobSummary `json:"upcoming_deadlines"`
}

// Service builds reports over a job source
type Service struct {
	source Source
	now    func() time.Time
}

// Option configures Service
type Option func(*Service)

// WithClock sets a custom clock
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates an analysis service
func NewService(source Source, opts ...Option) *Service {
	s := &Service{source: source, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize collects every provider's jobs and reports totals, provider
// health, vacancy type counts and the deadlines falling within horizon from
// today. Expired jobs are not listed as upcoming.
func (s *Service) Summarize(ctx context.Context, horizon time.Duration) (Report, error) {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	jobs := s.source.AllJobs(ctx)
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	now := s.now()
	today := domain.Date(now)
	until := today.Add(horizon)

	report := Report{
		GeneratedAt:       now.UTC(),
		TotalJobs:         len(jobs),
		Providers:         providerStats(s.source.Providers()),
		VacancyTypes:      vacancyCounts(jobs),
		UpcomingDeadlines: make([]domain.JobSummary, 0),
	}

	upcoming := make([]domain.Job, 0)
	for _, j := range jobs {
		deadline, ok := j.Deadline()
		if !ok || deadline.Before(today) || deadline.After(until) {
			continue
		}
		upcoming = append(upcoming, j)
	}
	slices.SortStableFunc(upcoming, func(a, b domain.Job) int {
		da, _ := a.Deadline()
		db, _ := b.Deadline()
		return cmp.Or(da.Compare(db), domain.CompareJobs(a, b))
	})
	report.UpcomingDeadlines = domain.Summaries(upcoming, false)

	return report, nil
}

func providerStats(providers []*job.Provider) []ProviderStats {
	out := make([]ProviderStats, 0, len(providers))
	for _, p := range providers {
		d := p.Diagnostics()
		ps := ProviderStats{
			Name:      p.Name(),
			Status:    d.Status,
			Jobs:      d.Jobs,
			Dropped:   d.Dropped,
			LastError: d.LastError,
		}
		if !d.FetchedAt.IsZero() {
			at := d.FetchedAt.UTC()
			ps.FetchedAt = &at
		}
		out = append(out, ps)
	}
	return out
}

// vacancyCounts lists every vacancy type in declaration order, zeros included.
func vacancyCounts(jobs []domain.Job) []VacancyCount {
	counts := make(map[domain.VacancyType]int, len(domain.VacancyTypes))
	for _, j := range jobs {
		counts[j.VacancyType()]++
	}
	out := make([]VacancyCount, 0, len(domain.VacancyTypes))
	for _, v := range domain.VacancyTypes {
		out = append(out, VacancyCount{Type: v, Count: counts[v]})
	}
	return out
}
