package job

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/pkg/logging"
	"github.com/honeycarbs/jobhub/pkg/memo"
)

// DefaultTTL is used when a provider is built without WithTTL.
const DefaultTTL = time.Hour

// Status describes the outcome of a provider's most recent fetch.
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusActive     Status = "ACTIVE"
	StatusFailed     Status = "FAILED"
)

// Adapter turns one external source into jobs.
//
// Fetch returns an error when the source as a whole is unavailable. Errors
// yielded by the sequence concern a single item; the item is dropped and the
// rest of the sequence is still consumed.
type Adapter interface {
	Fetch(ctx context.Context, p *Provider) (iter.Seq2[domain.Job, error], error)
}

// AdapterFunc lets a plain function act as an Adapter.
type AdapterFunc func(ctx context.Context, p *Provider) (iter.Seq2[domain.Job, error], error)

func (f AdapterFunc) Fetch(ctx context.Context, p *Provider) (iter.Seq2[domain.Job, error], error) {
	return f(ctx, p)
}

// Recorder receives the outcome of every completed fetch.
type Recorder interface {
	ObserveFetch(provider string, status Status, jobs, dropped int, elapsed time.Duration)
}

// Key is the identity of a provider.
type Key struct {
	Name        string
	Description string
	URI         string
}

// Diagnostics summarizes the most recent completed fetch.
type Diagnostics struct {
	Status    Status
	FetchedAt time.Time
	Elapsed   time.Duration
	Jobs      int
	Dropped   int
	LastError string
}

// ProviderOption configures a Provider.
type ProviderOption func(*providerConfig)

type providerConfig struct {
	description string
	uri         string
	ttl         time.Duration
	clock       func() time.Time
	logger      *logging.Logger
	recorder    Recorder
}

// WithDescription sets a free text description. It is part of the identity.
func WithDescription(d string) ProviderOption {
	return func(c *providerConfig) {
		c.description = d
	}
}

// WithURI sets the provider's origin URI. It must be absolute.
func WithURI(raw string) ProviderOption {
	return func(c *providerConfig) {
		c.uri = raw
	}
}

// WithTTL sets how long a fetched job list is served from cache.
func WithTTL(ttl time.Duration) ProviderOption {
	return func(c *providerConfig) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) ProviderOption {
	return func(c *providerConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithLogger(l *logging.Logger) ProviderOption {
	return func(c *providerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithRecorder(r Recorder) ProviderOption {
	return func(c *providerConfig) {
		c.recorder = r
	}
}

// Provider is a job source with a cached, periodically refreshed job list.
// Fetch failures never escape Jobs: they mark the provider FAILED and cache an
// empty list until the TTL runs out.
type Provider struct {
	name        string
	location    string
	description string
	uri         *url.URL

	adapter  Adapter
	clock    func() time.Time
	logger   *logging.Logger
	recorder Recorder

	jobs   *memo.Expiring[[]domain.Job]
	poster *domain.Poster

	mu   sync.RWMutex
	diag Diagnostics
}

// NewProvider builds a provider in the PROCESSING state.
func NewProvider(name, location string, adapter Adapter, opts ...ProviderOption) (*Provider, error) {
	cfg := providerConfig{
		ttl:    DefaultTTL,
		clock:  time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" {
		return nil, fmt.Errorf("job.Provider: name is required")
	}
	if location == "" {
		return nil, fmt.Errorf("job.Provider %s: location is required", name)
	}
	if adapter == nil {
		return nil, fmt.Errorf("job.Provider %s: adapter is required", name)
	}

	p := &Provider{
		name:        name,
		location:    location,
		description: cfg.description,
		adapter:     adapter,
		clock:       cfg.clock,
		logger:      cfg.logger.With("provider", name),
		recorder:    cfg.recorder,
		diag:        Diagnostics{Status: StatusProcessing},
	}

	if cfg.uri != "" {
		u, err := domain.ParseAbsoluteURL(cfg.uri)
		if err != nil {
			return nil, fmt.Errorf("job.Provider %s: %w", name, err)
		}
		p.uri = u
	}

	pb, err := domain.NewPosterBuilder(p, p.name, p.location)
	if err != nil {
		return nil, fmt.Errorf("job.Provider %s: %w", name, err)
	}
	p.poster = pb.Website(p.uri).Build()

	p.jobs = memo.New(cfg.ttl, p.refresh, memo.WithClock(cfg.clock))

	return p, nil
}

func (p *Provider) Name() string     { return p.name }
func (p *Provider) Location() string { return p.location }

func (p *Provider) Description() string { return p.description }

// URI returns a copy of the origin URI, or nil.
func (p *Provider) URI() *url.URL {
	if p.uri == nil {
		return nil
	}
	u := *p.uri
	return &u
}

// TTL is the cache lifetime of the job list.
func (p *Provider) TTL() time.Duration {
	return p.jobs.TTL()
}

func (p *Provider) Key() Key {
	k := Key{Name: p.name, Description: p.description}
	if p.uri != nil {
		k.URI = p.uri.String()
	}
	return k
}

// Equal compares providers by name, description and URI.
func (p *Provider) Equal(o *Provider) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Key() == o.Key()
}

// CompareProviders orders providers by URI, then name and description.
func CompareProviders(a, b *Provider) int {
	return domain.CompareOrigins(a, b)
}

// DefaultPoster stands in for the organization when a source does not name one.
func (p *Provider) DefaultPoster() *domain.Poster {
	return p.poster
}

func (p *Provider) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.diag.Status
}

func (p *Provider) Diagnostics() Diagnostics {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.diag
}

// Jobs returns the cached job list, fetching it when the cache is stale.
// The only errors returned come from ctx.
func (p *Provider) Jobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := p.jobs.Get(ctx)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Refresh discards the cached list and fetches it again.
func (p *Provider) Refresh(ctx context.Context) ([]domain.Job, error) {
	if err := p.jobs.Invalidate(ctx); err != nil {
		return nil, err
	}
	return p.Jobs(ctx)
}

// PosterJobs returns the cached jobs published by poster.
func (p *Provider) PosterJobs(ctx context.Context, poster *domain.Poster) ([]domain.Job, error) {
	jobs, err := p.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Job, 0)
	for _, j := range jobs {
		if j.Poster().Equal(poster) {
			out = append(out, j)
		}
	}
	return out, nil
}

// Posters returns the distinct posters of the cached jobs in first seen order.
func (p *Provider) Posters(ctx context.Context) ([]*domain.Poster, error) {
	jobs, err := p.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Poster, 0)
	for _, j := range jobs {
		seen := false
		for _, known := range out {
			if known.Equal(j.Poster()) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, j.Poster())
		}
	}
	return out, nil
}

func (p *Provider) refresh(ctx context.Context) ([]domain.Job, error) {
	start := p.clock()

	jobs, dropped, err := p.collect(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.logger.Warn("fetch interrupted", "error", err)
			return nil, ctxErr
		}

		p.logger.Error("fetch failed", "error", err)
		p.complete(StatusFailed, start, 0, dropped, err)
		return []domain.Job{}, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	p.logger.Info("fetched jobs", "jobs", len(jobs), "dropped", dropped)
	p.complete(StatusActive, start, len(jobs), dropped, nil)
	return jobs, nil
}

var errAdapterPanic = errors.New("adapter panicked")

func (p *Provider) collect(ctx context.Context) (jobs []domain.Job, dropped int, err error) {
	defer func() {
		if r := recover(); r != nil {
			jobs = nil
			err = fmt.Errorf("%w: %v", errAdapterPanic, r)
		}
	}()

	seq, err := p.adapter.Fetch(ctx, p)
	if err != nil {
		return nil, 0, err
	}

	jobs = make([]domain.Job, 0)
	for j, itemErr := range seq {
		if errors.Is(itemErr, ErrSkip) {
			continue
		}
		if itemErr != nil {
			dropped++
			p.logger.Warn("dropped job", "error", itemErr)
			continue
		}
		jobs = append(jobs, j)
	}

	return jobs, dropped, nil
}

func (p *Provider) complete(status Status, start time.Time, jobs, dropped int, err error) {
	now := p.clock()
	elapsed := now.Sub(start)

	p.mu.Lock()
	p.diag = Diagnostics{
		Status:    status,
		FetchedAt: now,
		Elapsed:   elapsed,
		Jobs:      jobs,
		Dropped:   dropped,
	}
	if err != nil {
		p.diag.LastError = err.Error()
	}
	p.mu.Unlock()

	if p.recorder != nil {
		p.recorder.ObserveFetch(p.name, status, jobs, dropped, elapsed)
	}
}

func (p *Provider) String() string {
	return p.name
}
