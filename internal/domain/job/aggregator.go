package job

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/pkg/logging"
)

var (
	// ErrUnknownProvider is returned when a provider is not part of the registry.
	ErrUnknownProvider = errors.New("provider is not registered")
	// ErrInvalidRegistry is returned by NewAggregator for an unusable provider set.
	ErrInvalidRegistry = errors.New("invalid provider registry")
)

// Option configures Aggregator
type Option func(*config)

type config struct {
	providers []*Provider
	logger    *logging.Logger
}

// WithProviders sets the providers in registration order
func WithProviders(providers ...*Provider) Option {
	return func(c *config) {
		c.providers = append(c.providers, providers...)
	}
}

// WithAggregatorLogger sets the logger
func WithAggregatorLogger(l *logging.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Aggregator fans requests out to a fixed set of providers.
// The provider set cannot change after construction.
type Aggregator struct {
	providers []*Provider
	index     map[Key]*Provider
	logger    *logging.Logger
}

// NewAggregator builds an Aggregator from options
func NewAggregator(opts ...Option) (*Aggregator, error) {
	cfg := &config{logger: logging.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.providers) == 0 {
		return nil, fmt.Errorf("%w: at least one provider is required", ErrInvalidRegistry)
	}

	index := make(map[Key]*Provider, len(cfg.providers))
	for _, p := range cfg.providers {
		if p == nil {
			return nil, fmt.Errorf("%w: nil provider", ErrInvalidRegistry)
		}
		if _, dup := index[p.Key()]; dup {
			return nil, fmt.Errorf("%w: duplicate provider %q", ErrInvalidRegistry, p.Name())
		}
		index[p.Key()] = p
	}

	return &Aggregator{
		providers: append([]*Provider(nil), cfg.providers...),
		index:     index,
		logger:    cfg.logger,
	}, nil
}

// NewAggregatorWithDeps creates an Aggregator with direct dependencies (Wire-compatible)
func NewAggregatorWithDeps(providers []*Provider, logger *logging.Logger) (*Aggregator, error) {
	return NewAggregator(WithProviders(providers...), WithAggregatorLogger(logger))
}

// Providers returns the registry in registration order.
func (a *Aggregator) Providers() []*Provider {
	return append([]*Provider(nil), a.providers...)
}

// ProvidersFiltered returns the registered providers matching pred.
func (a *Aggregator) ProvidersFiltered(pred func(*Provider) bool) []*Provider {
	out := make([]*Provider, 0, len(a.providers))
	for _, p := range a.providers {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// Provider looks a provider up by name, ignoring case.
func (a *Aggregator) Provider(name string) (*Provider, bool) {
	name = strings.TrimSpace(name)
	for _, p := range a.providers {
		if strings.EqualFold(p.Name(), name) {
			return p, true
		}
	}
	return nil, false
}

// AllJobs queries every provider concurrently and concatenates their jobs in
// registration order. A failing provider contributes nothing; AllJobs itself
// never fails.
func (a *Aggregator) AllJobs(ctx context.Context) []domain.Job {
	results := make([][]domain.Job, len(a.providers))

	var g errgroup.Group
	for i, p := range a.providers {
		g.Go(func() error {
			jobs, err := p.Jobs(ctx)
			if err != nil {
				a.logger.Warn("provider jobs unavailable", "provider", p.Name(), "error", err)
				return nil
			}
			results[i] = jobs
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]domain.Job, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// AllJobsFiltered is AllJobs restricted to jobs matching pred.
func (a *Aggregator) AllJobsFiltered(ctx context.Context, pred func(domain.Job) bool) []domain.Job {
	return filter(a.AllJobs(ctx), pred)
}

// JobsFromProvider returns the jobs of the registered provider equal to p.
func (a *Aggregator) JobsFromProvider(ctx context.Context, p *Provider) ([]domain.Job, error) {
	registered, err := a.lookup(p)
	if err != nil {
		return nil, err
	}
	return registered.Jobs(ctx)
}

// JobsFromProviderFiltered is JobsFromProvider restricted to jobs matching pred.
func (a *Aggregator) JobsFromProviderFiltered(ctx context.Context, p *Provider, pred func(domain.Job) bool) ([]domain.Job, error) {
	jobs, err := a.JobsFromProvider(ctx, p)
	if err != nil {
		return nil, err
	}
	return filter(jobs, pred), nil
}

// Warm fetches every provider so later reads are served from cache.
func (a *Aggregator) Warm(ctx context.Context) {
	jobs := a.AllJobs(ctx)

	failed := a.ProvidersFiltered(func(p *Provider) bool {
		return p.Status() == StatusFailed
	})
	names := make([]string, 0, len(failed))
	for _, p := range failed {
		names = append(names, p.Name())
	}

	a.logger.Info("providers warmed", "jobs", len(jobs), "providers", len(a.providers), "failed", names)
}

func (a *Aggregator) lookup(p *Provider) (*Provider, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrUnknownProvider)
	}
	registered, ok := a.index[p.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, p.Name())
	}
	return registered, nil
}

func filter(jobs []domain.Job, pred func(domain.Job) bool) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if pred(j) {
			out = append(out, j)
		}
	}
	return out
}
