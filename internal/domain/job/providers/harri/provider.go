// Package harri reads the openings of a Harri brand profile.
package harri

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/honeycarbs/jobhub/internal/domain"
	jobdomain "github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/pkg/harri"
	"github.com/honeycarbs/jobhub/pkg/logging"
)

const (
	Name        = "Harri"
	Location    = "Palestine, Ramallah, Sateh Marhaba, Al-bireh"
	URI         = "https://harri.com/"
	Description = "Harri Palestine openings"
	BrandID     = "646003"
	DefaultTTL  = 6 * time.Hour

	jobPageBase        = "https://harri.com/careers_palestine/job/"
	defaultConcurrency = 8
)

// gateway describes the subset of the Harri client used by the adapter.
type gateway interface {
	BrandJobs(ctx context.Context, brandID string) ([]harri.Job, error)
	JobDescription(ctx context.Context, jobID int64) (string, error)
}

// Adapter implements job.Adapter. The brand list is fetched first, then one
// description request per job, at most concurrency at a time. Jobs keep the
// brand list order.
type Adapter struct {
	client      gateway
	brandID     string
	concurrency int
	logger      *logging.Logger
}

// Option configures Adapter
type Option func(*Adapter)

func WithConcurrency(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAdapter builds a Harri adapter for brandID
func NewAdapter(client gateway, brandID string, opts ...Option) (*Adapter, error) {
	if client == nil {
		return nil, fmt.Errorf("harri adapter: client is required")
	}
	if brandID == "" {
		return nil, fmt.Errorf("harri adapter: brand id is required")
	}
	a := &Adapter{
		client:      client,
		brandID:     brandID,
		concurrency: defaultConcurrency,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// New builds the Harri provider
func New(client gateway, adapterOpts []Option, opts ...jobdomain.ProviderOption) (*jobdomain.Provider, error) {
	a, err := NewAdapter(client, BrandID, adapterOpts...)
	if err != nil {
		return nil, err
	}
	base := []jobdomain.ProviderOption{
		jobdomain.WithURI(URI),
		jobdomain.WithDescription(Description),
		jobdomain.WithTTL(DefaultTTL),
	}
	return jobdomain.NewProvider(Name, Location, a, append(base, opts...)...)
}

func (a *Adapter) Fetch(ctx context.Context, p *jobdomain.Provider) (iter.Seq2[domain.Job, error], error) {
	list, err := a.client.BrandJobs(ctx, a.brandID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		a.logger.Warn("brand has no open jobs", "brand", a.brandID)
	}

	return jobdomain.FetchDetails(ctx, list, a.concurrency, func(ctx context.Context, hj harri.Job) (domain.Job, error) {
		return a.detail(ctx, p, hj)
	}), nil
}

var _ jobdomain.Adapter = (*Adapter)(nil)

func (a *Adapter) detail(ctx context.Context, p *jobdomain.Provider, hj harri.Job) (domain.Job, error) {
	b, err := domain.NewJobBuilder(p.DefaultPoster(), JobURL(hj), hj.AliasPosition, p.Location())
	if err != nil {
		return domain.Job{}, fmt.Errorf("harri job %d: %w", hj.ID, err)
	}

	description, err := a.client.JobDescription(ctx, hj.ID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.Job{}, err
		}
		a.logger.Warn("job description unavailable", "job_id", hj.ID, "error", err)
		description = ""
	}
	b.Description(description)

	if t, err := harri.ParseDate(hj.PublishDate); err == nil {
		b.PublishDate(t)
	}
	if t, err := harri.ParseDate(hj.EndDate); err == nil {
		b.Deadline(t)
	}

	return b.Build(), nil
}

// JobURL is the public page of a Harri job.
func JobURL(hj harri.Job) string {
	return fmt.Sprintf("%s%d-%s", jobPageBase, hj.ID, slugify(hj.AliasPosition))
}

func slugify(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}
