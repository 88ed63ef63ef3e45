// Package bamboohr reads openings from BambooHR hosted careers pages.
package bamboohr

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/honeycarbs/jobhub/internal/domain"
	jobdomain "github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/pkg/bamboohr"
	"github.com/honeycarbs/jobhub/pkg/logging"
)

const (
	// NoDescription is used when the detail of an opening cannot be read.
	NoDescription = "No description available."

	datePostedLayout   = time.DateOnly
	defaultConcurrency = 8
)

// Tenant describes one company publishing on BambooHR.
type Tenant struct {
	Name        string
	Location    string
	URI         string
	Description string
	CareersURL  string
	TTL         time.Duration
	// Filter keeps an opening when it returns true. Nil keeps everything.
	Filter func(bamboohr.Opening) bool
}

var (
	Userpilot = Tenant{
		Name:        "Userpilot",
		Location:    "West Bank,Ramallah",
		URI:         "https://www.userpilot.com/",
		Description: "Userpilot software openings in Palestine or remote",
		CareersURL:  "https://userpilot.bamboohr.com/careers",
		TTL:         24 * time.Hour,
		Filter: func(o bamboohr.Opening) bool {
			software := o.DepartmentID.String() == "18573"
			inPalestine := StateCity(o.Location) == "West Bank,Ramallah"
			return software && (inPalestine || o.Remote())
		},
	}

	Foothill = Tenant{
		Name:        "FoothillSolutions",
		Location:    "Nablus",
		URI:         "https://www.foothillsolutions.com/",
		Description: "Foothill Solutions software openings",
		CareersURL:  "https://foothillsolutions.bamboohr.com/careers",
		TTL:         24 * time.Hour,
		Filter: func(o bamboohr.Opening) bool {
			return o.DepartmentID.String() == "18504"
		},
	}
)

// careersClient describes the subset of the BambooHR client used by the adapter.
type careersClient interface {
	Openings(ctx context.Context) ([]bamboohr.Opening, error)
	Detail(ctx context.Context, id string) (bamboohr.Detail, error)
	JobURL(id string) string
}

// Adapter implements job.Adapter. It lists the openings, applies the tenant
// filter and requests each detail concurrently. Jobs keep the list order.
type Adapter struct {
	client      careersClient
	filter      func(bamboohr.Opening) bool
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

func NewAdapter(client careersClient, filter func(bamboohr.Opening) bool, opts ...Option) (*Adapter, error) {
	if client == nil {
		return nil, fmt.Errorf("bamboohr adapter: client is required")
	}
	if filter == nil {
		filter = func(bamboohr.Opening) bool { return true }
	}
	a := &Adapter{
		client:      client,
		filter:      filter,
		concurrency: defaultConcurrency,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// New builds the provider of tenant
func New(tenant Tenant, client careersClient, adapterOpts []Option, opts ...jobdomain.ProviderOption) (*jobdomain.Provider, error) {
	a, err := NewAdapter(client, tenant.Filter, adapterOpts...)
	if err != nil {
		return nil, err
	}
	base := []jobdomain.ProviderOption{
		jobdomain.WithURI(tenant.URI),
		jobdomain.WithDescription(tenant.Description),
		jobdomain.WithTTL(tenant.TTL),
	}
	return jobdomain.NewProvider(tenant.Name, tenant.Location, a, append(base, opts...)...)
}

func (a *Adapter) Fetch(ctx context.Context, p *jobdomain.Provider) (iter.Seq2[domain.Job, error], error) {
	openings, err := a.client.Openings(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]bamboohr.Opening, 0, len(openings))
	for _, o := range openings {
		if a.filter(o) {
			kept = append(kept, o)
		}
	}
	a.logger.Debug("filtered openings", "total", len(openings), "kept", len(kept))

	return jobdomain.FetchDetails(ctx, kept, a.concurrency, func(ctx context.Context, o bamboohr.Opening) (domain.Job, error) {
		return a.detail(ctx, p, o)
	}), nil
}

var _ jobdomain.Adapter = (*Adapter)(nil)

func (a *Adapter) detail(ctx context.Context, p *jobdomain.Provider, o bamboohr.Opening) (domain.Job, error) {
	id := o.ID.String()

	b, err := domain.NewJobBuilder(p.DefaultPoster(), a.client.JobURL(id), o.JobOpeningName, CityState(o.Location))
	if err != nil {
		return domain.Job{}, fmt.Errorf("bamboohr opening %s: %w", id, err)
	}

	status := o.EmploymentStatusLabel
	d, err := a.client.Detail(ctx, id)
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return domain.Job{}, err
	case err != nil:
		a.logger.Warn("opening detail unavailable", "id", id, "error", err)
		b.Description(NoDescription)
	default:
		description := d.Description
		if strings.TrimSpace(description) == "" {
			description = NoDescription
		}
		b.Description(description)
		if d.EmploymentStatusLabel != "" {
			status = d.EmploymentStatusLabel
		}
		if posted, err := time.Parse(datePostedLayout, d.DatePosted); err == nil {
			b.PublishDate(posted)
		}
	}

	return b.VacancyType(vacancyType(status)).Build(), nil
}

// CityState renders "city, state", "Remote" when both are absent and
// "Not available" when only one is known.
func CityState(l bamboohr.Location) string {
	switch {
	case l.City != nil && l.State != nil:
		return *l.City + ", " + *l.State
	case l.City == nil && l.State == nil:
		return "Remote"
	default:
		return "Not available"
	}
}

// StateCity renders "state,city" with absent parts left empty.
func StateCity(l bamboohr.Location) string {
	var city, state string
	if l.City != nil {
		city = *l.City
	}
	if l.State != nil {
		state = *l.State
	}
	return state + "," + city
}

func vacancyType(label string) domain.VacancyType {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "full-time", "full time":
		return domain.VacancyFullTime
	case "part-time", "part time":
		return domain.VacancyPartTime
	case "intern", "internship":
		return domain.VacancyInternship
	case "contractor", "contract":
		return domain.VacancyContractor
	case "temporary":
		return domain.VacancyTemporary
	case "volunteer":
		return domain.VacancyVolunteer
	default:
		return domain.VacancyNotSpecified
	}
}
