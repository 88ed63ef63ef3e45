// Package recruitee reads AsalTech openings from its Recruitee careers widget.
package recruitee

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/honeycarbs/jobhub/internal/domain"
	jobdomain "github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/pkg/recruitee"
)

const (
	Name        = "AsalTech"
	Location    = "Ramallah,rawabi"
	URI         = "https://www.asaltech.com/"
	Description = "Asal Technologies openings published through Recruitee"
	CompanyID   = "40756"
	DefaultTTL  = 24 * time.Hour

	// ITCategory is the Recruitee category code of software positions.
	ITCategory = "information_technology"
)

// offersClient describes the subset of the Recruitee client used by the adapter.
type offersClient interface {
	Offers(ctx context.Context) ([]recruitee.Offer, error)
}

// Adapter implements job.Adapter over a Recruitee widget
type Adapter struct {
	client   offersClient
	category string
}

// NewAdapter builds an adapter keeping only offers of category.
// An empty category keeps every offer.
func NewAdapter(client offersClient, category string) (*Adapter, error) {
	if client == nil {
		return nil, fmt.Errorf("recruitee adapter: client is required")
	}
	return &Adapter{client: client, category: category}, nil
}

// New builds the AsalTech provider
func New(client offersClient, opts ...jobdomain.ProviderOption) (*jobdomain.Provider, error) {
	a, err := NewAdapter(client, ITCategory)
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

// Fetch loads the widget once and yields the matching offers in widget order.
func (a *Adapter) Fetch(ctx context.Context, p *jobdomain.Provider) (iter.Seq2[domain.Job, error], error) {
	offers, err := a.client.Offers(ctx)
	if err != nil {
		return nil, err
	}

	return func(yield func(domain.Job, error) bool) {
		for _, o := range offers {
			if a.category != "" && o.CategoryCode != a.category {
				continue
			}
			if !yield(toJob(p, o)) {
				return
			}
		}
	}, nil
}

var _ jobdomain.Adapter = (*Adapter)(nil)

func toJob(p *jobdomain.Provider, o recruitee.Offer) (domain.Job, error) {
	location := o.Location
	if strings.TrimSpace(location) == "" {
		location = p.Location()
	}

	b, err := domain.NewJobBuilder(p.DefaultPoster(), o.CareersURL, o.Title, location)
	if err != nil {
		return domain.Job{}, fmt.Errorf("recruitee offer %d: %w", o.ID, err)
	}

	b.Description(o.Description).
		Requirements(o.Requirements).
		VacancyType(vacancyType(o.EmploymentTypeCode))

	if o.PublishedAt != "" {
		published, err := recruitee.ParsePublished(o.PublishedAt)
		if err != nil {
			return domain.Job{}, fmt.Errorf("recruitee offer %d: %w", o.ID, err)
		}
		b.PublishDate(published)
	}

	return b.Build(), nil
}

func vacancyType(code string) domain.VacancyType {
	switch strings.ToLower(code) {
	case "fulltime", "fulltime_permanent", "fulltime_fixed_term":
		return domain.VacancyFullTime
	case "parttime", "parttime_permanent", "parttime_fixed_term":
		return domain.VacancyPartTime
	case "internship", "traineeship":
		return domain.VacancyInternship
	case "contract", "freelance":
		return domain.VacancyContractor
	case "temporary", "seasonal":
		return domain.VacancyTemporary
	case "volunteer":
		return domain.VacancyVolunteer
	default:
		return domain.VacancyNotSpecified
	}
}
