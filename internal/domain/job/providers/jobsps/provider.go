// Package jobsps scrapes the IT category of jobs.ps.
package jobsps

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/honeycarbs/jobhub/internal/domain"
	jobdomain "github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/pkg/logging"
)

const (
	Name        = "Jobs.ps"
	Location    = "Ramallah"
	URI         = "https://www.jobs.ps/"
	Description = "IT category of jobs.ps"
	ListURL     = "https://www.jobs.ps/en/categories/it-jobs"
	DefaultTTL  = 3 * time.Hour

	defaultConcurrency = 4
)

// ErrMissingField is wrapped when a detail or company page lacks a field.
var ErrMissingField = errors.New("missing field")

// documentFetcher is satisfied by *httpclient.Client.
type documentFetcher interface {
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// Adapter implements job.Adapter. The category page lists the postings; each
// posting needs its detail page and the company page of its poster. Postings
// are processed concurrently and yielded in category page order.
type Adapter struct {
	http        documentFetcher
	listURL     string
	clock       func() time.Time
	concurrency int
	logger      *logging.Logger
}

// Option configures Adapter
type Option func(*Adapter)

// WithListURL overrides the category page.
func WithListURL(u string) Option {
	return func(a *Adapter) {
		if u != "" {
			a.listURL = u
		}
	}
}

// WithClock sets the clock used to date listings, which omit the year.
func WithClock(clock func() time.Time) Option {
	return func(a *Adapter) {
		if clock != nil {
			a.clock = clock
		}
	}
}

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

func NewAdapter(http documentFetcher, opts ...Option) (*Adapter, error) {
	if http == nil {
		return nil, fmt.Errorf("jobsps adapter: http client is required")
	}
	a := &Adapter{
		http:        http,
		listURL:     ListURL,
		clock:       time.Now,
		concurrency: defaultConcurrency,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// New builds the Jobs.ps provider
func New(http documentFetcher, adapterOpts []Option, opts ...jobdomain.ProviderOption) (*jobdomain.Provider, error) {
	a, err := NewAdapter(http, adapterOpts...)
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

type listing struct {
	url       string
	published string
}

func (a *Adapter) Fetch(ctx context.Context, p *jobdomain.Provider) (iter.Seq2[domain.Job, error], error) {
	doc, err := a.http.GetDocument(ctx, a.listURL)
	if err != nil {
		return nil, err
	}

	var listings []listing
	doc.Find(listingSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		listings = append(listings, listing{
			url:       resolve(doc.Url, href),
			published: strings.TrimSpace(s.Find(listingDateSelector).First().Text()),
		})
	})
	a.logger.Debug("parsed category page", "listings", len(listings))

	posters := newPosterCache()
	return jobdomain.FetchDetails(ctx, listings, a.concurrency, func(ctx context.Context, l listing) (domain.Job, error) {
		return a.detail(ctx, p, posters, l)
	}), nil
}

var _ jobdomain.Adapter = (*Adapter)(nil)

func (a *Adapter) detail(ctx context.Context, p *jobdomain.Provider, posters *posterCache, l listing) (domain.Job, error) {
	doc, err := a.http.GetDocument(ctx, l.url)
	if err != nil {
		return domain.Job{}, err
	}

	if doc.Find(expiredSelector).Length() > 0 {
		return domain.Job{}, jobdomain.ErrSkip
	}

	published, err := parseListingDate(l.published, a.clock())
	if err != nil {
		return domain.Job{}, fmt.Errorf("jobsps %s: %w", l.url, err)
	}

	posterURL, ok := doc.Find(posterLinkSelector).First().Attr("href")
	if !ok {
		return domain.Job{}, fmt.Errorf("jobsps %s: %w: company link", l.url, ErrMissingField)
	}
	poster, err := posters.get(resolve(doc.Url, posterURL), func(u string) (*domain.Poster, error) {
		return a.poster(ctx, p, u)
	})
	if err != nil {
		return domain.Job{}, fmt.Errorf("jobsps %s: %w", l.url, err)
	}

	return buildJob(doc, poster, l.url, published)
}

func buildJob(doc *goquery.Document, poster *domain.Poster, jobURL string, published time.Time) (domain.Job, error) {
	f := fields{doc: doc.Selection}

	title := f.require("title", titleSelector)
	location := f.require("location", locationSelector)
	description := f.require("description", descriptionSelector)
	requirements := f.require("requirements", requirementsSelector)
	deadlineText := f.require("deadline", deadlineSelector)
	vacancy := f.require("vacancy type", vacancySelector)
	level := f.require("position level", levelSelector)
	degree := f.require("degree", degreeSelector)
	salary := f.require("salary", salarySelector)
	experience := f.require("experience", experienceSelector)
	if f.err != nil {
		return domain.Job{}, fmt.Errorf("jobsps %s: %w", jobURL, f.err)
	}

	deadline, err := time.Parse(time.DateOnly, deadlineText)
	if err != nil {
		return domain.Job{}, fmt.Errorf("jobsps %s: deadline: %w", jobURL, err)
	}

	b, err := domain.NewJobBuilder(poster, jobURL, title, location)
	if err != nil {
		return domain.Job{}, err
	}

	return b.Description(description).
		Requirements(requirements).
		Deadline(deadline).
		ApplyInstructions(strings.TrimSpace(doc.Find(instructionsSelector).Text())).
		VacancyType(vacancyType(vacancy)).
		Salary(salary).
		Degree(degree).
		PositionLevel(level).
		Experience(experience).
		PublishDate(published).
		Build(), nil
}

func (a *Adapter) poster(ctx context.Context, p *jobdomain.Provider, pageURL string) (*domain.Poster, error) {
	doc, err := a.http.GetDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	f := fields{doc: doc.Selection}
	name := f.require("company name", companyNameSelector)
	website := f.require("company website", companyWebsiteSelector)
	location := f.require("company location", companyLocationSelector)
	established := f.require("establishment date", companyEstablishedSelector)
	if f.err != nil {
		return nil, f.err
	}

	websiteURL, err := domain.ParseAbsoluteURL(website)
	if err != nil {
		return nil, fmt.Errorf("company website: %w", err)
	}
	establishedAt, err := time.Parse(time.DateOnly, established)
	if err != nil {
		return nil, fmt.Errorf("establishment date: %w", err)
	}
	profile, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	b, err := domain.NewPosterBuilder(p, name, location)
	if err != nil {
		return nil, err
	}
	return b.Website(websiteURL).ProfileURI(profile).Established(establishedAt).Build(), nil
}

// fields collects required texts and remembers the first missing one.
type fields struct {
	doc *goquery.Selection
	err error
}

func (f *fields) require(name, selector string) string {
	sel := f.doc.Find(selector).First()
	if sel.Length() == 0 {
		if f.err == nil {
			f.err = fmt.Errorf("%w: %s", ErrMissingField, name)
		}
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

// posterCache shares one company page fetch between the postings of a refresh.
type posterCache struct {
	mu      sync.Mutex
	entries map[string]*posterEntry
}

type posterEntry struct {
	once   sync.Once
	poster *domain.Poster
	err    error
}

func newPosterCache() *posterCache {
	return &posterCache{entries: make(map[string]*posterEntry)}
}

func (c *posterCache) get(u string, load func(string) (*domain.Poster, error)) (*domain.Poster, error) {
	c.mu.Lock()
	e, ok := c.entries[u]
	if !ok {
		e = &posterEntry{}
		c.entries[u] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.poster, e.err = load(u)
	})
	return e.poster, e.err
}

// parseListingDate reads "2, Jan" style dates, which carry no year.
func parseListingDate(text string, now time.Time) (time.Time, error) {
	t, err := time.Parse("2, Jan 2006", fmt.Sprintf("%s %d", strings.TrimSpace(text), now.Year()))
	if err != nil {
		return time.Time{}, fmt.Errorf("publish date %q: %w", text, err)
	}
	return t, nil
}

func vacancyType(text string) domain.VacancyType {
	switch strings.TrimSpace(text) {
	case "Full time", "Part time and Full time":
		return domain.VacancyFullTime
	case "Part time":
		return domain.VacancyPartTime
	case "Contract and Consultation":
		return domain.VacancyContractor
	default:
		return domain.VacancyNotSpecified
	}
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
