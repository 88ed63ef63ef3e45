// Package foras scrapes the software opportunities listed on foras.ps.
package foras

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/honeycarbs/jobhub/internal/domain"
	jobdomain "github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/pkg/logging"
)

const (
	Name        = "Foras.ps"
	Location    = "Ramallah, Palestine"
	URI         = "https://foras.ps"
	Description = "Software and IT opportunities on foras.ps"
	ListURL     = "https://foras.ps/opportunities?category=3&major=1,11&datePosted=AnyTime&orderBy=date"
	DefaultTTL  = 3 * time.Hour

	deadlineLayout = "02/01/2006"
	detailPrefix   = "/foras/"
)

var (
	cardClasses        = []string{"col-9", "flex", "flex-col", "gap-y-2"}
	titleClasses       = []string{"text-base", "font-bold", "line-clamp-2"}
	locationClasses    = []string{"text-xs", "text-gray-500"}
	deadlineClasses    = []string{"flex", "flex-col", "mt-2"}
	descriptionClasses = []string{"line-clamp-2", "md:line-clamp-3", "text-sm", "mb-2"}
)

// ErrInvalidDeadline is wrapped when a card's deadline cannot be read.
var ErrInvalidDeadline = errors.New("invalid deadline")

// documentFetcher is satisfied by *httpclient.Client.
type documentFetcher interface {
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// Adapter implements job.Adapter. Everything comes from one listing page and
// jobs are yielded in document order.
type Adapter struct {
	http    documentFetcher
	listURL string
	clock   func() time.Time
	logger  *logging.Logger
}

// Option configures Adapter
type Option func(*Adapter)

func WithListURL(u string) Option {
	return func(a *Adapter) {
		if u != "" {
			a.listURL = u
		}
	}
}

// WithClock sets the clock deadlines are compared against.
func WithClock(clock func() time.Time) Option {
	return func(a *Adapter) {
		if clock != nil {
			a.clock = clock
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
		return nil, fmt.Errorf("foras adapter: http client is required")
	}
	a := &Adapter{
		http:    http,
		listURL: ListURL,
		clock:   time.Now,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// New builds the Foras.ps provider
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

func (a *Adapter) Fetch(ctx context.Context, p *jobdomain.Provider) (iter.Seq2[domain.Job, error], error) {
	doc, err := a.http.GetDocument(ctx, a.listURL)
	if err != nil {
		return nil, err
	}

	cards := withClasses(doc.Selection, cardClasses...)
	a.logger.Debug("parsed opportunities page", "cards", cards.Length())
	today := domain.Date(a.clock())

	return func(yield func(domain.Job, error) bool) {
		for i := range cards.Length() {
			if !yield(a.card(p, cards.Eq(i), today)) {
				return
			}
		}
	}, nil
}

var _ jobdomain.Adapter = (*Adapter)(nil)

func (a *Adapter) card(p *jobdomain.Provider, card *goquery.Selection, today time.Time) (domain.Job, error) {
	location := text(withClasses(card, locationClasses...))

	deadline, err := parseDeadline(text(withClasses(card, deadlineClasses...)), location)
	if err != nil {
		return domain.Job{}, err
	}
	if deadline.Before(today) {
		return domain.Job{}, jobdomain.ErrSkip
	}

	href := ""
	card.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("href")
		if strings.HasPrefix(v, detailPrefix) {
			href = v
			return false
		}
		return true
	})
	if href == "" {
		return domain.Job{}, fmt.Errorf("foras: card without details link")
	}

	b, err := domain.NewJobBuilder(p.DefaultPoster(), resolve(p.URI(), href), text(withClasses(card, titleClasses...)), location)
	if err != nil {
		return domain.Job{}, fmt.Errorf("foras %s: %w", href, err)
	}

	return b.Deadline(deadline).
		Description(text(withClasses(card, descriptionClasses...))).
		Build(), nil
}

// parseDeadline extracts the date from text like "Deadline: 25/06/2024 Ramallah".
func parseDeadline(raw, location string) (time.Time, error) {
	s := raw
	if location != "" {
		if i := strings.Index(s, location); i >= 0 {
			s = s[:i]
		}
	}
	if _, after, ok := strings.Cut(s, "Deadline: "); ok {
		s = after
	}
	s = strings.TrimSpace(s)

	t, err := time.Parse(deadlineLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("foras: %w %q", ErrInvalidDeadline, s)
	}
	return t, nil
}

// withClasses selects the descendants of s carrying every class. Tailwind
// names such as md:line-clamp-3 are awkward to express as CSS selectors.
func withClasses(s *goquery.Selection, classes ...string) *goquery.Selection {
	return s.Find("[class]").FilterFunction(func(_ int, e *goquery.Selection) bool {
		for _, c := range classes {
			if !e.HasClass(c) {
				return false
			}
		}
		return true
	})
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.First().Text())
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
