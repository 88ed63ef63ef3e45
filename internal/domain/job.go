package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidJob is returned when a job is missing a mandatory field.
var ErrInvalidJob = errors.New("invalid job")

// Job is a single vacancy collected from a provider. Values are immutable;
// build them with JobBuilder.
type Job struct {
	id               uuid.UUID
	title            string
	location         string
	description      string
	responsibilities string
	requirements     string
	positionLevel    string
	salary           string
	experience       string
	degree           string
	qualifications   string
	applyInstruction string
	perks            string
	vacancy          VacancyType
	published        time.Time
	deadline         time.Time
	poster           *Poster
	uri              *url.URL
}

// ID is derived from the canonical URI so it is stable between refreshes.
func (j Job) ID() uuid.UUID { return j.id }

func (j Job) Title() string             { return j.title }
func (j Job) Location() string          { return j.location }
func (j Job) Description() string       { return j.description }
func (j Job) Responsibilities() string  { return j.responsibilities }
func (j Job) Requirements() string      { return j.requirements }
func (j Job) PositionLevel() string     { return j.positionLevel }
func (j Job) Salary() string            { return j.salary }
func (j Job) Experience() string        { return j.experience }
func (j Job) Degree() string            { return j.degree }
func (j Job) Qualifications() string    { return j.qualifications }
func (j Job) ApplyInstructions() string { return j.applyInstruction }
func (j Job) Perks() string             { return j.perks }
func (j Job) VacancyType() VacancyType  { return j.vacancy }
func (j Job) Poster() *Poster           { return j.poster }
func (j Job) URI() *url.URL             { return cloneURL(j.uri) }

// Provider returns the origin of the job's poster.
func (j Job) Provider() Origin {
	if j.poster == nil {
		return nil
	}
	return j.poster.origin
}

func (j Job) PublishDate() (time.Time, bool) {
	return j.published, !j.published.IsZero()
}

func (j Job) Deadline() (time.Time, bool) {
	return j.deadline, !j.deadline.IsZero()
}

// ExpiredAt reports whether the deadline is strictly before the day of now.
func (j Job) ExpiredAt(now time.Time) bool {
	if j.deadline.IsZero() {
		return false
	}
	return j.deadline.Before(Date(now))
}

// JobBuilder accumulates job fields. Setters return the builder.
type JobBuilder struct {
	j Job
}

// NewJobBuilder starts a job. Poster, URI, title and location are mandatory
// and the URI must be absolute.
func NewJobBuilder(poster *Poster, rawURI, title, location string) (*JobBuilder, error) {
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)

	if poster == nil {
		return nil, fmt.Errorf("%w: poster is required", ErrInvalidJob)
	}
	if strings.TrimSpace(rawURI) == "" {
		return nil, fmt.Errorf("%w: uri is required", ErrInvalidJob)
	}
	u, err := ParseAbsoluteURL(rawURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidJob)
	}
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidJob)
	}

	return &JobBuilder{j: Job{
		id:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(u.String())),
		title:    title,
		location: location,
		vacancy:  VacancyNotSpecified,
		poster:   poster,
		uri:      u,
	}}, nil
}

func (b *JobBuilder) Description(s string) *JobBuilder {
	b.j.description = s
	return b
}

func (b *JobBuilder) Responsibilities(s string) *JobBuilder {
	b.j.responsibilities = s
	return b
}

func (b *JobBuilder) Requirements(s string) *JobBuilder {
	b.j.requirements = s
	return b
}

func (b *JobBuilder) PositionLevel(s string) *JobBuilder {
	b.j.positionLevel = s
	return b
}

func (b *JobBuilder) Salary(s string) *JobBuilder {
	b.j.salary = s
	return b
}

func (b *JobBuilder) Experience(s string) *JobBuilder {
	b.j.experience = s
	return b
}

func (b *JobBuilder) Degree(s string) *JobBuilder {
	b.j.degree = s
	return b
}

func (b *JobBuilder) Qualifications(s string) *JobBuilder {
	b.j.qualifications = s
	return b
}

func (b *JobBuilder) ApplyInstructions(s string) *JobBuilder {
	b.j.applyInstruction = s
	return b
}

func (b *JobBuilder) Perks(s string) *JobBuilder {
	b.j.perks = s
	return b
}

func (b *JobBuilder) VacancyType(v VacancyType) *JobBuilder {
	if v == "" {
		v = VacancyNotSpecified
	}
	b.j.vacancy = v
	return b
}

func (b *JobBuilder) PublishDate(t time.Time) *JobBuilder {
	b.j.published = Date(t)
	return b
}

func (b *JobBuilder) Deadline(t time.Time) *JobBuilder {
	b.j.deadline = Date(t)
	return b
}

// Build returns an immutable snapshot of the builder.
func (b *JobBuilder) Build() Job {
	j := b.j
	j.uri = cloneURL(b.j.uri)
	return j
}
