package domain

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = time.DateOnly

// JobSummary is the flat JSON view of a job used by tools and exports.
type JobSummary struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	Provider    string      `json:"provider"`
	URL         string      `json:"url"`
	VacancyType VacancyType `json:"vacancy_type"`
	Salary      string      `json:"salary,omitempty"`
	PublishedAt string      `json:"published_at,omitempty"`
	Deadline    string      `json:"deadline,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Summary flattens the job. Description is included only when withText is set.
func (j Job) Summary(withText bool) JobSummary {
	s := JobSummary{
		ID:          j.id,
		Title:       j.title,
		Location:    j.location,
		URL:         urlString(j.uri),
		VacancyType: j.vacancy,
		Salary:      j.salary,
		PublishedAt: formatDate(j.published),
		Deadline:    formatDate(j.deadline),
	}
	if j.poster != nil {
		s.Company = j.poster.name
	}
	if o := j.Provider(); o != nil {
		s.Provider = o.Name()
	}
	if withText {
		s.Description = j.description
	}
	return s
}

// Summaries maps Summary over jobs.
func Summaries(jobs []Job, withText bool) []JobSummary {
	out := make([]JobSummary, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Summary(withText))
	}
	return out
}

// PosterSummary is the flat JSON view of a poster.
type PosterSummary struct {
	Name         string       `json:"name"`
	Location     string       `json:"location"`
	Provider     string       `json:"provider"`
	BusinessType BusinessType `json:"business_type"`
	Website      string       `json:"website,omitempty"`
	Profile      string       `json:"profile,omitempty"`
	Established  string       `json:"established,omitempty"`
}

func (p *Poster) Summary() PosterSummary {
	s := PosterSummary{
		Name:         p.name,
		Location:     p.location,
		BusinessType: p.business,
		Website:      urlString(p.website),
		Profile:      urlString(p.profile),
		Established:  formatDate(p.established),
	}
	if p.origin != nil {
		s.Provider = p.origin.Name()
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
