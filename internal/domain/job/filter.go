package job

import (
	"strings"
	"time"

	"github.com/honeycarbs/jobhub/internal/domain"
)

// Filter describes which jobs to keep. Zero fields match everything.
type Filter struct {
	// Query is matched case insensitively against title, poster name and description.
	Query       string
	Location    string
	VacancyType domain.VacancyType
	// ActiveOnly drops jobs whose deadline is before the day of now.
	ActiveOnly bool
}

// Match returns the predicate of f evaluated at now.
func (f Filter) Match(now time.Time) func(domain.Job) bool {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	return func(j domain.Job) bool {
		if f.VacancyType != "" && j.VacancyType() != f.VacancyType {
			return false
		}
		if f.ActiveOnly && j.ExpiredAt(now) {
			return false
		}
		if location != "" && !strings.Contains(strings.ToLower(j.Location()), location) {
			return false
		}
		if query == "" {
			return true
		}
		company := ""
		if p := j.Poster(); p != nil {
			company = p.Name()
		}
		for _, field := range []string{j.Title(), company, j.Description()} {
			if strings.Contains(strings.ToLower(field), query) {
				return true
			}
		}
		return false
	}
}
