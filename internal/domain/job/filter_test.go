package job_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/domain/job"
)

func TestFilter_Match(t *testing.T) {
	now := time.Date(2024, 4, 10, 18, 0, 0, 0, time.UTC)
	p := newProvider(t, "Boards", &scripted{})

	acme, err := domain.NewPosterBuilder(p, "Acme Labs", "Nablus")
	require.NoError(t, err)
	poster := acme.Build()

	mk := func(title, location string, v domain.VacancyType, deadline time.Time) domain.Job {
		b, err := domain.NewJobBuilder(poster, "https://example.com/"+title, title, location)
		require.NoError(t, err)
		b.VacancyType(v).Description("Writing services in Go")
		if !deadline.IsZero() {
			b.Deadline(deadline)
		}
		return b.Build()
	}

	open := mk("Backend", "Nablus, Palestine", domain.VacancyFullTime, now)
	expired := mk("Intern", "Ramallah", domain.VacancyInternship, now.AddDate(0, 0, -1))

	cases := []struct {
		name   string
		filter job.Filter
		want   []bool
	}{
		{"zero matches all", job.Filter{}, []bool{true, true}},
		{"query title", job.Filter{Query: "backend"}, []bool{true, false}},
		{"query poster", job.Filter{Query: "ACME"}, []bool{true, true}},
		{"query description", job.Filter{Query: "services in go"}, []bool{true, true}},
		{"location", job.Filter{Location: "nablus"}, []bool{true, false}},
		{"vacancy", job.Filter{VacancyType: domain.VacancyInternship}, []bool{false, true}},
		{"deadline today is active", job.Filter{ActiveOnly: true}, []bool{true, false}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match := tc.filter.Match(now)
			assert.Equal(t, tc.want, []bool{match(open), match(expired)})
		})
	}
}
