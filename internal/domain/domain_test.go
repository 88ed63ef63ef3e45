package domain_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobhub/internal/domain"
)

type origin struct {
	name, description, uri string
}

func (o origin) Name() string        { return o.name }
func (o origin) Description() string { return o.description }
func (o origin) URI() *url.URL {
	if o.uri == "" {
		return nil
	}
	u, _ := url.Parse(o.uri)
	return u
}

func newPoster(t *testing.T, o domain.Origin, name string) *domain.Poster {
	t.Helper()
	b, err := domain.NewPosterBuilder(o, name, "Ramallah")
	require.NoError(t, err)
	return b.Build()
}

func newJob(t *testing.T, p *domain.Poster, uri, title, location, description string) domain.Job {
	t.Helper()
	b, err := domain.NewJobBuilder(p, uri, title, location)
	require.NoError(t, err)
	return b.Description(description).Build()
}

func TestNewJobBuilder_RequiresMandatoryFields(t *testing.T) {
	p := newPoster(t, origin{name: "harri", uri: "https://harri.com"}, "Harri")

	cases := []struct {
		name     string
		poster   *domain.Poster
		uri      string
		title    string
		location string
	}{
		{"no poster", nil, "https://harri.com/job/1", "Go dev", "Ramallah"},
		{"no uri", p, "", "Go dev", "Ramallah"},
		{"relative uri", p, "/job/1", "Go dev", "Ramallah"},
		{"no title", p, "https://harri.com/job/1", "  ", "Ramallah"},
		{"no location", p, "https://harri.com/job/1", "Go dev", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.NewJobBuilder(tc.poster, tc.uri, tc.title, tc.location)
			require.ErrorIs(t, err, domain.ErrInvalidJob)
		})
	}
}

func TestJobBuilder_Defaults(t *testing.T) {
	p := newPoster(t, origin{name: "foras"}, "Foras")
	b, err := domain.NewJobBuilder(p, "https://foras.ps/foras/1", "Backend", "Nablus")
	require.NoError(t, err)

	j := b.Build()
	assert.Equal(t, "", j.Description())
	assert.Equal(t, "", j.Salary())
	assert.Equal(t, "", j.Perks())
	assert.Equal(t, domain.VacancyNotSpecified, j.VacancyType())
	_, ok := j.PublishDate()
	assert.False(t, ok)
	_, ok = j.Deadline()
	assert.False(t, ok)
	assert.Same(t, p, j.Poster())
}

func TestJobBuilder_BuildIsASnapshot(t *testing.T) {
	p := newPoster(t, origin{name: "foras"}, "Foras")
	b, err := domain.NewJobBuilder(p, "https://foras.ps/foras/1", "Backend", "Nablus")
	require.NoError(t, err)

	first := b.Salary("1000").Build()
	b.Salary("2000").VacancyType(domain.VacancyPartTime)

	assert.Equal(t, "1000", first.Salary())
	assert.Equal(t, domain.VacancyNotSpecified, first.VacancyType())

	u := first.URI()
	u.Path = "/changed"
	assert.Equal(t, "https://foras.ps/foras/1", first.URI().String())
}

func TestJob_IDIsStable(t *testing.T) {
	p := newPoster(t, origin{name: "foras"}, "Foras")
	a := newJob(t, p, "https://foras.ps/foras/1", "A", "X", "")
	b := newJob(t, p, "https://foras.ps/foras/1", "B", "Y", "")
	c := newJob(t, p, "https://foras.ps/foras/2", "A", "X", "")

	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())
}

func TestJob_DatesAreCalendarDays(t *testing.T) {
	p := newPoster(t, origin{name: "foras"}, "Foras")
	b, err := domain.NewJobBuilder(p, "https://foras.ps/foras/1", "A", "X")
	require.NoError(t, err)

	j := b.Deadline(time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)).Build()
	d, ok := j.Deadline()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), d)

	assert.False(t, j.ExpiredAt(time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)))
	assert.True(t, j.ExpiredAt(time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC)))
}

func TestCompareJobs(t *testing.T) {
	a := origin{name: "a", uri: "https://a.example"}
	b := origin{name: "b", uri: "https://b.example"}
	pa := newPoster(t, a, "A")
	pb := newPoster(t, b, "B")

	zzz := newJob(t, pa, "https://a.example/1", "zzz", "L", "")
	aaa := newJob(t, pb, "https://b.example/1", "aaa", "L", "")
	assert.Negative(t, domain.CompareJobs(zzz, aaa), "provider uri dominates title")

	x := newJob(t, pa, "https://a.example/2", "same", "Nablus", "")
	y := newJob(t, pa, "https://a.example/3", "same", "Ramallah", "")
	assert.Negative(t, domain.CompareJobs(x, y))

	d1 := newJob(t, pa, "https://a.example/4", "same", "Nablus", "alpha")
	d2 := newJob(t, pa, "https://a.example/5", "same", "Nablus", "beta")
	assert.Negative(t, domain.CompareJobs(d1, d2))
	assert.Zero(t, domain.CompareJobs(d1, d1))

	noURI := newPoster(t, origin{name: "c"}, "C")
	first := newJob(t, noURI, "https://c.example/1", "zzz", "L", "")
	assert.Negative(t, domain.CompareJobs(first, aaa), "missing provider uri sorts first")

	jobs := []domain.Job{aaa, d2, zzz, d1}
	domain.SortJobs(jobs)
	assert.Equal(t, []string{"same", "same", "zzz", "aaa"}, []string{jobs[0].Title(), jobs[1].Title(), jobs[2].Title(), jobs[3].Title()})
	assert.Equal(t, "alpha", jobs[0].Description())
}

func TestComparePosters(t *testing.T) {
	o := origin{name: "jobs.ps"}
	mk := func(profile, name string) *domain.Poster {
		b, err := domain.NewPosterBuilder(o, name, "Ramallah")
		require.NoError(t, err)
		u, _ := url.Parse(profile)
		return b.ProfileURI(u).Build()
	}

	assert.Negative(t, domain.ComparePosters(mk("https://jobs.ps/a", "Zeta"), mk("https://jobs.ps/b", "Alpha")))
	assert.Negative(t, domain.ComparePosters(mk("https://jobs.ps/a", "Alpha"), mk("https://jobs.ps/a", "Zeta")))
}

func TestCompareOrigins(t *testing.T) {
	assert.Negative(t, domain.CompareOrigins(origin{name: "z", uri: "https://a"}, origin{name: "a", uri: "https://b"}))
	assert.Negative(t, domain.CompareOrigins(origin{name: "a", uri: "https://a"}, origin{name: "b", uri: "https://a"}))
	assert.Negative(t, domain.CompareOrigins(origin{name: "a", description: "1"}, origin{name: "a", description: "2"}))
}

func TestPosterEqual(t *testing.T) {
	one := origin{name: "userpilot", uri: "https://www.userpilot.com/"}
	other := origin{name: "foothill", uri: "https://www.foothillsolutions.com/"}

	assert.True(t, newPoster(t, one, "Userpilot").Equal(newPoster(t, one, "Userpilot")))
	assert.False(t, newPoster(t, one, "Userpilot").Equal(newPoster(t, other, "Userpilot")))
	assert.False(t, newPoster(t, one, "Userpilot").Equal(newPoster(t, one, "Foothill")))
}

func TestNewPosterBuilder_Validation(t *testing.T) {
	_, err := domain.NewPosterBuilder(nil, "A", "B")
	require.ErrorIs(t, err, domain.ErrInvalidPoster)
	_, err = domain.NewPosterBuilder(origin{name: "x"}, "", "B")
	require.ErrorIs(t, err, domain.ErrInvalidPoster)

	b, err := domain.NewPosterBuilder(origin{name: "x"}, "A", "B")
	require.NoError(t, err)
	p := b.Build()
	assert.Equal(t, domain.BusinessOther, p.BusinessType())
	assert.Equal(t, domain.VerificationNotSupported, p.Verification())
	_, ok := p.Established()
	assert.False(t, ok)
}

func TestTypedNilOrigin(t *testing.T) {
	var missing *origin

	_, err := domain.NewPosterBuilder(missing, "A", "B")
	require.ErrorIs(t, err, domain.ErrInvalidPoster)

	assert.True(t, domain.SameOrigin(missing, nil))
	assert.False(t, domain.SameOrigin(missing, origin{name: "x"}))
	assert.Negative(t, domain.CompareOrigins(missing, origin{name: "x", uri: "https://x.example"}))
}

func TestParseVacancyType(t *testing.T) {
	v, err := domain.ParseVacancyType("Full_Time")
	require.NoError(t, err)
	assert.Equal(t, domain.VacancyFullTime, v)

	v, err = domain.ParseVacancyType("part time")
	require.NoError(t, err)
	assert.Equal(t, domain.VacancyPartTime, v)

	_, err = domain.ParseVacancyType("gig")
	require.Error(t, err)
}

func TestJobSummary(t *testing.T) {
	p := newPoster(t, origin{name: "harri"}, "Harri")
	b, err := domain.NewJobBuilder(p, "https://harri.com/job/1", "Go dev", "Ramallah")
	require.NoError(t, err)
	j := b.Description("long text").PublishDate(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)).Build()

	s := j.Summary(false)
	assert.Equal(t, "Harri", s.Company)
	assert.Equal(t, "harri", s.Provider)
	assert.Equal(t, "2024-01-02", s.PublishedAt)
	assert.Empty(t, s.Deadline)
	assert.Empty(t, s.Description)
	assert.Equal(t, "long text", j.Summary(true).Description)
}
