package job_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/domain/job"
)

func titles(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title())
	}
	return out
}

func TestNewAggregator_Validation(t *testing.T) {
	_, err := job.NewAggregator()
	require.ErrorIs(t, err, job.ErrInvalidRegistry)

	p := newProvider(t, "harri", &scripted{})
	twin := newProvider(t, "harri", &scripted{})
	_, err = job.NewAggregator(job.WithProviders(p, twin))
	require.ErrorIs(t, err, job.ErrInvalidRegistry)
}

func TestAggregator_AllJobsKeepsRegistrationOrder(t *testing.T) {
	slow := newProvider(t, "slow", &scripted{titles: []string{"s1", "s2"}, delay: 50 * time.Millisecond})
	fast := newProvider(t, "fast", &scripted{titles: []string{"f1"}})

	agg, err := job.NewAggregator(job.WithProviders(slow, fast))
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "s2", "f1"}, titles(agg.AllJobs(context.Background())))
}

func TestAggregator_FailureIsolation(t *testing.T) {
	ok1 := newProvider(t, "one", &scripted{titles: []string{"a"}})
	broken := newProvider(t, "broken", &scripted{fail: errors.New("connection refused")})
	ok2 := newProvider(t, "two", &scripted{titles: []string{"b", "c"}})

	agg, err := job.NewAggregator(job.WithProviders(ok1, broken, ok2))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, titles(agg.AllJobs(context.Background())))
	assert.Equal(t, job.StatusFailed, broken.Status())
	assert.Equal(t, job.StatusActive, ok1.Status())
	assert.Equal(t, job.StatusActive, ok2.Status())

	failed := agg.ProvidersFiltered(func(p *job.Provider) bool { return p.Status() == job.StatusFailed })
	require.Len(t, failed, 1)
	assert.Same(t, broken, failed[0])
}

func TestAggregator_AllJobsFiltered(t *testing.T) {
	p := newProvider(t, "one", &scripted{titles: []string{"Go developer", "Designer", "Senior Go engineer"}})
	agg, err := job.NewAggregator(job.WithProviders(p))
	require.NoError(t, err)

	got := agg.AllJobsFiltered(context.Background(), func(j domain.Job) bool {
		return strings.Contains(j.Title(), "Go")
	})
	assert.Equal(t, []string{"Go developer", "Senior Go engineer"}, titles(got))
}

func TestAggregator_JobsFromProvider(t *testing.T) {
	registered := newProvider(t, "harri", &scripted{titles: []string{"a", "b"}}, job.WithDescription("Harri"))
	agg, err := job.NewAggregator(job.WithProviders(registered))
	require.NoError(t, err)
	ctx := context.Background()

	jobs, err := agg.JobsFromProvider(ctx, registered)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	// same identity, different instance
	twin := newProvider(t, "harri", &scripted{titles: []string{"other"}}, job.WithDescription("Harri"))
	jobs, err = agg.JobsFromProvider(ctx, twin)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, titles(jobs))

	lookAlike := newProvider(t, "harri", &scripted{}, job.WithDescription("Harri"), job.WithURI("https://elsewhere.example"))
	_, err = agg.JobsFromProvider(ctx, lookAlike)
	require.ErrorIs(t, err, job.ErrUnknownProvider)

	_, err = agg.JobsFromProviderFiltered(ctx, lookAlike, func(domain.Job) bool { return true })
	require.ErrorIs(t, err, job.ErrUnknownProvider)

	jobs, err = agg.JobsFromProviderFiltered(ctx, registered, func(j domain.Job) bool { return j.Title() == "b" })
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, titles(jobs))
}

func TestAggregator_ProvidersAreReadOnly(t *testing.T) {
	p := newProvider(t, "one", &scripted{})
	agg, err := job.NewAggregator(job.WithProviders(p))
	require.NoError(t, err)

	list := agg.Providers()
	list[0] = nil
	assert.Same(t, p, agg.Providers()[0])

	found, ok := agg.Provider("one")
	require.True(t, ok)
	assert.Same(t, p, found)
	found, ok = agg.Provider(" ONE ")
	require.True(t, ok)
	assert.Same(t, p, found)
	_, ok = agg.Provider("missing")
	assert.False(t, ok)
}

func TestAggregator_Warm(t *testing.T) {
	a := &scripted{titles: []string{"a"}}
	p := newProvider(t, "one", a)
	agg, err := job.NewAggregator(job.WithProviders(p))
	require.NoError(t, err)

	agg.Warm(context.Background())
	_, err = p.Jobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), a.calls.Load())
}
