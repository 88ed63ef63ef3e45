package job_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/domain/job"
)

func TestFetchDetails_JoinsInListOrder(t *testing.T) {
	p := newProvider(t, "harri", &scripted{})
	items := []int{1, 2, 3, 4, 5}

	var inFlight, peak atomic.Int32
	seq := job.FetchDetails(context.Background(), items, 2, func(_ context.Context, n int) (domain.Job, error) {
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		defer inFlight.Add(-1)

		// later items finish first
		time.Sleep(time.Duration(len(items)-n) * 5 * time.Millisecond)
		if n == 3 {
			return domain.Job{}, errors.New("detail page missing")
		}
		b, err := domain.NewJobBuilder(p.DefaultPoster(), fmt.Sprintf("https://harri.example/%d", n), fmt.Sprintf("job %d", n), "Ramallah")
		if err != nil {
			return domain.Job{}, err
		}
		return b.Build(), nil
	})

	var got []string
	var errs int
	for j, err := range seq {
		if err != nil {
			errs++
			continue
		}
		got = append(got, j.Title())
	}

	assert.Equal(t, []string{"job 1", "job 2", "job 4", "job 5"}, got)
	assert.Equal(t, 1, errs)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestFetchDetails_IsLazy(t *testing.T) {
	var calls atomic.Int32
	seq := job.FetchDetails(context.Background(), []string{"a"}, 0, func(context.Context, string) (domain.Job, error) {
		calls.Add(1)
		return domain.Job{}, job.ErrSkip
	})
	assert.Zero(t, calls.Load())

	for _, err := range seq {
		require.ErrorIs(t, err, job.ErrSkip)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchDetails_PanicDropsOnlyThatItem(t *testing.T) {
	scrape := job.AdapterFunc(func(ctx context.Context, p *job.Provider) (iter.Seq2[domain.Job, error], error) {
		return job.FetchDetails(ctx, []int{1, 2, 3}, 2, func(_ context.Context, n int) (domain.Job, error) {
			if n == 2 {
				var selectors map[string]string
				selectors["title"] = "h1"
			}
			b, err := domain.NewJobBuilder(p.DefaultPoster(), fmt.Sprintf("https://jobs.example/%d", n), fmt.Sprintf("job %d", n), p.Location())
			if err != nil {
				return domain.Job{}, err
			}
			return b.Build(), nil
		}), nil
	})
	broken := newProvider(t, "jobs.ps", scrape)
	healthy := newProvider(t, "foras", &scripted{titles: []string{"Accountant"}})

	agg, err := job.NewAggregator(job.WithProviders(broken, healthy))
	require.NoError(t, err)

	jobs := agg.AllJobs(context.Background())
	require.Len(t, jobs, 3)
	assert.Equal(t, "job 1", jobs[0].Title())
	assert.Equal(t, "job 3", jobs[1].Title())
	assert.Equal(t, "Accountant", jobs[2].Title())

	d := broken.Diagnostics()
	assert.Equal(t, job.StatusActive, d.Status)
	assert.Equal(t, 2, d.Jobs)
	assert.Equal(t, 1, d.Dropped)
}
