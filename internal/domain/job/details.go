package job

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobhub/internal/domain"
)

// ErrSkip is yielded for items an adapter filters out on purpose, such as
// expired postings. Skipped items are not counted as dropped.
var ErrSkip = errors.New("job skipped")

// FetchDetails calls fetch for every item with at most limit calls in flight.
// Calls may finish in any order; results are yielded in the order of items.
// Nothing runs until the sequence is iterated. A panicking call yields an
// error for its item only.
func FetchDetails[T any](
	ctx context.Context,
	items []T,
	limit int,
	fetch func(context.Context, T) (domain.Job, error),
) iter.Seq2[domain.Job, error] {
	return func(yield func(domain.Job, error) bool) {
		type result struct {
			job domain.Job
			err error
		}

		results := make([]result, len(items))

		var g errgroup.Group
		if limit > 0 {
			g.SetLimit(limit)
		}
		for i, item := range items {
			g.Go(func() error {
				defer func() {
					if r := recover(); r != nil {
						results[i] = result{err: fmt.Errorf("%w: %v", errAdapterPanic, r)}
					}
				}()
				j, err := fetch(ctx, item)
				results[i] = result{job: j, err: err}
				return nil
			})
		}
		_ = g.Wait()

		for _, r := range results {
			if !yield(r.job, r.err) {
				return
			}
		}
	}
}

// Slice yields jobs and per-item errors already in memory.
func Slice(jobs []domain.Job, errs ...error) iter.Seq2[domain.Job, error] {
	return func(yield func(domain.Job, error) bool) {
		for _, j := range jobs {
			if !yield(j, nil) {
				return
			}
		}
		for _, err := range errs {
			if !yield(domain.Job{}, err) {
				return
			}
		}
	}
}
