// Package memo provides a single value cache that recomputes itself once its
// time to live has elapsed.
package memo

import (
	"context"
	"time"
)

// Option configures an Expiring cell.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the cell's time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Expiring memoizes the result of a producer for ttl.
//
// All callers share one lock, so at most one producer call is in flight per
// cell and callers queued behind it observe the value it stored.
type Expiring[T any] struct {
	ttl     time.Duration
	produce func(context.Context) (T, error)
	now     func() time.Time

	sem        chan struct{}
	value      T
	ok         bool
	computedAt time.Time
}

// New returns a cell that caches produce's result for ttl.
// A non-positive ttl disables caching.
func New[T any](ttl time.Duration, produce func(context.Context) (T, error), opts ...Option) *Expiring[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Expiring[T]{
		ttl:     ttl,
		produce: produce,
		now:     o.now,
		sem:     make(chan struct{}, 1),
	}
}

// TTL reports the configured time to live.
func (e *Expiring[T]) TTL() time.Duration {
	return e.ttl
}

// Get returns the cached value while it is fresh and recomputes it otherwise.
// A producer error is returned as is and leaves the previous state untouched,
// so the following call retries.
func (e *Expiring[T]) Get(ctx context.Context) (T, error) {
	var zero T

	if err := e.lock(ctx); err != nil {
		return zero, err
	}
	defer e.unlock()

	if e.ok && e.now().Sub(e.computedAt) < e.ttl {
		return e.value, nil
	}

	v, err := e.produce(ctx)
	if err != nil {
		return zero, err
	}

	e.value = v
	e.ok = true
	e.computedAt = e.now()

	return v, nil
}

// Invalidate drops the cached value so the next Get recomputes it.
func (e *Expiring[T]) Invalidate(ctx context.Context) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.unlock()

	var zero T
	e.value = zero
	e.ok = false
	e.computedAt = time.Time{}

	return nil
}

func (e *Expiring[T]) lock(ctx context.Context) error {
	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Expiring[T]) unlock() {
	<-e.sem
}
