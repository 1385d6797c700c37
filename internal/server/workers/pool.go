// Package workers bounds how many CPU-heavy jobs (password hashing) run at
// once.
package workers

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool admits at most size concurrent jobs.
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

// NewPool returns a Pool of the given size; size <= 0 means runtime.NumCPU.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

// Size reports the concurrency limit.
func (p *Pool) Size() int {
	return int(p.size)
}

type result[T any] struct {
	v   T
	err error
}

// Do runs fn on the pool and waits for its result. If ctx ends first Do
// returns ctx.Err(); a job that already started keeps running in the
// background, releases its slot when done and its result is dropped.
func Do[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	var zero T

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}

	done := make(chan result[T], 1)
	go func() {
		defer p.sem.Release(1)
		v, err := fn()
		done <- result[T]{v: v, err: err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
