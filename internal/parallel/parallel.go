// Package parallel provides concurrent slice operations backed by a
// shared worker pool. Transforms run with no ordering guarantee on
// execution or result placement; callers must not assume input order
// is preserved.
package parallel

import (
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Pool wraps an ants worker pool sized for CPU-bound fan-out.
type Pool struct {
	inner *ants.Pool
}

// NewPool creates a pool with the given number of workers.
// Size <= 0 defaults to runtime.NumCPU().
func NewPool(size int) (*Pool, error) {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	inner, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &Pool{inner: inner}, nil
}

// Release stops the pool's workers. The pool must not be used after
// calling Release.
func (p *Pool) Release() {
	if p != nil && p.inner != nil {
		p.inner.Release()
	}
}

// Go runs task asynchronously, on a pool worker when one is available,
// otherwise on a fresh goroutine. Unlike the collection operations it
// never blocks the caller and reports nothing back.
func (p *Pool) Go(task func()) {
	if p == nil || p.inner == nil {
		go task()
		return
	}
	if err := p.inner.Submit(task); err != nil {
		go task()
	}
}

// submit hands the task to the pool. A nil pool runs the task inline,
// as does a pool that rejects the submission, so every element is
// processed exactly once either way.
func (p *Pool) submit(task func()) {
	if p == nil || p.inner == nil {
		task()
		return
	}
	if err := p.inner.Submit(task); err != nil {
		task()
	}
}

// ForEach applies fn to every element of items across the pool's
// workers. Every element is visited even when some fail; the first
// error observed after all workers complete is returned.
func ForEach[T any](p *Pool, items []T, fn func(T) error) error {
	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)

	for _, item := range items {
		wg.Add(1)
		p.submit(func() {
			defer wg.Done()

			err := fn(item)
			if err == nil {
				return
			}
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		})
	}

	wg.Wait()
	return firstErr
}

// Map applies fn to every element of items and collects the results
// in completion order. On error the first error observed after all
// workers complete is returned and the results are discarded.
func Map[T, U any](p *Pool, items []T, fn func(T) (U, error)) ([]U, error) {
	results := make([]U, 0, len(items))

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)

	for _, item := range items {
		wg.Add(1)
		p.submit(func() {
			defer wg.Done()

			out, err := fn(item)
			mu.Lock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
			} else {
				results = append(results, out)
			}
			mu.Unlock()
		})
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// FlatMap applies fn to every element of items and concatenates the
// produced slices in completion order. Error handling matches Map.
func FlatMap[T, U any](p *Pool, items []T, fn func(T) ([]U, error)) ([]U, error) {
	var results []U

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)

	for _, item := range items {
		wg.Add(1)
		p.submit(func() {
			defer wg.Done()

			out, err := fn(item)
			mu.Lock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
			} else {
				results = append(results, out...)
			}
			mu.Unlock()
		})
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	if results == nil {
		results = []U{}
	}
	return results, nil
}

// CompactMap applies fn to every element of items and collects the
// non-nil results in completion order. Error handling matches Map.
func CompactMap[T, U any](p *Pool, items []T, fn func(T) (*U, error)) ([]U, error) {
	results := make([]U, 0, len(items))

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)

	for _, item := range items {
		wg.Add(1)
		p.submit(func() {
			defer wg.Done()

			out, err := fn(item)
			mu.Lock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
			} else if out != nil {
				results = append(results, *out)
			}
			mu.Unlock()
		})
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
