// Package worker provides a generic worker pool for fanning independent
// jobs out across goroutines, such as searching root moves in parallel.
package worker

import "sync"

// Job is a unit of work together with its submission index.
type Job[T any] struct {
	Value T
	Index int // Original index for tracking
}

// Result is the outcome of processing a Job.
type Result[R any] struct {
	Value R
	Index int
}

// ProcessFunc is the function signature for processing a job value.
type ProcessFunc[T, R any] func(item T) R

// Pool manages a pool of workers for parallel job processing.
type Pool[T, R any] struct {
	numWorkers  int
	bufferSize  int
	workChan    chan Job[T]
	resultChan  chan Result[R]
	processFunc ProcessFunc[T, R]
	wg          sync.WaitGroup
}

// poolSettings holds the values PoolOptions configure.
type poolSettings struct {
	numWorkers int
	bufferSize int
}

// PoolOption configures a Pool.
type PoolOption func(*poolSettings)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(s *poolSettings) {
		if n >= 1 {
			s.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(s *poolSettings) {
		if size >= 1 {
			s.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool[T, R any](numWorkers, bufferSize int, processFunc ProcessFunc[T, R]) *Pool[T, R] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Pool[T, R]{
		numWorkers:  numWorkers,
		bufferSize:  bufferSize,
		workChan:    make(chan Job[T], bufferSize),
		resultChan:  make(chan Result[R], bufferSize),
		processFunc: processFunc,
	}
}

// NewPoolWithOptions creates a new worker pool using functional options.
// processFunc is required; other settings have sensible defaults.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions[T, R any](processFunc ProcessFunc[T, R], opts ...PoolOption) *Pool[T, R] {
	s := poolSettings{numWorkers: 1, bufferSize: 10}
	for _, opt := range opts {
		opt(&s)
	}
	return NewPool(s.numWorkers, s.bufferSize, processFunc)
}

// Start starts the worker goroutines.
func (p *Pool[T, R]) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes jobs from the work channel until it is closed.
func (p *Pool[T, R]) worker() {
	defer p.wg.Done()

	for job := range p.workChan {
		p.resultChan <- Result[R]{Value: p.processFunc(job.Value), Index: job.Index}
	}
}

// Submit submits a job for processing.
// This may block if the work channel buffer is full.
func (p *Pool[T, R]) Submit(job Job[T]) {
	p.workChan <- job
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool[T, R]) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool[T, R]) Results() <-chan Result[R] {
	return p.resultChan
}

// Map processes every item on a pool and returns the results in input order.
func Map[T, R any](items []T, processFunc ProcessFunc[T, R], opts ...PoolOption) []R {
	pool := NewPoolWithOptions(processFunc, opts...)
	pool.Start()

	go func() {
		for i, item := range items {
			pool.Submit(Job[T]{Value: item, Index: i})
		}
		pool.Close()
	}()

	results := make([]R, len(items))
	for r := range pool.Results() {
		results[r.Index] = r.Value
	}
	return results
}
