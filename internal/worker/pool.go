package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// indexedJob remembers the submission position so Wait can restore it
type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result Result
}

// Pool manages a pool of workers that execute jobs concurrently.
// Results come back in submission order regardless of completion order.
type Pool struct {
	workers    int
	submitted  int
	jobQueue   chan indexedJob
	results    chan indexedResult
	collected  map[int]Result
	collectWg  sync.WaitGroup
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a new worker pool with the specified number of workers.
// Cancelling ctx stops workers from picking up further jobs.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan indexedJob, workers*2), // Buffered to prevent blocking
		results:    make(chan indexedResult, workers*2),
		collected:  make(map[int]Result),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	p.collectWg.Add(1)
	go p.collect()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// collect drains results as they arrive so workers never block on a full channel
func (p *Pool) collect() {
	defer p.collectWg.Done()
	for item := range p.results {
		p.collected[item.index] = item.result
	}
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case item, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.results <- indexedResult{index: item.index, result: item.job.Execute(p.ctx)}
		}
	}
}

// Submit submits a job to the pool for execution. It is not safe for
// concurrent use; submit from a single goroutine.
func (p *Pool) Submit(job Job) {
	item := indexedJob{index: p.submitted, job: job}
	p.submitted++
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- item:
	}
}

// Wait waits for all jobs to complete and returns the results in submission
// order. Jobs dropped by a cancelled pool leave a nil slot.
func (p *Pool) Wait() []Result {
	// Close job queue to signal workers to exit when done
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	p.collectWg.Wait()
	p.cancelFunc()

	results := make([]Result, p.submitted)
	for i, r := range p.collected {
		results[i] = r
	}
	return results
}

// Shutdown stops the pool without waiting for queued jobs
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
	p.collectWg.Wait()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
