/*
Package worker provides a rate limited worker pool for evaluating many
independent lookups against the shared, immutable configuration of a run.

Basic usage:

	pool, err := worker.NewPool(worker.Config{
		Workers:   4,
		RateLimit: 100, // tasks per second, 0 for unlimited
	})

	pool.Start(ctx)

	pool.Submit(worker.Task{
		ID: 1,
		Execute: func(ctx context.Context) (worker.Result, error) {
			return worker.Result{ID: 1, Data: "processed"}, nil
		},
	})

	// results come back in submission order
	results, err := pool.Wait()

Map wraps the same cycle for a slice of inputs.
*/
package worker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Task represents a unit of work to be processed by the worker pool
type Task struct {
	// ID identifies the task in errors
	ID int

	// Execute performs the work. It receives the pool context for cancellation.
	Execute func(context.Context) (Result, error)
}

// Result represents the output of a processed task
type Result struct {
	// ID matches the task ID that produced this result
	ID int

	// Data holds the actual result data
	Data any

	// order is the submission index of the task
	order int
}

// Config holds the configuration for the worker pool
type Config struct {
	// Workers is the number of concurrent workers
	Workers int

	// RateLimit is the maximum number of tasks started per second (0 for unlimited)
	RateLimit int
}

// Pool defines the interface for a worker pool
type Pool interface {
	// Start launches the workers
	Start(context.Context) error

	// Submit queues a task. It blocks while the queue is full.
	Submit(Task) error

	// Wait closes the queue, blocks until every submitted task is processed
	// and returns the results in submission order
	Wait() ([]Result, error)

	// GetStats returns current statistics about the pool
	GetStats() Stats

	// Stop cancels outstanding work and shuts the pool down
	Stop() error
}

type pool struct {
	config        Config
	tasks         chan orderedTask
	limiter       *rate.Limiter
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
	mu            sync.RWMutex
	sending       sync.WaitGroup
	closeOnce     sync.Once
	started       bool
	closed        bool
	stopped       bool
	startTime     time.Time
	resultsMu     sync.Mutex
	results       []Result
	errs          []error
	activeWorkers atomic.Int32
	completed     atomic.Int64
	failed        atomic.Int64
	taskOrder     atomic.Int64
}

type orderedTask struct {
	Task
	order int
}

// NewPool creates a new worker pool with the given configuration
func NewPool(config Config) (Pool, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &pool{
		config:  config,
		tasks:   make(chan orderedTask, config.Workers*2),
		limiter: limiter,
	}, nil
}

func validateConfig(config Config) error {
	if config.Workers <= 0 {
		return fmt.Errorf("number of workers must be positive")
	}
	if config.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}
	return nil
}

func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("pool already started")
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true
	p.startTime = time.Now()

	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return nil
}

func (p *pool) Submit(task Task) error {
	p.mu.RLock()
	if !p.started {
		p.mu.RUnlock()
		return fmt.Errorf("pool not started")
	}
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("pool no longer accepts tasks")
	}
	// the queue stays open until every registered send has returned
	p.sending.Add(1)
	ctx := p.ctx
	p.mu.RUnlock()
	defer p.sending.Done()

	order := int(p.taskOrder.Add(1) - 1)

	select {
	case <-ctx.Done():
		return fmt.Errorf("pool is shutting down: %w", ctx.Err())
	case p.tasks <- orderedTask{Task: task, order: order}:
		return nil
	}
}

func (p *pool) Wait() ([]Result, error) {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil, fmt.Errorf("pool not started")
	}
	p.closed = true
	p.mu.Unlock()

	p.closeTasks()
	p.wg.Wait()

	p.resultsMu.Lock()
	defer p.resultsMu.Unlock()

	results := append([]Result(nil), p.results...)
	sort.Slice(results, func(i, j int) bool {
		return results[i].order < results[j].order
	})

	if len(p.errs) > 0 {
		return results, errors.Join(p.errs...)
	}
	if err := p.ctx.Err(); err != nil {
		return results, fmt.Errorf("pool cancelled: %w", err)
	}
	return results, nil
}

func (p *pool) Stop() error {
	p.mu.Lock()
	if p.stopped || !p.started {
		p.stopped = true
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	p.closed = true
	p.cancel()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.closeTasks()
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(500 * time.Millisecond):
		return fmt.Errorf("shutdown timed out")
	}
}

// closeTasks closes the queue once the submitters still sending have
// returned. Callers set p.closed first and must not hold p.mu.
func (p *pool) closeTasks() {
	p.sending.Wait()
	p.closeOnce.Do(func() {
		close(p.tasks)
	})
}

func (p *pool) GetStats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var uptime time.Duration
	if p.started {
		uptime = time.Since(p.startTime)
	}

	return Stats{
		ActiveWorkers:  int(p.activeWorkers.Load()),
		QueuedTasks:    len(p.tasks),
		CompletedTasks: int(p.completed.Load()),
		FailedTasks:    int(p.failed.Load()),
		Status:         p.getStatus(),
		Uptime:         uptime,
	}
}

// getStatus derives the status. Callers hold p.mu.
func (p *pool) getStatus() Status {
	switch {
	case !p.started || p.stopped:
		return StatusStopped
	case p.activeWorkers.Load() > 0 || len(p.tasks) > 0:
		return StatusProcessing
	case p.closed:
		return StatusShuttingDown
	default:
		return StatusIdle
	}
}

func (p *pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		if p.ctx.Err() != nil {
			// drain the queue so blocked submitters are released
			continue
		}

		p.activeWorkers.Add(1)
		result, err := p.run(task)
		p.activeWorkers.Add(-1)

		p.resultsMu.Lock()
		if err != nil {
			p.failed.Add(1)
			p.errs = append(p.errs, fmt.Errorf("task %d failed: %w", task.ID, err))
		} else {
			p.completed.Add(1)
			result.order = task.order
			p.results = append(p.results, result)
		}
		p.resultsMu.Unlock()
	}
}

func (p *pool) run(task orderedTask) (Result, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(p.ctx); err != nil {
			return Result{}, fmt.Errorf("rate limiter error: %w", err)
		}
	}
	return task.Execute(p.ctx)
}

// Map runs fn for every item on a fresh pool and returns the outputs in input
// order together with the pool statistics taken once the queue drained. Task
// failures are joined into the returned error, as is a failed shutdown.
func Map[In, Out any](ctx context.Context, config Config, items []In, fn func(context.Context, In) (Out, error)) (outputs []Out, stats Stats, err error) {
	p, err := NewPool(config)
	if err != nil {
		return nil, Stats{}, err
	}
	if err := p.Start(ctx); err != nil {
		return nil, Stats{}, err
	}
	defer func() {
		if stopErr := p.Stop(); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to stop pool: %w", stopErr))
		}
	}()

	for i, item := range items {
		item := item
		if err := p.Submit(Task{
			ID: i,
			Execute: func(ctx context.Context) (Result, error) {
				out, err := fn(ctx, item)
				return Result{Data: out}, err
			},
		}); err != nil {
			return nil, p.GetStats(), err
		}
	}

	results, err := p.Wait()
	stats = p.GetStats()
	if err != nil {
		return nil, stats, err
	}

	outputs = make([]Out, 0, len(results))
	for _, r := range results {
		out, _ := r.Data.(Out)
		outputs = append(outputs, out)
	}
	return outputs, stats, nil
}
