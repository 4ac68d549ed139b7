// Package worker provides a bounded worker pool for fanning department
// discovery jobs out across goroutines. Departments are fully independent
// of each other, so the only shared state their jobs touch is the
// concurrency-safe review ledger.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/unilab-kr/boardmap/internal/logger"
	"github.com/unilab-kr/boardmap/internal/models"
)

// PoolState represents the current state of the pool.
type PoolState int32

const (
	// PoolStateStopped means the pool is not running.
	PoolStateStopped PoolState = iota

	// PoolStateRunning means the pool is actively processing jobs.
	PoolStateRunning

	// PoolStateDraining means the pool is shutting down gracefully.
	PoolStateDraining
)

// String returns the string representation of a pool state.
func (s PoolState) String() string {
	switch s {
	case PoolStateStopped:
		return "stopped"
	case PoolStateRunning:
		return "running"
	case PoolStateDraining:
		return "draining"
	default:
		return "unknown"
	}
}

// Job is one department discovery task.
type Job struct {
	ID         string
	Campus     string
	College    string
	Department *models.Department
}

// Handler processes a single job.
type Handler func(ctx context.Context, job *Job) error

// Pool executes jobs with bounded concurrency.
type Pool struct {
	config  Config
	handler Handler
	logger  logger.Interface
	state   atomic.Int32
	sem     chan struct{}
	wg      sync.WaitGroup
	stopCh  chan struct{}

	jobsProcessed atomic.Int64
	jobsSucceeded atomic.Int64
	jobsFailed    atomic.Int64
}

// NewPool creates a new worker pool.
func NewPool(cfg Config, handler Handler, log logger.Interface) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if handler == nil {
		return nil, errors.New("handler cannot be nil")
	}

	p := &Pool{
		config:  cfg,
		handler: handler,
		logger:  log.WithComponent("worker"),
		sem:     make(chan struct{}, cfg.PoolSize),
		stopCh:  make(chan struct{}),
	}
	p.state.Store(int32(PoolStateStopped))
	return p, nil
}

// Start starts the worker pool.
func (p *Pool) Start() error {
	if !p.state.CompareAndSwap(int32(PoolStateStopped), int32(PoolStateRunning)) {
		return errors.New("pool is already running")
	}
	p.logger.Info("worker pool started", "pool_size", p.config.PoolSize)
	return nil
}

// Submit submits a job for processing. Blocks while all workers are busy.
func (p *Pool) Submit(ctx context.Context, job *Job) error {
	if p.State() != PoolStateRunning {
		return errors.New("pool is not running")
	}

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopCh:
		return errors.New("pool is stopping")
	}

	p.wg.Add(1)
	go func() {
		defer func() {
			<-p.sem
			p.wg.Done()
		}()

		jobCtx, cancel := context.WithTimeout(ctx, p.config.JobTimeout)
		defer cancel()

		start := time.Now()
		err := p.handler(jobCtx, job)
		duration := time.Since(start)

		p.jobsProcessed.Add(1)
		if err != nil {
			p.jobsFailed.Add(1)
			p.logger.Error("job failed",
				"job_id", job.ID,
				"duration", duration,
				"error", err,
			)
			return
		}
		p.jobsSucceeded.Add(1)
		p.logger.Debug("job completed", "job_id", job.ID, "duration", duration)
	}()

	return nil
}

// Stop drains the pool, waiting for in-flight jobs up to the drain
// timeout.
func (p *Pool) Stop(ctx context.Context) error {
	if !p.state.CompareAndSwap(int32(PoolStateRunning), int32(PoolStateDraining)) {
		return errors.New("pool is not running")
	}

	p.logger.Info("worker pool draining")
	close(p.stopCh)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool stopped gracefully")
	case <-ctx.Done():
		p.logger.Warn("worker pool stop cancelled")
	case <-time.After(p.config.DrainTimeout):
		p.logger.Warn("worker pool drain timeout exceeded")
	}

	p.state.Store(int32(PoolStateStopped))
	return nil
}

// Wait blocks until all submitted jobs have finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// State returns the current pool state.
func (p *Pool) State() PoolState {
	return PoolState(p.state.Load())
}

// Stats returns the pool's job counters.
func (p *Pool) Stats() (processed, succeeded, failed int64) {
	return p.jobsProcessed.Load(), p.jobsSucceeded.Load(), p.jobsFailed.Load()
}
