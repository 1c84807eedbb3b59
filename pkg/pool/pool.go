package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Pool to manage, interact with worker pool
type Pool[J, R any] interface {
	// SendJobs to job queue
	SendJobs(jobs ...J)
	// Close closes job queue and returns results channel
	Close() <-chan R
	// Results returns the results channel, it's closed once all workers are done
	Results() <-chan R
	// Errors returns slice of JobError, in case of successful retries intermittent errors are not returned.
	// It waits until all workers are done, so the results channel has to be drained first
	Errors() []JobError[J]
}

// JobError is a job that failed after all retries
type JobError[J any] struct {
	Job J
	Err error
}

func (e JobError[J]) Error() string {
	return fmt.Sprintf("job %v failed: %v", e.Job, e.Err)
}

func (e JobError[J]) Unwrap() error {
	return e.Err
}

type singleStagePool[J, R any] struct {
	*Config[J, R]
	running int
	retries int
	mutex   sync.Mutex
	jobs    chan J
	results chan R
	done    chan struct{}
	errors  []JobError[J]
}

// NewPool creates new instance of worker pool and starts workers
func NewPool[J, R any](ctx context.Context, config *Config[J, R]) (Pool[J, R], error) {
	p := &singleStagePool[J, R]{
		Config:  config,
		running: config.Size,
		retries: config.MaxRetry,
		done:    make(chan struct{}),
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	p.startPool(ctx, make(chan J, p.JobQueueLimit), make(chan R, p.ResultQueueLimit))
	return p, nil
}

func (p *singleStagePool[J, R]) validate() error {
	if p.Size <= 0 {
		return errors.New("expected pool size to be more than 0")
	}
	if p.JobQueueLimit <= 0 {
		return errors.New("expected JobQueueLimit to be more than 0")
	}
	if p.ResultQueueLimit <= 0 {
		return errors.New("expected ResultQueueLimit to be more than 0")
	}
	if p.Worker == nil {
		return fmt.Errorf("expected worker func to be not nil")
	}
	return nil
}

func (p *singleStagePool[J, R]) startPool(ctx context.Context, jobs chan J, results chan R) {
	p.jobs = jobs
	p.results = results
	for index := 0; index < p.Size; index++ {
		go p.startWorker(ctx)
	}
}

func (p *singleStagePool[J, R]) startWorker(ctx context.Context) {
	defer p.removeWorker()

	for job := range p.jobs {
		p.runJob(ctx, job)
	}
}

func (p *singleStagePool[J, R]) runJob(ctx context.Context, job J) {
	if p.HandlePanic {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Msgf("Panic in worker: %+v", r)
				p.addError(job, fmt.Errorf("panic in worker: %v", r))
			}
		}()
	}

	for {
		result, err := p.Worker(ctx, job)
		if err == nil {
			p.results <- result
			return
		}
		if !p.takeRetry() {
			p.addError(job, err)
			return
		}
		log.Debug().Err(err).Msg("Retrying failed job")
	}
}

// takeRetry consumes one of the retries shared by all jobs
func (p *singleStagePool[J, R]) takeRetry() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.retries <= 0 {
		return false
	}
	p.retries--
	return true
}

func (p *singleStagePool[J, R]) addError(job J, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.errors = append(p.errors, JobError[J]{Job: job, Err: err})
}

func (p *singleStagePool[J, R]) removeWorker() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.running--
	if p.running == 0 {
		close(p.results)
		close(p.done)
	}
}

func (p *singleStagePool[J, R]) SendJobs(jobs ...J) {
	for _, job := range jobs {
		p.jobs <- job
	}
}

func (p *singleStagePool[J, R]) Close() <-chan R {
	close(p.jobs)
	return p.results
}

func (p *singleStagePool[J, R]) Results() <-chan R {
	return p.results
}

func (p *singleStagePool[J, R]) Errors() []JobError[J] {
	<-p.done

	p.mutex.Lock()
	defer p.mutex.Unlock()

	return append([]JobError[J]{}, p.errors...)
}
