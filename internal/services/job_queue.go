package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Renal37/dress-settlement/internal/logger"
	"go.uber.org/zap"
)

var (
	ErrJobQueueIsFull = errors.New("job queue is full")
	ErrJobQueueClosed = errors.New("job queue is closed")
)

// Job is a unit of work run by one of the queue workers.
type Job func(ctx context.Context)

// JobQueueService runs jobs on a fixed pool of workers.
// Jobs scheduled with a delay are still run when Shutdown comes before the delay expires.
type JobQueueService struct {
	ctx       context.Context
	jobs      chan Job
	wg        sync.WaitGroup
	scheduled sync.WaitGroup
	mu        sync.RWMutex // guards closing, pending and the send side of jobs
	closing   bool
	pending   map[*time.Timer]Job
}

// NewJobQueueService starts workers that consume jobs until Shutdown is called
// or ctx is done.
func NewJobQueueService(ctx context.Context, capacity, workers int) *JobQueueService {
	service := &JobQueueService{
		ctx:     ctx,
		jobs:    make(chan Job, capacity),
		pending: make(map[*time.Timer]Job),
	}
	service.start(ctx, workers)

	return service
}

func (jqs *JobQueueService) start(ctx context.Context, workers int) {
	for i := 0; i < workers; i++ {
		jqs.wg.Add(1)

		go func() {
			defer jqs.wg.Done()

			for {
				select {
				case job, ok := <-jqs.jobs:
					if !ok {
						return
					}

					job(ctx)
				case <-ctx.Done():
					return
				}
			}
		}()
	}
}

// Enqueue adds a job without blocking. It fails when the queue is full or closed.
func (jqs *JobQueueService) Enqueue(job Job) error {
	jqs.mu.RLock()
	defer jqs.mu.RUnlock()

	if jqs.closing {
		return ErrJobQueueClosed
	}

	select {
	case jqs.jobs <- job:
		return nil
	default:
		return ErrJobQueueIsFull
	}
}

// ScheduleJob hands job to the workers after delay. Shutdown runs pending jobs
// without waiting for their delay.
func (jqs *JobQueueService) ScheduleJob(job Job, delay time.Duration) error {
	jqs.mu.Lock()
	defer jqs.mu.Unlock()

	if jqs.closing {
		return ErrJobQueueClosed
	}

	jqs.scheduled.Add(1)

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		jqs.mu.Lock()
		if _, ok := jqs.pending[timer]; !ok {
			// Shutdown has taken it over.
			jqs.mu.Unlock()
			return
		}
		delete(jqs.pending, timer)
		jqs.mu.Unlock()

		jqs.push(job)
	})
	jqs.pending[timer] = job

	return nil
}

// push blocks until a worker can take job. jobs stays open until every
// scheduled job is pushed.
func (jqs *JobQueueService) push(job Job) {
	defer jqs.scheduled.Done()

	select {
	case jqs.jobs <- job:
	case <-jqs.ctx.Done():
		logger.Log.Error("scheduled job dropped", zap.Error(jqs.ctx.Err()))
	}
}

// Shutdown stops accepting jobs, flushes scheduled ones, lets the workers drain
// the queue and waits for them.
func (jqs *JobQueueService) Shutdown() {
	jqs.mu.Lock()
	if jqs.closing {
		jqs.mu.Unlock()
		return
	}
	jqs.closing = true
	pending := jqs.pending
	jqs.pending = make(map[*time.Timer]Job)
	jqs.mu.Unlock()

	for timer, job := range pending {
		timer.Stop()
		jqs.push(job)
	}
	jqs.scheduled.Wait()

	jqs.mu.Lock()
	close(jqs.jobs)
	jqs.mu.Unlock()

	jqs.wg.Wait()
}
