// Package parallel runs independent font jobs on a fixed set of workers.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is one unit of work. It should return promptly once ctx is done.
type Job func(ctx context.Context) error

// WorkerPool is a pool of goroutines for exporting font instances.
//
// Jobs are distributed round-robin across per-worker queues. A worker whose
// queue is empty steals from the others, which keeps the pool busy when one
// instance takes much longer to build than the rest.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool

	// submit is held shared while Run enqueues and exclusively by Close,
	// so no work is queued after the workers start draining.
	submit sync.RWMutex
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// Run executes every job and waits for all of them. The first failing job
// cancels the context passed to the others; jobs not started yet are then
// skipped. All errors are returned joined, in job order.
//
// Run on a closed pool returns ErrClosed. A Close racing with Run waits
// until Run has queued its jobs, which then all run.
func (p *WorkerPool) Run(ctx context.Context, jobs []Job) error {
	p.submit.RLock()
	if !p.running.Load() {
		p.submit.RUnlock()
		return ErrClosed
	}
	if len(jobs) == 0 {
		p.submit.RUnlock()
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, len(jobs))
	var pending sync.WaitGroup
	pending.Add(len(jobs))

	for i, job := range jobs {
		work := func() {
			defer pending.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			if err := job(ctx); err != nil {
				errs[i] = err
				cancel()
			}
		}
		p.workQueues[i%p.workers] <- work
	}
	p.submit.RUnlock()
	pending.Wait()
	return joinFirstCause(errs)
}

// joinFirstCause joins errs, dropping the context.Canceled errors caused by
// an earlier failure so the real cause is not buried.
func joinFirstCause(errs []error) error {
	var failed bool
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			failed = true
			break
		}
	}
	if !failed {
		return errors.Join(errs...)
	}
	kept := errs[:0:0]
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			kept = append(kept, err)
		}
	}
	return errors.Join(kept...)
}

// Close stops the workers after the queued work has run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.submit.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submit.Unlock()
		return
	}
	close(p.done)
	p.submit.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// ErrClosed is returned by Run on a closed pool.
var ErrClosed = errors.New("parallel: pool closed")
