package invoker

import (
	"context"
	"errors"
	"sync"

	"github.com/asecurityteam/websubhub/pkg/domain"
)

var (
	// ErrChannelClosed is reported for invocations submitted to a closed Pool.
	ErrChannelClosed = errors.New("channel closed")
	// ErrQueueFull is reported for invocations submitted while every worker
	// is busy and the queue is at capacity.
	ErrQueueFull = errors.New("invocation queue full")
)

type job struct {
	ctx context.Context
	inv domain.Invocation
	cb  domain.Callback
}

// Pool runs invocations on a fixed set of workers fed by a bounded queue.
// Submissions never block the caller. An invocation that finds the queue
// full is rejected with ErrQueueFull rather than waiting for capacity.
type Pool struct {
	lock   sync.RWMutex
	closed bool
	queue  chan job
	wg     sync.WaitGroup
}

// NewPool starts a pool with the given number of workers and queue capacity.
// Worker counts below one are treated as one and queue sizes below one as
// the worker count.
func NewPool(workers int, queue int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queue < 1 {
		queue = workers
	}
	p := &Pool{queue: make(chan job, queue)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for j := range p.queue {
		run(j.ctx, j.inv, j.cb)
	}
}

// InvokeAsync queues the invocation. If the pool is closed the callback is
// notified of ErrChannelClosed, and if the queue is full of ErrQueueFull.
func (p *Pool) InvokeAsync(ctx context.Context, inv domain.Invocation, cb domain.Callback) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if p.closed {
		go cb.NotifyFailure(ErrChannelClosed)
		return
	}
	select {
	case p.queue <- job{ctx: ctx, inv: inv, cb: cb}:
	default:
		go cb.NotifyFailure(ErrQueueFull)
	}
}

// Close stops accepting invocations, waits for queued ones to finish, and
// stops the workers.
func (p *Pool) Close() error {
	p.lock.Lock()
	if p.closed {
		p.lock.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.lock.Unlock()
	p.wg.Wait()
	return nil
}
