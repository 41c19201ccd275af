package dispatch

import (
	"context"
	"sync"

	"github.com/asecurityteam/websubhub/pkg/domain"
)

// Pending is the single assignment result of one invocation.
type Pending struct {
	once    sync.Once
	done    chan struct{}
	outcome domain.Outcome
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// complete assigns the outcome. It returns false if the outcome was already
// assigned, in which case o is discarded.
func (p *Pending) complete(o domain.Outcome) bool {
	assigned := false
	p.once.Do(func() {
		p.outcome = o
		assigned = true
		close(p.done)
	})
	return assigned
}

// Done is closed once the outcome is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Outcome returns the outcome without blocking. The second return is false
// while the invocation is still running.
func (p *Pending) Outcome() (domain.Outcome, bool) {
	select {
	case <-p.done:
		return p.outcome, true
	default:
		return domain.Outcome{}, false
	}
}

// Wait blocks until the outcome is available or ctx is done. Cancelling ctx
// does not cancel the invocation.
func (p *Pending) Wait(ctx context.Context) (domain.Outcome, error) {
	select {
	case <-p.done:
		return p.outcome, nil
	case <-ctx.Done():
		return domain.Outcome{}, ctx.Err()
	}
}
