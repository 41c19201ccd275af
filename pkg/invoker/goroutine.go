package invoker

import (
	"context"

	"github.com/asecurityteam/websubhub/pkg/domain"
)

// Goroutine runs every invocation on a new goroutine. There is no bound on
// the number of concurrent invocations.
type Goroutine struct{}

// InvokeAsync starts the invocation and returns immediately.
func (Goroutine) InvokeAsync(ctx context.Context, inv domain.Invocation, cb domain.Callback) {
	go run(ctx, inv, cb)
}
