package invoker

import (
	"context"

	"github.com/asecurityteam/websubhub/pkg/capability"
	"github.com/asecurityteam/websubhub/pkg/domain"
)

// run resolves and executes the operation, then reports to cb exactly once.
func run(ctx context.Context, inv domain.Invocation, cb domain.Callback) {
	fn, ok := capability.Lookup(inv.Handler, inv.Operation)
	if !ok {
		cb.NotifyFailure(domain.NotFoundError{ID: string(inv.Operation)})
		return
	}
	resp, err, failure := call(ctx, fn, inv)
	if failure != nil {
		cb.NotifyFailure(failure)
		return
	}
	cb.NotifySuccess(resp, err)
}

func call(ctx context.Context, fn domain.HandlerFunc, inv domain.Invocation) (resp domain.Response, err error, failure error) {
	defer func() {
		if r := recover(); r != nil {
			failure = domain.PanicError{Operation: inv.Operation, Value: r}
		}
	}()
	resp, err = fn(ctx, inv.Request)
	return resp, err, nil
}
