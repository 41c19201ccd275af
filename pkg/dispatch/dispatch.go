package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/websubhub/pkg/domain"
	"github.com/asecurityteam/websubhub/pkg/invoker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	statDispatch         = "websubhub.dispatch"
	statDispatchDuration = "websubhub.dispatch.duration"
	tracerName           = "github.com/asecurityteam/websubhub/pkg/dispatch"
)

var outcomeNames = map[domain.OutcomeKind]string{
	domain.OutcomeSuccess:         "success",
	domain.OutcomeDomainError:     "domain_error",
	domain.OutcomeUnexpectedError: "unexpected_error",
	domain.OutcomeDispatchFailure: "dispatch_failure",
}

// Config is used to alter the behavior of a Dispatcher.
type Config struct {
	// Invoker delivers invocations to the handler. The default value runs
	// each invocation on its own goroutine.
	Invoker domain.Invoker
	// LogFn is used to extract the logger from the invocation context.
	// The default value is runhttp.LoggerFromContext.
	LogFn domain.LogFn
	// StatFn is used to extract the stat client from the invocation context.
	// The default value is runhttp.StatFromContext.
	StatFn domain.StatFn
	// Tracer starts one span per invocation. The default value is the
	// tracer of the global otel provider.
	Tracer trace.Tracer
	// Version is reported in the invocation metadata. The default value
	// is "latest".
	Version string
}

func applyDefaults(conf *Config) *Config {
	if conf.Invoker == nil {
		conf.Invoker = invoker.Goroutine{}
	}
	if conf.LogFn == nil {
		conf.LogFn = runhttp.LoggerFromContext
	}
	if conf.StatFn == nil {
		conf.StatFn = runhttp.StatFromContext
	}
	if conf.Tracer == nil {
		conf.Tracer = otel.Tracer(tracerName)
	}
	if conf.Version == "" {
		conf.Version = "latest"
	}
	return conf
}

// Dispatcher issues asynchronous handler invocations.
type Dispatcher struct {
	invoker domain.Invoker
	logFn   domain.LogFn
	statFn  domain.StatFn
	tracer  trace.Tracer
	version string
}

// New generates a Dispatcher. A nil conf uses every default.
func New(conf *Config) *Dispatcher {
	if conf == nil {
		conf = &Config{}
	}
	conf = applyDefaults(conf)
	return &Dispatcher{
		invoker: conf.Invoker,
		logFn:   conf.LogFn,
		statFn:  conf.StatFn,
		tracer:  conf.Tracer,
		version: conf.Version,
	}
}

// Invoke calls the handler operation in the background and returns
// immediately. The operation is not checked against the handler's
// capabilities; an operation the handler lacks completes as a dispatch
// failure. parentFunction names the calling site for diagnostics only.
func (d *Dispatcher) Invoke(ctx context.Context, h domain.Handler, op domain.Operation, parentFunction string, msg domain.Message, headers domain.Headers) *Pending {
	meta := domain.Metadata{
		Org:            domain.ProtocolOrg,
		Module:         domain.ProtocolModule,
		Version:        d.version,
		ParentFunction: parentFunction,
	}
	ctx, span := d.tracer.Start(ctx, string(op), trace.WithAttributes(
		attribute.String("websubhub.org", meta.Org),
		attribute.String("websubhub.module", meta.Module),
		attribute.String("websubhub.version", meta.Version),
		attribute.String("websubhub.parent_function", meta.ParentFunction),
		attribute.String("websubhub.operation", string(op)),
	))
	pending := newPending()
	cb := &completion{
		ctx:       ctx,
		d:         d,
		operation: op,
		meta:      meta,
		span:      span,
		start:     time.Now(),
		pending:   pending,
	}
	d.invoker.InvokeAsync(ctx, domain.Invocation{
		Handler:   h,
		Operation: op,
		Metadata:  meta,
		Request: domain.Request{
			Message:         msg,
			MessageResolved: true,
			Headers:         headers,
			HeadersResolved: true,
		},
	}, cb)
	return pending
}

// completion is the domain.Callback bound to a single invocation.
type completion struct {
	ctx       context.Context
	d         *Dispatcher
	operation domain.Operation
	meta      domain.Metadata
	span      trace.Span
	start     time.Time
	pending   *Pending
	notified  int32
}

// claim returns true for the first notification only.
func (c *completion) claim() bool {
	if atomic.CompareAndSwapInt32(&c.notified, 0, 1) {
		return true
	}
	c.d.logFn(c.ctx).Warn(duplicateCompletion{
		Operation:      string(c.operation),
		ParentFunction: c.meta.ParentFunction,
	})
	return false
}

func (c *completion) NotifySuccess(resp domain.Response, err error) {
	if !c.claim() {
		return
	}
	if err == nil {
		c.finish(domain.Outcome{Kind: domain.OutcomeSuccess, Response: resp})
		return
	}
	kind := Classify(err)
	if kind == domain.OutcomeUnexpectedError {
		c.d.logFn(c.ctx).Error(unexpectedHandlerError{
			Reason:         ErrorReason(err),
			ErrorType:      fmt.Sprintf("%T", err),
			Operation:      string(c.operation),
			ParentFunction: c.meta.ParentFunction,
			Module:         c.meta.Org + "/" + c.meta.Module,
			Version:        c.meta.Version,
		})
	}
	c.finish(domain.Outcome{Kind: kind, Err: err})
}

func (c *completion) NotifyFailure(err error) {
	if !c.claim() {
		return
	}
	c.finish(domain.Outcome{
		Kind: domain.OutcomeDispatchFailure,
		Err:  &domain.ServiceExecutionError{Origin: domain.ProtocolOrigin(), Cause: err},
	})
}

func (c *completion) finish(o domain.Outcome) {
	tags := []string{"operation:" + string(c.operation), "outcome:" + outcomeNames[o.Kind]}
	stat := c.d.statFn(c.ctx)
	stat.Count(statDispatch, 1, tags...)
	stat.Timing(statDispatchDuration, time.Since(c.start), tags...)
	c.span.SetAttributes(attribute.String("websubhub.outcome", outcomeNames[o.Kind]))
	if o.Err != nil {
		reason, ok := tryDescribe(o.Err)
		if ok {
			c.span.RecordError(o.Err)
		} else {
			c.span.RecordError(errors.New(reason))
		}
		c.span.SetStatus(codes.Error, reason)
	}
	c.span.End()
	c.pending.complete(o)
}

// ErrorReason renders err without trusting its Error method. A handler may
// return a typed nil pointer whose Error method dereferences the receiver.
func ErrorReason(err error) string {
	reason, _ := tryDescribe(err)
	return reason
}

// tryDescribe reports false when the Error method of err panicked.
func tryDescribe(err error) (reason string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			reason, ok = fmt.Sprintf("%T: Error() panicked: %v", err, r), false
		}
	}()
	return err.Error(), true
}
