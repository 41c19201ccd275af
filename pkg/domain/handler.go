package domain

import (
	"context"
)

// Handler is the application supplied implementation of the hub. It may be
// any value that implements one or more of the operation interfaces below, or
// a Funcs mapping. Operations a handler does not implement are simply not
// supported by it.
type Handler interface{}

// HandlerFunc is the uniform signature of every handler operation.
type HandlerFunc func(ctx context.Context, req Request) (Response, error)

// Funcs is a Handler expressed as a mapping of operations to functions. A nil
// function is the same as an absent key.
type Funcs map[Operation]HandlerFunc

// TopicRegistrar handles publisher topic registrations.
type TopicRegistrar interface {
	OnRegisterTopic(ctx context.Context, req Request) (Response, error)
}

// TopicDeregistrar handles publisher topic deregistrations.
type TopicDeregistrar interface {
	OnDeregisterTopic(ctx context.Context, req Request) (Response, error)
}

// UpdateMessageHandler handles content update notifications from publishers.
type UpdateMessageHandler interface {
	OnUpdateMessage(ctx context.Context, req Request) (Response, error)
}

// SubscriptionHandler handles subscription requests.
type SubscriptionHandler interface {
	OnSubscription(ctx context.Context, req Request) (Response, error)
}

// SubscriptionValidator validates an accepted subscription request before the
// subscriber's intent is verified.
type SubscriptionValidator interface {
	OnSubscriptionValidation(ctx context.Context, req Request) (Response, error)
}

// SubscriptionIntentVerifiedHandler is notified once a subscriber confirmed
// its intent.
type SubscriptionIntentVerifiedHandler interface {
	OnSubscriptionIntentVerified(ctx context.Context, req Request) (Response, error)
}

// UnsubscriptionHandler handles unsubscription requests.
type UnsubscriptionHandler interface {
	OnUnsubscription(ctx context.Context, req Request) (Response, error)
}

// UnsubscriptionValidator validates an accepted unsubscription request.
type UnsubscriptionValidator interface {
	OnUnsubscriptionValidation(ctx context.Context, req Request) (Response, error)
}

// UnsubscriptionIntentVerifiedHandler is notified once a subscriber confirmed
// its intent to unsubscribe.
type UnsubscriptionIntentVerifiedHandler interface {
	OnUnsubscriptionIntentVerified(ctx context.Context, req Request) (Response, error)
}

// Metadata identifies the adaptor context that issued an invocation. It is
// used for diagnostics and tracing only.
type Metadata struct {
	Org            string
	Module         string
	Version        string
	ParentFunction string
}

// Invocation is everything an Invoker needs to call one handler operation.
type Invocation struct {
	Handler   Handler
	Operation Operation
	Metadata  Metadata
	Request   Request
}

// Callback receives the result of an asynchronous invocation. Exactly one of
// the methods is called, exactly once.
type Callback interface {
	// NotifySuccess is called when the handler operation ran to completion.
	// A non-nil err is the failure value the handler itself returned.
	NotifySuccess(resp Response, err error)
	// NotifyFailure is called when the operation could not be run at all.
	NotifyFailure(err error)
}

// Invoker is a pluggable mechanism that delivers invocations to handlers.
type Invoker interface {
	// InvokeAsync must return without waiting for the handler and must
	// eventually report to cb.
	InvokeAsync(ctx context.Context, inv Invocation, cb Callback)
}
