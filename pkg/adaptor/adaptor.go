package adaptor

import (
	"context"

	"github.com/asecurityteam/websubhub/pkg/capability"
	"github.com/asecurityteam/websubhub/pkg/dispatch"
	"github.com/asecurityteam/websubhub/pkg/domain"
)

type callSite func(a *Adaptor, ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending

var callSites = map[domain.Operation]callSite{
	domain.OperationRegisterTopic:                (*Adaptor).RegisterTopic,
	domain.OperationDeregisterTopic:              (*Adaptor).DeregisterTopic,
	domain.OperationUpdateMessage:                (*Adaptor).UpdateMessage,
	domain.OperationSubscription:                 (*Adaptor).Subscription,
	domain.OperationSubscriptionValidation:       (*Adaptor).SubscriptionValidation,
	domain.OperationSubscriptionIntentVerified:   (*Adaptor).SubscriptionIntentVerified,
	domain.OperationUnsubscription:               (*Adaptor).Unsubscription,
	domain.OperationUnsubscriptionValidation:     (*Adaptor).UnsubscriptionValidation,
	domain.OperationUnsubscriptionIntentVerified: (*Adaptor).UnsubscriptionIntentVerified,
}

// Adaptor is the entry point transports use to reach the hub handler. The
// handler is bound once and is never modified, so an Adaptor is safe for
// concurrent use.
type Adaptor struct {
	handler    domain.Handler
	dispatcher *dispatch.Dispatcher
}

// New binds the handler. A nil dispatcher is replaced with one that uses
// every default.
func New(h domain.Handler, d *dispatch.Dispatcher) *Adaptor {
	if d == nil {
		d = dispatch.New(nil)
	}
	return &Adaptor{handler: h, dispatcher: d}
}

// SupportedOperations lists the operations the bound handler implements.
func (a *Adaptor) SupportedOperations() []domain.Operation {
	return capability.Supported(a.handler).Operations()
}

// Supports reports whether the bound handler implements op.
func (a *Adaptor) Supports(op domain.Operation) bool {
	_, ok := capability.Lookup(a.handler, op)
	return ok
}

// Call dispatches op through its call-site. An unrecognized operation is
// still dispatched and completes as a dispatch failure.
func (a *Adaptor) Call(ctx context.Context, op domain.Operation, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	site, ok := callSites[op]
	if !ok {
		return a.invoke(ctx, op, "call", msg, headers)
	}
	return site(a, ctx, msg, headers)
}

func (a *Adaptor) invoke(ctx context.Context, op domain.Operation, parent string, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.dispatcher.Invoke(ctx, a.handler, op, parent, msg, headers)
}

// RegisterTopic dispatches a topic registration.
func (a *Adaptor) RegisterTopic(ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.invoke(ctx, domain.OperationRegisterTopic, "callRegisterMethod", msg, headers)
}

// DeregisterTopic dispatches a topic deregistration.
func (a *Adaptor) DeregisterTopic(ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.invoke(ctx, domain.OperationDeregisterTopic, "callDeregisterMethod", msg, headers)
}

// UpdateMessage dispatches a content update.
func (a *Adaptor) UpdateMessage(ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.invoke(ctx, domain.OperationUpdateMessage, "callOnUpdateMethod", msg, headers)
}

// Subscription dispatches a subscription request.
func (a *Adaptor) Subscription(ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.invoke(ctx, domain.OperationSubscription, "callOnSubscriptionMethod", msg, headers)
}

// SubscriptionValidation dispatches the validation of an accepted
// subscription.
func (a *Adaptor) SubscriptionValidation(ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.invoke(ctx, domain.OperationSubscriptionValidation, "callOnSubscriptionValidationMethod", msg, headers)
}

// SubscriptionIntentVerified dispatches the notice of a verified
// subscription intent.
func (a *Adaptor) SubscriptionIntentVerified(ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.invoke(ctx, domain.OperationSubscriptionIntentVerified, "callOnSubscriptionIntentVerifiedMethod", msg, headers)
}

// Unsubscription dispatches an unsubscription request.
func (a *Adaptor) Unsubscription(ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.invoke(ctx, domain.OperationUnsubscription, "callOnUnsubscriptionMethod", msg, headers)
}

// UnsubscriptionValidation dispatches the validation of an accepted
// unsubscription.
func (a *Adaptor) UnsubscriptionValidation(ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.invoke(ctx, domain.OperationUnsubscriptionValidation, "callOnUnsubscriptionValidationMethod", msg, headers)
}

// UnsubscriptionIntentVerified dispatches the notice of a verified
// unsubscription intent.
func (a *Adaptor) UnsubscriptionIntentVerified(ctx context.Context, msg domain.Message, headers domain.Headers) *dispatch.Pending {
	return a.invoke(ctx, domain.OperationUnsubscriptionIntentVerified, "callOnUnsubscriptionIntentVerifiedMethod", msg, headers)
}
