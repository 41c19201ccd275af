package capability

import (
	"sort"

	"github.com/asecurityteam/websubhub/pkg/domain"
)

// Set is a collection of supported operations.
type Set map[domain.Operation]struct{}

// Has reports whether the operation is in the set.
func (s Set) Has(op domain.Operation) bool {
	_, ok := s[op]
	return ok
}

// Operations returns the members of the set in protocol order.
func (s Set) Operations() []domain.Operation {
	ops := make([]domain.Operation, 0, len(s))
	for _, op := range domain.Operations() {
		if s.Has(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

// Names returns the members of the set as sorted method names.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for op := range s {
		names = append(names, string(op))
	}
	sort.Strings(names)
	return names
}

// Supported enumerates the recognized operations the handler implements.
func Supported(h domain.Handler) Set {
	s := make(Set, len(domain.Operations()))
	for _, op := range domain.Operations() {
		if _, ok := Lookup(h, op); ok {
			s[op] = struct{}{}
		}
	}
	return s
}

// Lookup resolves the handler method that services the operation. The second
// return is false when the handler does not implement it.
func Lookup(h domain.Handler, op domain.Operation) (domain.HandlerFunc, bool) {
	if funcs, ok := h.(domain.Funcs); ok {
		fn := funcs[op]
		return fn, fn != nil
	}
	switch op {
	case domain.OperationRegisterTopic:
		if v, ok := h.(domain.TopicRegistrar); ok {
			return v.OnRegisterTopic, true
		}
	case domain.OperationDeregisterTopic:
		if v, ok := h.(domain.TopicDeregistrar); ok {
			return v.OnDeregisterTopic, true
		}
	case domain.OperationUpdateMessage:
		if v, ok := h.(domain.UpdateMessageHandler); ok {
			return v.OnUpdateMessage, true
		}
	case domain.OperationSubscription:
		if v, ok := h.(domain.SubscriptionHandler); ok {
			return v.OnSubscription, true
		}
	case domain.OperationSubscriptionValidation:
		if v, ok := h.(domain.SubscriptionValidator); ok {
			return v.OnSubscriptionValidation, true
		}
	case domain.OperationSubscriptionIntentVerified:
		if v, ok := h.(domain.SubscriptionIntentVerifiedHandler); ok {
			return v.OnSubscriptionIntentVerified, true
		}
	case domain.OperationUnsubscription:
		if v, ok := h.(domain.UnsubscriptionHandler); ok {
			return v.OnUnsubscription, true
		}
	case domain.OperationUnsubscriptionValidation:
		if v, ok := h.(domain.UnsubscriptionValidator); ok {
			return v.OnUnsubscriptionValidation, true
		}
	case domain.OperationUnsubscriptionIntentVerified:
		if v, ok := h.(domain.UnsubscriptionIntentVerifiedHandler); ok {
			return v.OnUnsubscriptionIntentVerified, true
		}
	}
	return nil, false
}
