package dispatch

import (
	"errors"

	"github.com/asecurityteam/websubhub/pkg/domain"
)

var moduleDefinedErrors = map[domain.ErrorKind]bool{
	domain.KindTopicRegistration:      true,
	domain.KindTopicDeregistration:    true,
	domain.KindUpdateMessage:          true,
	domain.KindBadSubscription:        true,
	domain.KindSubscriptionInternal:   true,
	domain.KindSubscriptionDenied:     true,
	domain.KindUnsubscriptionInternal: true,
	domain.KindUnsubscriptionDenied:   true,
}

// IsDomainError reports whether err is one of the protocol errors defined by
// this module. Both the kind and the origin must match; a handler defined
// error that reuses a protocol kind name is not a domain error, and neither
// is a nil *domain.HubError.
func IsDomainError(err error) bool {
	var hubErr *domain.HubError
	if !errors.As(err, &hubErr) {
		return false
	}
	return hubErr != nil && moduleDefinedErrors[hubErr.Kind] && hubErr.Origin == domain.ProtocolOrigin()
}

// Classify decides how a failure returned by a handler is surfaced.
func Classify(err error) domain.OutcomeKind {
	if IsDomainError(err) {
		return domain.OutcomeDomainError
	}
	return domain.OutcomeUnexpectedError
}
