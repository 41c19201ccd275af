package dispatch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/asecurityteam/websubhub/pkg/domain"
)

func TestClassify(t *testing.T) {
	foreign := domain.Origin{Org: "example", Module: "websubhub"}
	tests := []struct {
		name string
		err  error
		want domain.OutcomeKind
	}{
		{name: "topic registration", err: domain.NewTopicRegistrationError("no"), want: domain.OutcomeDomainError},
		{name: "topic deregistration", err: domain.NewTopicDeregistrationError("no"), want: domain.OutcomeDomainError},
		{name: "update message", err: domain.NewUpdateMessageError("no"), want: domain.OutcomeDomainError},
		{name: "bad subscription", err: domain.NewBadSubscriptionError("no"), want: domain.OutcomeDomainError},
		{name: "subscription internal", err: domain.NewSubscriptionInternalError("no"), want: domain.OutcomeDomainError},
		{name: "subscription denied", err: domain.NewSubscriptionDeniedError("no"), want: domain.OutcomeDomainError},
		{name: "unsubscription internal", err: domain.NewUnsubscriptionInternalError("no"), want: domain.OutcomeDomainError},
		{name: "unsubscription denied", err: domain.NewUnsubscriptionDeniedError("no"), want: domain.OutcomeDomainError},
		{
			name: "wrapped protocol error",
			err:  fmt.Errorf("storing topic: %w", domain.NewTopicRegistrationError("no")),
			want: domain.OutcomeDomainError,
		},
		{
			name: "protocol kind with foreign org",
			err:  &domain.HubError{Kind: domain.KindTopicRegistration, Origin: foreign, Message: "no"},
			want: domain.OutcomeUnexpectedError,
		},
		{
			name: "protocol kind with foreign module",
			err: &domain.HubError{
				Kind:    domain.KindBadSubscription,
				Origin:  domain.Origin{Org: domain.ProtocolOrg, Module: "websub"},
				Message: "no",
			},
			want: domain.OutcomeUnexpectedError,
		},
		{
			name: "protocol kind without origin",
			err:  &domain.HubError{Kind: domain.KindUpdateMessage, Message: "no"},
			want: domain.OutcomeUnexpectedError,
		},
		{
			name: "unknown kind with protocol origin",
			err:  &domain.HubError{Kind: "ListenerError", Origin: domain.ProtocolOrigin(), Message: "no"},
			want: domain.OutcomeUnexpectedError,
		},
		{
			name: "service execution error",
			err:  &domain.ServiceExecutionError{Origin: domain.ProtocolOrigin(), Cause: errors.New("x")},
			want: domain.OutcomeUnexpectedError,
		},
		{name: "plain error", err: errors.New("TopicRegistrationError"), want: domain.OutcomeUnexpectedError},
		{name: "nil hub error", err: (*domain.HubError)(nil), want: domain.OutcomeUnexpectedError},
		{
			name: "wrapped nil hub error",
			err:  fmt.Errorf("storing topic: %w", (*domain.HubError)(nil)),
			want: domain.OutcomeUnexpectedError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
			if got := IsDomainError(tt.err); got != (tt.want == domain.OutcomeDomainError) {
				t.Errorf("IsDomainError() = %v", got)
			}
		})
	}
}
