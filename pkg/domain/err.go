package domain

import "fmt"

// Origin identifies the organization and module that defined an error kind.
type Origin struct {
	Org    string
	Module string
}

const (
	// ProtocolOrg is the organization of this module.
	ProtocolOrg = "asecurityteam"
	// ProtocolModule is the name of this module.
	ProtocolModule = "websubhub"
)

// ProtocolOrigin is the identity of this module. Only errors carrying it are
// treated as protocol defined.
func ProtocolOrigin() Origin {
	return Origin{Org: ProtocolOrg, Module: ProtocolModule}
}

// ErrorKind is the symbolic name of an error type.
type ErrorKind string

// Kinds of protocol errors a handler may return, plus the kind of the
// failure produced when a handler could not be invoked at all.
const (
	KindTopicRegistration      ErrorKind = "TopicRegistrationError"
	KindTopicDeregistration    ErrorKind = "TopicDeregistrationError"
	KindUpdateMessage          ErrorKind = "UpdateMessageError"
	KindBadSubscription        ErrorKind = "BadSubscriptionError"
	KindSubscriptionInternal   ErrorKind = "SubscriptionInternalError"
	KindSubscriptionDenied     ErrorKind = "SubscriptionDeniedError"
	KindUnsubscriptionInternal ErrorKind = "UnsubscriptionInternalError"
	KindUnsubscriptionDenied   ErrorKind = "UnsubscriptionDeniedError"
	KindServiceExecution       ErrorKind = "ServiceExecutionError"
)

// HubError is a failure a handler returns to reject a request. Kind and
// Origin together decide whether the dispatcher treats it as a protocol
// error. Use the New* constructors to produce protocol errors.
type HubError struct {
	Kind    ErrorKind
	Origin  Origin
	Message string
	// StatusCode, when set, is the transport status to respond with.
	StatusCode int
	Headers    Headers
	Cause      error
}

func (e *HubError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// Unwrap exposes the cause, if any.
func (e *HubError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newHubError(kind ErrorKind, format string, args ...interface{}) *HubError {
	return &HubError{Kind: kind, Origin: ProtocolOrigin(), Message: fmt.Sprintf(format, args...)}
}

// NewTopicRegistrationError rejects a topic registration.
func NewTopicRegistrationError(format string, args ...interface{}) *HubError {
	return newHubError(KindTopicRegistration, format, args...)
}

// NewTopicDeregistrationError rejects a topic deregistration.
func NewTopicDeregistrationError(format string, args ...interface{}) *HubError {
	return newHubError(KindTopicDeregistration, format, args...)
}

// NewUpdateMessageError rejects a content update.
func NewUpdateMessageError(format string, args ...interface{}) *HubError {
	return newHubError(KindUpdateMessage, format, args...)
}

// NewBadSubscriptionError rejects a malformed subscription request.
func NewBadSubscriptionError(format string, args ...interface{}) *HubError {
	return newHubError(KindBadSubscription, format, args...)
}

// NewSubscriptionInternalError reports a hub side subscription failure.
func NewSubscriptionInternalError(format string, args ...interface{}) *HubError {
	return newHubError(KindSubscriptionInternal, format, args...)
}

// NewSubscriptionDeniedError denies a subscription during validation.
func NewSubscriptionDeniedError(format string, args ...interface{}) *HubError {
	return newHubError(KindSubscriptionDenied, format, args...)
}

// NewUnsubscriptionInternalError reports a hub side unsubscription failure.
func NewUnsubscriptionInternalError(format string, args ...interface{}) *HubError {
	return newHubError(KindUnsubscriptionInternal, format, args...)
}

// NewUnsubscriptionDeniedError denies an unsubscription during validation.
func NewUnsubscriptionDeniedError(format string, args ...interface{}) *HubError {
	return newHubError(KindUnsubscriptionDenied, format, args...)
}

// ServiceExecutionError is produced when a handler operation could not be
// invoked. Cause is the failure reported by the invocation mechanism.
type ServiceExecutionError struct {
	Origin Origin
	Cause  error
}

func (e *ServiceExecutionError) Error() string {
	if e.Cause == nil {
		return "service method invocation failed: "
	}
	return "service method invocation failed: " + e.Cause.Error()
}

// Kind is always KindServiceExecution.
func (e *ServiceExecutionError) Kind() ErrorKind {
	return KindServiceExecution
}

// Unwrap exposes the invocation failure.
func (e *ServiceExecutionError) Unwrap() error {
	return e.Cause
}

// NotFoundError represents a failed lookup for a resource. The invokers use
// it when the handler does not implement the requested operation.
type NotFoundError struct {
	// ID is the key used when looking for the resource.
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("resource (%s) not found", e.ID)
}

// PanicError wraps a value recovered from a panicking handler operation.
type PanicError struct {
	Operation Operation
	Value     interface{}
}

func (e PanicError) Error() string {
	return fmt.Sprintf("operation (%s) panicked: %v", e.Operation, e.Value)
}
