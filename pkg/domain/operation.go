package domain

// Operation identifies one of the hub protocol events that a handler may
// react to. The value is the name of the handler method that services the
// event.
type Operation string

// Operations recognized by the hub, named after the handler methods.
const (
	OperationRegisterTopic                Operation = "onRegisterTopic"
	OperationDeregisterTopic              Operation = "onDeregisterTopic"
	OperationUpdateMessage                Operation = "onUpdateMessage"
	OperationSubscription                 Operation = "onSubscription"
	OperationSubscriptionValidation       Operation = "onSubscriptionValidation"
	OperationSubscriptionIntentVerified   Operation = "onSubscriptionIntentVerified"
	OperationUnsubscription               Operation = "onUnsubscription"
	OperationUnsubscriptionValidation     Operation = "onUnsubscriptionValidation"
	OperationUnsubscriptionIntentVerified Operation = "onUnsubscriptionIntentVerified"
)

var operations = []Operation{
	OperationRegisterTopic,
	OperationDeregisterTopic,
	OperationUpdateMessage,
	OperationSubscription,
	OperationSubscriptionValidation,
	OperationSubscriptionIntentVerified,
	OperationUnsubscription,
	OperationUnsubscriptionValidation,
	OperationUnsubscriptionIntentVerified,
}

// Operations returns every recognized operation in protocol order. The
// result is a copy and may be modified by the caller.
func Operations() []Operation {
	return append([]Operation(nil), operations...)
}
