package domain

// Message is a hub protocol message that the transport has already decoded.
// Keys are the protocol parameter names such as "hub.mode" and "hub.topic".
type Message map[string]interface{}

// Request is the argument set given to every handler operation. The shape is
// the same regardless of the operation being invoked.
type Request struct {
	Message Message
	// MessageResolved is always true. It tells the handler that Message holds
	// concrete values rather than a raw payload it must decode itself.
	MessageResolved bool
	Headers         Headers
	// HeadersResolved is always true for the same reason as MessageResolved.
	HeadersResolved bool
}

// Response is the value a handler operation produces when it accepts a
// request. All fields are optional.
type Response struct {
	// StatusCode overrides the transport's default success status.
	StatusCode int     `json:"statusCode,omitempty"`
	MediaType  string  `json:"mediaType,omitempty"`
	Headers    Headers `json:"headers,omitempty"`
	Body       Message `json:"body,omitempty"`
}

// OutcomeKind classifies the result of a single invocation.
type OutcomeKind int

const (
	// OutcomeSuccess means the handler accepted the request.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeDomainError means the handler rejected the request with one of the
	// protocol defined errors.
	OutcomeDomainError
	// OutcomeUnexpectedError means the handler returned an error that is not a
	// verified protocol error.
	OutcomeUnexpectedError
	// OutcomeDispatchFailure means the handler could not be reached at all.
	OutcomeDispatchFailure
)

// Outcome is produced exactly once per invocation. Err is nil only when Kind
// is OutcomeSuccess.
type Outcome struct {
	Kind     OutcomeKind
	Response Response
	Err      error
}
