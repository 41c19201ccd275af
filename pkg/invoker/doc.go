// Package invoker contains implementations of the domain.Invoker interface.
// Each implementation represents a different strategy for running handler
// operations in the background. All of them report a missing operation and a
// panicking operation through Callback.NotifyFailure.
package invoker
