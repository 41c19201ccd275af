// Package dispatch invokes hub handler operations asynchronously and turns
// their results into a domain.Outcome.
//
// Every invocation produces a Pending value that is completed exactly once.
// Handler failures are classified: protocol errors that originate from this
// module are passed through silently, any other handler failure is logged and
// then passed through unchanged, and failures of the invocation mechanism
// itself are wrapped in a domain.ServiceExecutionError.
package dispatch

//go:generate mockgen -destination mock_invoker_test.go -package dispatch github.com/asecurityteam/websubhub/pkg/domain Invoker
//go:generate mockgen -destination mock_logger_test.go -package dispatch -mock_names Logger=MockLogger github.com/asecurityteam/logevent/v2 Logger
