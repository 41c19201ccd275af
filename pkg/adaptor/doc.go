// Package adaptor binds an application supplied hub handler to a dispatcher
// and exposes one call-site per hub protocol operation.
package adaptor

//go:generate mockgen -destination mock_invoker_test.go -package adaptor github.com/asecurityteam/websubhub/pkg/domain Invoker
