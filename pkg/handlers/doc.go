// Package handlers is a container for the transports that front the hub
// adaptor. The http.Handler instances that implement the WebSub hub endpoint
// live under versioned subpackages, and the lambda.Handler used for event
// driven deployments lives in lambdafn.
package handlers
