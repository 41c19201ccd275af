// Package lambdafn exposes the hub operations as an AWS Lambda handler.
// Each event names a single operation and carries its message and headers.
package lambdafn
