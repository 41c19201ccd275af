// Package v1 contains all http.Handlers used to service the version 1.X.X API of
// a running hub. This version scheme is used internally to track and manage
// changes of this systems public facing HTTP API and does not strictly relate to
// versions of the WebSub recommendation that this system implements.
package v1
