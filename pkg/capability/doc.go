// Package capability reports which hub operations a handler implements and
// resolves the callable for a given operation. Handlers declare their surface
// statically through the operation interfaces in the domain package, so the
// lookups here are plain type assertions and are safe for concurrent use.
package capability
