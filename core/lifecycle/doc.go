// Package lifecycle orchestrates the managed server: install, update,
// start, stop and validity checks.
//
// It is the only package that combines the release client, version
// manifest, configuration reconciler and process controller. Each
// operation reports an Outcome (a notice or an error) and, when configured,
// archives downloaded executables and records a history event. Neither of
// those side effects can fail the operation.
//
// # State Machine
//
//	absent -> installing -> installed
//	installed -> starting -> running -> stopping -> installed
//	installed -> updating -> installed
//
// Failures return to the previous stable state.
//
// # Concurrency
//
// Operations on one Manager must be serialized by the caller. The HTTP API
// does this with a mutex in its service layer.
package lifecycle
