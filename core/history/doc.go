// Package history keeps an audit trail of lifecycle operations.
//
// Each install, update, start, stop or restore produces an Event. When a
// database is configured the events are stored in the lifecycle_events
// table through Store; otherwise Noop discards them. Recording is best
// effort and never fails the operation that produced the event.
package history
