// Package metrics publishes Prometheus metrics for lifecycle operations.
// The collectors live in the default registry and are served by the
// /metrics route of the HTTP API.
package metrics
