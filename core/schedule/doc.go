// Package schedule runs periodic jobs such as the release update check.
//
// Expressions accept an optional seconds field and descriptors like
// "@every 1h" or "@daily".
package schedule
