// Package watch observes the instance directory with fsnotify so the
// manager notices when the executable or configuration document is
// created, replaced or deleted outside of its own operations.
package watch
