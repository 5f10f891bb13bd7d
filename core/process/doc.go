// Package process launches the server executable and asks it to shut down.
//
// Launch spawns the executable directly (no shell) in its own process group
// and without stealing focus, keeps its stdin open as the interactive
// console, and forwards stdout/stderr lines to the logger.
//
// RequestShutdown types the server's "exit" command on that console. It is
// best effort: a nil, exited or console-less instance is a no-op. Callers
// that need guaranteed termination must layer their own kill-after-timeout
// policy on top of Instance.Done.
package process
