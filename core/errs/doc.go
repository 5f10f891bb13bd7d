// Package errs defines the error taxonomy shared by the lifecycle components.
//
// Every fallible operation returns an *Error carrying a Kind, the operation
// that failed and the underlying cause. Callers branch on the kind with Is
// or KindOf instead of matching on messages.
//
// # Kinds
//
//   - network: transport failure or timeout talking to the release endpoints
//   - parse: the release index answered with an unexpected payload
//   - io: a filesystem read or write failed
//   - spawn: the server process could not be created
//   - malformed_config: the config document is not readable as text
//   - config_missing: the config document is absent when it is required
//   - install: an install step failed (wraps the step's error)
//
// # Usage
//
//	if err := client.Download(ctx, url, dest); err != nil {
//	    if errs.Is(err, errs.KindNetwork) {
//	        // retry later
//	    }
//	}
package errs
