// Package instance exposes the lifecycle of the managed BeamMP server over
// HTTP.
//
// The Service serializes install, update, start, stop and restore calls
// with a mutex and keeps the running process between requests, so the
// lifecycle manager never sees concurrent operations.
//
// # HTTP Endpoints
//
//   - GET /instance/state : State, PID and installed version.
//   - POST /instance/install : Install the latest release.
//   - GET /instance/update : Compare installed and latest versions.
//   - POST /instance/update : Update when a newer release exists.
//   - POST /instance/start : Reconcile the configuration and start.
//   - POST /instance/stop : Send the exit command to the console.
//   - GET /instance/releases : List archived releases.
//   - POST /instance/releases/:tag/restore : Restore an archived release.
//   - GET /instance/history : Recent lifecycle events.
package instance
