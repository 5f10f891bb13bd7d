// Package integrity provides health checks for the managed installation
// and its supporting infrastructure.
//
// # Checks Provided
//
//   - Install: the server executable and ServerConfig.toml exist in the
//     instance directory.
//   - Import: the same check for an arbitrary directory, with the precise
//     "Invalid Path! Fail to find <file>" diagnostic.
//   - Config: the managed settings in ServerConfig.toml, fields missing from
//     [General], and fields that will be rewritten on the next start.
//   - History: the lifecycle_events table matches the history.Event model.
//   - Archive: the release archive bucket exists (supports ?fix=true).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/install
//   - GET /integrity/import?path=<dir>
//   - GET /integrity/config
//   - GET /integrity/history
//   - GET /integrity/archive
package integrity
