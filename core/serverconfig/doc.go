// Package serverconfig keeps the server's ServerConfig.toml in sync with the
// authoritative settings owned by the caller.
//
// The document is user-owned: only the value tokens of five managed fields
// (Name, Port, AuthKey, MaxPlayers, Map) in the [General] section are ever
// rewritten. Comments, ordering, line endings and every other assignment
// stay byte-for-byte identical. Parsing is line-oriented and keyed on the
// field name before '=', so comments that merely mention "Port = 1" are
// never touched.
//
// # Missing fields
//
// A managed field with no assignment in [General] is appended at the end of
// that section (after its last non-blank line). Without a [General] section
// a new one is appended at the end of the file. Reconcile reports which
// fields were updated and which were appended, and is idempotent.
//
// # Operations
//
//   - MaterializeDefault: render a fresh document from the built-in template.
//   - Reconcile: targeted rewrite of the managed fields.
//   - Inspect: decode the managed values (read only) for diagnostics.
//   - Store: atomic load/save of the document on disk.
package serverconfig
