// Package release talks to the remote release index and downloads server
// artifacts.
//
// The remote tag is the only source of truth for "latest". No semantic
// version comparison happens here or anywhere else: callers compare tags by
// string equality, so any tag change (including a downgrade) counts as a new
// release.
//
// # Operations
//
//   - ResolveLatest: one GET against the index, returns the tag and the artifact URL.
//   - Download: streams an artifact into place with write-temp-then-rename.
//
// Both operations take a context and are additionally bounded by the
// configured timeouts, so a stalled endpoint cannot hang the caller.
//
// # Usage
//
//	client := release.NewClient(cfg.Release)
//	rel, err := client.ResolveLatest(ctx)
//	err = client.Download(ctx, rel.DownloadURL, "/srv/beammp/BeamMP-Server.exe")
package release
