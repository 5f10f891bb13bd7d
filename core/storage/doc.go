// Package storage archives installed server executables in object storage.
//
// It wraps the MinIO Go client behind the Client interface (mocked in
// core/storage/mocks) and builds an Archive on top of it. Every executable
// the manager installs can be uploaded under <serverID>/<tag>/<file>, listed
// later and restored into the instance directory, which makes rolling back
// to a previous release a local operation. Works with AWS S3 and self-hosted
// MinIO alike.
//
// # Operations
//
//   - Store: upload an executable for a release tag (creates the bucket if needed).
//   - List: archived releases for a server, newest first.
//   - Fetch: download an archived executable into place atomically.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchive(client, cfg.Storage.Bucket, logger)
//	err = archive.Store(ctx, "1", "v3.4.1", "/srv/beammp/BeamMP-Server.exe")
package storage
