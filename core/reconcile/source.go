package reconcile

import (
	"context"

	"beammp-manager/core/storage"
)

// HistorySource lists the tags a server was successfully moved to.
type HistorySource interface {
	Versions(ctx context.Context, serverID string) ([]string, error)
}

// ArchiveSource lists archived releases.
type ArchiveSource interface {
	List(ctx context.Context, serverID string) ([]storage.ArchivedRelease, error)
}

// LocalSource reads the installed version.
type LocalSource interface {
	ReadLocal() (string, bool)
}

// Archiver stores a local executable under a tag.
type Archiver interface {
	Store(ctx context.Context, serverID, tag, localPath string) error
}
