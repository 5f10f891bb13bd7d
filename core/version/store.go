package version

import (
	"os"
	"strings"

	"beammp-manager/core/errs"
	"beammp-manager/core/utils"
)

// Prefix precedes the version tag in the manifest file.
const Prefix = "Current BeamMP-Server Version: "

// Store reads and writes the version manifest at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for the manifest at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the manifest location.
func (s *Store) Path() string {
	return s.path
}

// ReadLocal returns the recorded version. ok is false when the manifest is
// missing, unreadable or empty.
func (s *Store) ReadLocal() (version string, ok bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	version = strings.TrimSpace(strings.Replace(string(data), Prefix, "", 1))
	if version == "" {
		return "", false
	}
	return version, true
}

// WriteLocal atomically replaces the manifest with version.
func (s *Store) WriteLocal(version string) error {
	if err := utils.WriteFileAtomic(s.path, []byte(Prefix+version), 0o644); err != nil {
		return errs.New(errs.KindIO, "write version manifest", err)
	}
	return nil
}
