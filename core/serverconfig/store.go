package serverconfig

import (
	"os"

	"beammp-manager/core/errs"
	"beammp-manager/core/utils"
)

// Store loads and saves the document at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for the document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the document is present.
func (s *Store) Exists() bool {
	return utils.FileExists(s.path)
}

// Load reads the document. A missing file is a config_missing error.
func (s *Store) Load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errs.New(errs.KindConfigMissing, "load config", err)
		}
		return Document{}, errs.New(errs.KindIO, "load config", err)
	}
	return Document{content: data}, nil
}

// Save atomically replaces the document on disk.
func (s *Store) Save(doc Document) error {
	if err := utils.WriteFileAtomic(s.path, doc.content, 0o644); err != nil {
		return errs.New(errs.KindIO, "save config", err)
	}
	return nil
}
