package lifecycle

import (
	"errors"
	"strings"
)

// Notices returned by successful operations.
const (
	NoticeUpdated  = "updated"
	NoticeUpToDate = "up-to-date"
)

var (
	// ErrVersionUnavailable means the local or remote version could not be
	// determined, so no update decision was made.
	ErrVersionUnavailable = errors.New("version comparison unavailable")
	// ErrServerRunning rejects operations that replace files in use.
	ErrServerRunning = errors.New("server is running")
	// ErrArchiveDisabled is returned by archive operations without storage.
	ErrArchiveDisabled = errors.New("release archive is not configured")
)

// Outcome is what an operation reports to the user: a notice on success or
// an error on failure.
type Outcome struct {
	Notice string
	Err    error
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Message renders the outcome for display.
func (o Outcome) Message() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return o.Notice
}

// UpdateStatus is the result of comparing the installed and latest tags.
type UpdateStatus struct {
	Local     string `json:"local"`
	Remote    string `json:"remote"`
	Available bool   `json:"available"`
}

// Validity lists which required files are missing from a directory.
type Validity struct {
	Path    string   `json:"path"`
	Missing []string `json:"missing"`
	// MissingFields lists managed settings absent from the configuration
	// document. They are appended on the next start and do not make the
	// directory invalid.
	MissingFields []string `json:"missing_fields,omitempty"`
}

// Valid reports whether both required files exist.
func (v Validity) Valid() bool {
	return len(v.Missing) == 0
}

// Message describes the first missing file, or is empty when valid.
func (v Validity) Message() string {
	if v.Valid() {
		return ""
	}
	return "Invalid Path! Fail to find " + v.Missing[0]
}

// String lists every missing file.
func (v Validity) String() string {
	if v.Valid() {
		return "valid"
	}
	return "missing " + strings.Join(v.Missing, ", ")
}
