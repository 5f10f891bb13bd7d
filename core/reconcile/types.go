package reconcile

import "time"

// ReleaseResult is the reconciliation output for one release tag.
type ReleaseResult struct {
	// Tag is the release tag, e.g. "v3.4.1".
	Tag string `json:"tag"`

	// HistoryPresent is true when a successful install, update or restore of
	// the tag was recorded.
	HistoryPresent bool `json:"history_present"`

	// ArchivePresent is true when the archive holds the tag.
	ArchivePresent bool `json:"archive_present"`

	// Installed is true when the tag is the installed version.
	Installed bool `json:"installed"`

	// ArchivedAt is when the archived copy was stored.
	ArchivedAt *time.Time `json:"archived_at,omitempty"`

	// Size is the size of the archived executable in bytes.
	Size int64 `json:"size,omitempty"`

	// Issues describes inconsistencies between the sources.
	Issues []string `json:"issues"`
}

// Spec defines a reconciliation run. History and Archive may be nil; checks
// involving a missing source are skipped.
type Spec struct {
	// ServerID scopes history rows and archive keys.
	ServerID string

	History HistorySource
	Archive ArchiveSource
	Local   LocalSource

	// CacheTTL is the time-to-live for cached indices.
	// If zero, every call rebuilds.
	CacheTTL time.Duration
}

// CacheKey returns the key the indices of this spec are cached under.
func (s *Spec) CacheKey() string {
	return s.ServerID
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionArchiveInstalled stores the installed executable under its tag.
	ActionArchiveInstalled ActionType = "archive_installed"
)

// Action represents a planned mutation operation.
type Action struct {
	Type   ActionType `json:"type"`
	Tag    string     `json:"tag"`
	Reason string     `json:"reason"`
}

// ReleasePlan contains reconciliation results and planned actions.
type ReleasePlan struct {
	Results []ReleaseResult `json:"results"`
	Actions []Action        `json:"actions"`
	Summary PlanSummary     `json:"summary"`
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	// TotalTags is the number of distinct tags across all sources.
	TotalTags int `json:"total_tags"`

	// MissingArchive counts recorded or installed tags the archive lacks.
	MissingArchive int `json:"missing_archive"`

	// MissingHistory counts archived tags without a recorded install.
	MissingHistory int `json:"missing_history"`

	// ArchiveActions counts planned archive actions.
	ArchiveActions int `json:"archive_actions"`

	HistoryAvailable bool `json:"history_available"`
	ArchiveAvailable bool `json:"archive_available"`
}

// Options controls ApplyPlan.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed must be set for mutations to execute.
	Confirmed bool
}
