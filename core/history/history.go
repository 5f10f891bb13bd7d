package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Operations recorded by the lifecycle manager.
const (
	OpInstall = "install"
	OpUpdate  = "update"
	OpStart   = "start"
	OpStop    = "stop"
	OpRestore = "restore"
)

// Event is one lifecycle operation outcome.
type Event struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ServerID  string    `gorm:"column:server_id;type:varchar(64);index" json:"server_id"`
	Operation string    `gorm:"column:operation;type:varchar(32)" json:"operation"`
	Version   string    `gorm:"column:version;type:varchar(64)" json:"version"`
	Success   bool      `gorm:"column:success;type:tinyint(1)" json:"success"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime" json:"created_at"`
}

// TableName overrides the table name.
func (Event) TableName() string {
	return "lifecycle_events"
}

// Recorder persists and lists lifecycle events.
type Recorder interface {
	Record(ctx context.Context, e Event) error
	Recent(ctx context.Context, serverID string, limit int) ([]Event, error)
}

// Store is a Recorder backed by GORM.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the lifecycle_events table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Event{}); err != nil {
		return fmt.Errorf("failed to migrate lifecycle_events: %w", err)
	}
	return nil
}

// Record inserts e, assigning an id and timestamp when they are unset.
func (s *Store) Record(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return fmt.Errorf("failed to record %s event: %w", e.Operation, err)
	}
	return nil
}

// Recent returns up to limit events for serverID, newest first.
func (s *Store) Recent(ctx context.Context, serverID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	var events []Event
	err := s.db.WithContext(ctx).
		Where("server_id = ?", serverID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Versions returns the distinct release tags that were successfully
// installed, updated to or restored for serverID.
func (s *Store) Versions(ctx context.Context, serverID string) ([]string, error) {
	var tags []string
	err := s.db.WithContext(ctx).
		Model(&Event{}).
		Where("server_id = ? AND success = ? AND operation IN ?", serverID, true, []string{OpInstall, OpUpdate, OpRestore}).
		Where("version <> ?", "").
		Distinct("version").
		Order("version").
		Pluck("version", &tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	return tags, nil
}

// Noop discards events. It is used when no database is configured.
type Noop struct{}

func (Noop) Record(context.Context, Event) error { return nil }

func (Noop) Recent(context.Context, string, int) ([]Event, error) { return nil, nil }
