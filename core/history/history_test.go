package history

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestStore_Record(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `lifecycle_events`")).
		WithArgs(sqlmock.AnyArg(), "srv-1", OpInstall, "v3.4.1", true, "installed v3.4.1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.Record(context.Background(), Event{
		ServerID:  "srv-1",
		Operation: OpInstall,
		Version:   "v3.4.1",
		Success:   true,
		Message:   "installed v3.4.1",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Record_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `lifecycle_events`")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := store.Record(context.Background(), Event{ServerID: "srv-1", Operation: OpUpdate})
	assert.ErrorContains(t, err, "failed to record update event")
}

func TestStore_Recent(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "server_id", "operation", "version", "success", "message", "created_at"}).
		AddRow("b", "srv-1", OpUpdate, "v3.4.2", true, "updated", now).
		AddRow("a", "srv-1", OpInstall, "v3.4.1", true, "installed v3.4.1", now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `lifecycle_events` WHERE server_id = ? ORDER BY created_at DESC")).
		WillReturnRows(rows)

	events, err := store.Recent(context.Background(), "srv-1", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, OpUpdate, events[0].Operation)
	assert.Equal(t, "v3.4.1", events[1].Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Versions(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	rows := sqlmock.NewRows([]string{"version"}).AddRow("v3.4.1").AddRow("v3.4.2")
	mock.ExpectQuery("SELECT DISTINCT `version` FROM `lifecycle_events` WHERE").
		WillReturnRows(rows)

	tags, err := store.Versions(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v3.4.1", "v3.4.2"}, tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Versions_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT DISTINCT").WillReturnError(errors.New("table missing"))

	_, err := store.Versions(context.Background(), "srv-1")
	assert.ErrorContains(t, err, "failed to list versions")
}

func TestNoop(t *testing.T) {
	var r Recorder = Noop{}
	assert.NoError(t, r.Record(context.Background(), Event{}))
	events, err := r.Recent(context.Background(), "srv-1", 5)
	assert.NoError(t, err)
	assert.Empty(t, events)
}
