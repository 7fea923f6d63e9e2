package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

// ApplyPatch must touch exactly the staged columns in one statement.
// Staged columns appear in the SET clause alphabetically; anything not
// staged stays out of the query entirely.
func TestApplyPatch_OnlyStagedColumns(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	patch := NewTaskPatch()
	patch.Set("status", "done")
	patch.Set("completed_at", now)
	patch.Set("updated_at", now)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE "tasks" SET "completed_at"=$1,"status"=$2,"updated_at"=$3 WHERE id = $4`,
	)).
		WithArgs(now, "done", now, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.ApplyPatch(7, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPatch_ExplicitNullClearsColumn(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	patch := NewTaskPatch()
	patch.Set("assignee_id", nil)
	patch.Set("updated_at", now)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE "tasks" SET "assignee_id"=$1,"updated_at"=$2 WHERE id = $3`,
	)).
		WithArgs(nil, now, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.ApplyPatch(7, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPatch_MissingRow(t *testing.T) {
	repo, mock := setupMockDB(t)

	patch := NewTaskPatch()
	patch.Set("updated_at", time.Now())

	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.ApplyPatch(999, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestTaskPatch(t *testing.T) {
	patch := NewTaskPatch()
	assert.True(t, patch.Empty())
	assert.False(t, patch.Has("title"))

	patch.Set("title", "A")
	patch.Set("assignee_id", nil)

	assert.False(t, patch.Empty())
	assert.True(t, patch.Has("title"))
	assert.True(t, patch.Has("assignee_id"), "explicit null is still a staged column")
	assert.False(t, patch.Has("status"))

	cols := patch.Columns()
	assert.Equal(t, "A", cols["title"])
	assert.Nil(t, cols["assignee_id"])
}
