package repository

import (
	"context"
	"errors"
	"testing"

	"weave/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB returns a GORM database backed by sqlmock so tests can force
// driver-level failures.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db, mock
}

func TestUserGetByIDDriverFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), 1)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionExistsDriverFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "connections"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Exists(context.Background(), 1, 2)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionCreatePairRollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewConnectionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "connections"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "connected_user_id"}))
	mock.ExpectQuery(`INSERT INTO "connections"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.CreatePair(context.Background(), 1, 2)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
