package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/database"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/logger"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// newMockedUserRepository wires a UserRepository onto a sqlmock-backed GORM
// connection so transaction behavior can be asserted statement by statement
func newMockedUserRepository(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	clock := fixedClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	repo := NewUserRepository(db, clock, logger.NewNoopLogger(), database.NewErrorMapper())

	return repo, mock
}

func lockedUserRow(sessions, apples int64) *sqlmock.Rows {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	return sqlmock.
		NewRows([]string{"id", "name", "email", "password_hash", "role", "barcode", "apples", "sessions_attended", "created_at", "updated_at"}).
		AddRow(7, "Omar", "omar@nileacademy.example", "hash", "assistant", "3000001", apples, sessions, created, created)
}

func insertReturningID(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}

func TestUserRepository_RecordAttendance_MilestoneCreditsBonus(t *testing.T) {
	repo, mock := newMockedUserRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users".*FOR UPDATE`).
		WillReturnRows(lockedUserRow(19, 1000))
	mock.ExpectQuery(`INSERT INTO "apple_transactions"`).
		WillReturnRows(insertReturningID(101))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "loyalty_history"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "loyalty_history"`).
		WillReturnRows(insertReturningID(11))
	mock.ExpectQuery(`INSERT INTO "apple_transactions"`).
		WillReturnRows(insertReturningID(102))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.RecordAttendance(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.True(t, result.BonusCredited)
	assert.EqualValues(t, 150, result.Accrual.SessionValue)
	assert.EqualValues(t, 50, result.Accrual.BonusApples)
	assert.EqualValues(t, 20, result.Accrual.NewSessionsAttended)
	assert.EqualValues(t, 200, result.ApplesAdded())
	assert.EqualValues(t, 1200, result.User.Apples())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second attendance landing on an already-credited threshold still earns
// the session value but must not insert a second loyalty_history row.
func TestUserRepository_RecordAttendance_RepeatedThresholdSkipsBonus(t *testing.T) {
	repo, mock := newMockedUserRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users".*FOR UPDATE`).
		WillReturnRows(lockedUserRow(19, 1000))
	mock.ExpectQuery(`INSERT INTO "apple_transactions"`).
		WillReturnRows(insertReturningID(101))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "loyalty_history"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.RecordAttendance(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.False(t, result.BonusCredited)
	assert.EqualValues(t, 150, result.Accrual.SessionValue)
	assert.EqualValues(t, 150, result.ApplesAdded())
	assert.EqualValues(t, 1150, result.User.Apples())
	assert.EqualValues(t, 20, result.User.SessionsAttended)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// If something bypasses the row lock, the composite unique index is the
// backstop: its violation surfaces as the already-credited domain error.
func TestUserRepository_RecordAttendance_GuardConflictMapsToAlreadyCredited(t *testing.T) {
	repo, mock := newMockedUserRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users".*FOR UPDATE`).
		WillReturnRows(lockedUserRow(19, 1000))
	mock.ExpectQuery(`INSERT INTO "apple_transactions"`).
		WillReturnRows(insertReturningID(101))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "loyalty_history"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "loyalty_history"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_user_bonus_type" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	result, err := repo.RecordAttendance(context.Background(), 7, 1)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errs.IsBonusAlreadyCreditedError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RecordAttendance_UnknownUser(t *testing.T) {
	repo, mock := newMockedUserRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "barcode", "apples", "sessions_attended", "created_at", "updated_at"}))
	mock.ExpectRollback()

	result, err := repo.RecordAttendance(context.Background(), 404, 1)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ApplyAdjustment_ClampsAtZero(t *testing.T) {
	repo, mock := newMockedUserRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users".*FOR UPDATE`).
		WillReturnRows(lockedUserRow(5, 40))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "apple_transactions"`).
		WillReturnRows(insertReturningID(103))
	mock.ExpectCommit()

	user, applied, err := repo.ApplyAdjustment(context.Background(), 7, -100, 1, "Apple deduction")

	require.NoError(t, err)
	assert.EqualValues(t, -40, applied)
	assert.EqualValues(t, 0, user.Apples())
	assert.NoError(t, mock.ExpectationsWereMet())
}
