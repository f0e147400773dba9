package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-api/internal/domains/user"
)

var columns = []string{"id", "username", "email", "password_hash", "role", "created_at", "updated_at"}

func setupTest(t *testing.T) (user.Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresRepository(mock), mock
}

func newUser(now time.Time) *user.User {
	return &user.User{
		Username:     "reader",
		Email:        "reader@example.com",
		PasswordHash: "$2a$12$hash",
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func expectLockAndExists(mock pgxmock.PgxPoolIface, email string, exists bool) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext(lower($1)))")).
		WithArgs(email).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))")).
		WithArgs(email).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestCreate(t *testing.T) {
	repo, mock := setupTest(t)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	in := newUser(now)

	expectLockAndExists(mock, in.Email, false)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, email, password_hash, role, created_at, updated_at)")).
		WithArgs("reader", "reader@example.com", "$2a$12$hash", "user", now, now).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(5), "reader", "reader@example.com", "$2a$12$hash", "user", now, now))
	mock.ExpectCommit()

	got, err := repo.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, user.RoleUser, got.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmailRollsBack(t *testing.T) {
	repo, mock := setupTest(t)
	in := newUser(time.Now().UTC())

	expectLockAndExists(mock, in.Email, true)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), in)

	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := setupTest(t)
	in := newUser(time.Now().UTC())

	expectLockAndExists(mock, in.Email, false)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_key"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), in)

	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := setupTest(t)
		now := time.Now().UTC()
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE lower(email) = lower($1)")).
			WithArgs("Reader@Example.com").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(5), "reader", "reader@example.com", "h", "admin", now, now))

		got, err := repo.GetByEmail(context.Background(), "Reader@Example.com")

		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, got.Role)
		assert.Equal(t, "h", got.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupTest(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE lower(email)")).
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestGetByID(t *testing.T) {
	repo, mock := setupTest(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), 9)

	require.Error(t, err)
	assert.NotErrorIs(t, err, user.ErrUserNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}
