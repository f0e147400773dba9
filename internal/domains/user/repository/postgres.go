package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore-api/internal/domains/user"
	"bookstore-api/pkg/database"
)

const (
	userColumns = "id, username, email, password_hash, role, created_at, updated_at"

	uniqueViolation = "23505" // unique_violation
)

// postgresRepository là concrete implementation của user.Repository interface
type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository returns the interface so callers depend on the contract only.
func NewPostgresRepository(db database.DBTX) user.Repository {
	return &postgresRepository{db: db}
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		u    user.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = user.Role(role)
	return &u, nil
}

// Create tạo user mới trong một transaction.
// The advisory lock serializes concurrent registrations of the same email, so the
// existence check and the insert cannot interleave; the unique index is the backstop.
func (r *postgresRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*user.User, error) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext(lower($1)))`, u.Email); err != nil {
			return nil, fmt.Errorf("failed to lock email: %w", err)
		}

		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, u.Email,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, user.ErrEmailAlreadyExists
		}

		query := `
			INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING ` + userColumns

		created, err := scanUser(tx.QueryRow(ctx, query,
			u.Username, u.Email, u.PasswordHash, u.Role.String(), u.CreatedAt, u.UpdatedAt,
		))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return nil, user.ErrEmailAlreadyExists
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail matches case-insensitively.
func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}
