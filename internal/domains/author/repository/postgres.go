package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"bookstore-api/internal/domains/author"
	"bookstore-api/internal/shared/listing"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/pkg/database"
)

const authorColumns = "id, name, bio, birthdate, created_at, updated_at"

// postgresRepository implements author.Repository interface
type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(db database.DBTX) author.Repository {
	return &postgresRepository{db: db}
}

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	err := row.Scan(&a.ID, &a.Name, &a.Bio, &a.Birthdate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts new author with generated ID and timestamps
func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (name, bio, birthdate, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.db.QueryRow(ctx, query, a.Name, a.Bio, a.Birthdate, a.CreatedAt, a.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return created, nil
}

// GetByID retrieves author by id
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return a, nil
}

// List retrieves a page of authors, newest first
func (r *postgresRepository) List(ctx context.Context, params listing.Params) (listing.Page[author.Author], error) {
	filter := listing.NewFilter().AndIf(params.Search != "", listing.Contains("name", params.Search))
	where, args := filter.SQL(1)

	countQuery := `SELECT COUNT(*) FROM authors` + where
	dataQuery := fmt.Sprintf(`SELECT %s FROM authors%s%s LIMIT $%d OFFSET $%d`,
		authorColumns, where, listing.OrderBy, len(args)+1, len(args)+2)

	return listing.Run(ctx,
		func(ctx context.Context) (int64, error) {
			var total int64
			if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
				return 0, fmt.Errorf("failed to count authors: %w", err)
			}
			return total, nil
		},
		func(ctx context.Context) ([]author.Author, error) {
			pageArgs := append(append([]any{}, args...), params.Limit, params.Offset())
			rows, err := r.db.Query(ctx, dataQuery, pageArgs...)
			if err != nil {
				return nil, fmt.Errorf("failed to list authors: %w", err)
			}
			defer rows.Close()

			authors := make([]author.Author, 0, params.Limit)
			for rows.Next() {
				a, err := scanAuthor(rows)
				if err != nil {
					return nil, fmt.Errorf("failed to scan author: %w", err)
				}
				authors = append(authors, *a)
			}
			if err := rows.Err(); err != nil {
				return nil, fmt.Errorf("failed to iterate authors: %w", err)
			}
			return authors, nil
		},
	)
}

// Update applies the patch in a single statement
func (r *postgresRepository) Update(ctx context.Context, id int64, patch author.Patch, now time.Time) (*author.Author, error) {
	set := &utils.UpdateSet{}
	if patch.Name != nil {
		set.Set("name", *patch.Name)
	}
	if patch.Bio != nil {
		set.Set("bio", *patch.Bio)
	}
	if patch.Birthdate != nil {
		set.Set("birthdate", *patch.Birthdate)
	}
	set.Touch(now)
	wherePH := set.Arg(id)

	assignments, args := set.SQL()
	query := `UPDATE authors SET ` + assignments + ` WHERE id = ` + wherePH + ` RETURNING ` + authorColumns

	a, err := scanAuthor(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return a, nil
}

// Delete removes author by id
func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete author: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
