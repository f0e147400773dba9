package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/shared/listing"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/pkg/database"
)

const (
	bookColumns = "id, title, description, published_date, author_id, created_at, updated_at"

	// foreign_key_violation
	foreignKeyViolation = "23503"
)

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.PublishedDate, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// translateWriteError maps an FK violation on author_id to a domain error
func translateWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return model.ErrAuthorReferenceNotFound
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrBookNotFound
	}
	return fmt.Errorf("failed to %s book: %w", op, err)
}

// buildWhereClause - Construct WHERE clause dynamically
func buildWhereClause(params listing.Params, authorID *int64) (string, []any) {
	filter := listing.NewFilter().
		AndIf(params.Search != "", listing.Contains("b.title", params.Search)).
		AndIf(authorID != nil, listing.Equals("b.author_id", derefID(authorID)))
	return filter.SQL(1)
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// List - LEFT JOIN authors so each row carries its author without extra lookups
func (r *postgresRepository) List(ctx context.Context, params listing.Params, authorID *int64) (listing.Page[model.Book], error) {
	whereClause, args := buildWhereClause(params, authorID)

	countQuery := `SELECT COUNT(*) FROM books b` + whereClause
	dataQuery := fmt.Sprintf(`
    SELECT
        b.id, b.title, b.description, b.published_date, b.author_id, b.created_at, b.updated_at,
        a.id, a.name, a.bio
    FROM books b
    LEFT JOIN authors a ON b.author_id = a.id%s
    ORDER BY b.created_at DESC, b.id ASC
    LIMIT $%d OFFSET $%d`, whereClause, len(args)+1, len(args)+2)

	return listing.Run(ctx,
		func(ctx context.Context) (int64, error) {
			return r.getBookCount(ctx, countQuery, args)
		},
		func(ctx context.Context) ([]model.Book, error) {
			pageArgs := append(append([]any{}, args...), params.Limit, params.Offset())
			return r.executeListQuery(ctx, dataQuery, pageArgs)
		},
	)
}

func (r *postgresRepository) getBookCount(ctx context.Context, query string, args []any) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) executeListQuery(ctx context.Context, query string, args []any) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var (
			b        model.Book
			authorID *int64
			name     *string
			bio      *string
		)
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Description, &b.PublishedDate, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
			&authorID, &name, &bio,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}

		if authorID != nil {
			summary := &model.AuthorSummary{ID: *authorID}
			if name != nil {
				summary.Name = *name
			}
			if bio != nil {
				summary.Bio = *bio
			}
			b.Author = summary
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := scanBook(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, description, published_date, author_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + bookColumns

	created, err := scanBook(r.db.QueryRow(ctx, query,
		b.Title, b.Description, b.PublishedDate, b.AuthorID, b.CreatedAt, b.UpdatedAt,
	))
	if err != nil {
		return nil, translateWriteError(err, "create")
	}
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, patch model.Patch, now time.Time) (*model.Book, error) {
	set := &utils.UpdateSet{}
	set.SetIf(patch.Title != nil, "title", deref(patch.Title)).
		SetIf(patch.Description != nil, "description", deref(patch.Description)).
		SetIf(patch.AuthorID != nil, "author_id", derefID(patch.AuthorID))
	if patch.PublishedDate != nil {
		set.Set("published_date", *patch.PublishedDate)
	}
	set.Touch(now)
	wherePH := set.Arg(id)

	assignments, args := set.SQL()
	query := `UPDATE books SET ` + assignments + ` WHERE id = ` + wherePH + ` RETURNING ` + bookColumns

	b, err := scanBook(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateWriteError(err, "update")
	}
	return b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
