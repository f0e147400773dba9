package repository

import (
	"context"
	"time"

	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/shared/listing"
)

// RepositoryInterface - Định nghĩa data access methods
type RepositoryInterface interface {
	// List applies the optional title search and author filter identically to count and page.
	// Each row carries its author summary from a join.
	List(ctx context.Context, params listing.Params, authorID *int64) (listing.Page[model.Book], error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	// Create returns model.ErrAuthorReferenceNotFound when author_id has no author.
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	Update(ctx context.Context, id int64, patch model.Patch, now time.Time) (*model.Book, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
