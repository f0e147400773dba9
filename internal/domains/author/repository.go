package author

import (
	"context"
	"time"

	"bookstore-api/internal/shared/listing"
)

// Repository defines the interface for Author data access operations
type Repository interface {
	// Create inserts a new author; id and timestamps come back from the insert.
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound if not exists
	GetByID(ctx context.Context, id int64) (*Author, error)

	// List applies the optional name search to both the count and the page query.
	List(ctx context.Context, params listing.Params) (listing.Page[Author], error)

	// Update applies the non-nil fields of patch and refreshes updated_at.
	// Returns ErrAuthorNotFound if no row matches.
	Update(ctx context.Context, id int64, patch Patch, now time.Time) (*Author, error)

	// Delete reports whether a row was removed. Books of the author are removed by cascade.
	Delete(ctx context.Context, id int64) (bool, error)
}
