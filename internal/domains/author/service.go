package author

import (
	"context"

	"bookstore-api/internal/shared/listing"
)

// Service defines business logic operations for Author domain
type Service interface {
	Create(ctx context.Context, req CreateAuthorRequest) (*Author, error)
	GetByID(ctx context.Context, id int64) (*Author, error)
	List(ctx context.Context, params listing.Params) ([]Author, listing.Meta, error)
	Update(ctx context.Context, id int64, req UpdateAuthorRequest) (*Author, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
