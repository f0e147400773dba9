package service

import (
	"context"

	"bookstore-api/internal/domains/author"
	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/shared/listing"
)

// ServiceInterface - Định nghĩa business logic methods
type ServiceInterface interface {
	List(ctx context.Context, params listing.Params, authorID *int64) ([]model.Book, listing.Meta, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// GetWithAuthor returns the book and its owning author.
	GetWithAuthor(ctx context.Context, id int64) (*model.BookWithAuthor, error)
	// GetAuthorWithBooks returns the author and a page of their books.
	GetAuthorWithBooks(ctx context.Context, authorID int64, params listing.Params) (*model.AuthorWithBooks, error)
}

// AuthorReader is the slice of the author domain the book service needs.
type AuthorReader interface {
	GetByID(ctx context.Context, id int64) (*author.Author, error)
}
