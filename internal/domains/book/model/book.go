package model

import (
	"time"

	"bookstore-api/internal/domains/author"
	"bookstore-api/internal/shared/listing"
	"bookstore-api/internal/shared/validation"
)

// Book - entity
type Book struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"` // empty when absent, never NULL
	PublishedDate time.Time `db:"published_date"`
	AuthorID      int64     `db:"author_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	// Author is populated by the listing join only.
	Author *AuthorSummary `db:"-"`
}

// AuthorSummary is the author decoration on listed books.
type AuthorSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Patch holds the fields of a partial update; nil means unchanged.
type Patch struct {
	Title         *string
	Description   *string
	PublishedDate *time.Time
	AuthorID      *int64
}

type BookResponse struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	PublishedDate string         `json:"published_date"`
	AuthorID      int64          `json:"author_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Author        *AuthorSummary `json:"author,omitempty"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		PublishedDate: b.PublishedDate.Format(validation.DateLayout),
		AuthorID:      b.AuthorID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		Author:        b.Author,
	}
}

func ToResponses(books []Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = books[i].ToResponse()
	}
	return out
}

// BookWithAuthor - GET /api/books/:id/author
type BookWithAuthor struct {
	BookResponse
	Author author.AuthorResponse `json:"author"`
}

// BookPage is a page of books with its pagination metadata.
type BookPage struct {
	Data       []BookResponse `json:"data"`
	Pagination listing.Meta   `json:"pagination"`
}

// AuthorWithBooks - GET /api/authors/:id/books
type AuthorWithBooks struct {
	Author author.AuthorResponse `json:"author"`
	Books  BookPage              `json:"books"`
}
