package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	sharedvalidation "bookstore-api/internal/shared/validation"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 10000
)

// CreateBookRequest - POST /api/books
type CreateBookRequest struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	PublishedDate string  `json:"published_date"`
	AuthorID      int64   `json:"author_id"`
}

// Validate checks the trimmed title, the value ToBook stores.
func (r CreateBookRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, sharedvalidation.NotBlank, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&r.PublishedDate, validation.Required, sharedvalidation.Date),
		validation.Field(&r.AuthorID, validation.Required, validation.Min(int64(1))),
	)
}

// ToBook builds the entity; absent description becomes "".
func (r CreateBookRequest) ToBook() (*Book, error) {
	published, err := sharedvalidation.ParseDate(r.PublishedDate)
	if err != nil {
		return nil, sharedvalidation.Field("published_date", "must be a valid date (YYYY-MM-DD)")
	}

	b := &Book{
		Title:         strings.TrimSpace(r.Title),
		PublishedDate: published,
		AuthorID:      r.AuthorID,
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	return b, nil
}

// UpdateBookRequest - PUT /api/books/:id
type UpdateBookRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	PublishedDate *string `json:"published_date"`
	AuthorID      *int64  `json:"author_id"`
}

func (r UpdateBookRequest) Validate() error {
	r.Title = sharedvalidation.TrimPtr(r.Title)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, sharedvalidation.NotBlank, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&r.PublishedDate, validation.NilOrNotEmpty, sharedvalidation.Date),
		validation.Field(&r.AuthorID, validation.NilOrNotEmpty, validation.Min(int64(1))),
	)
}

func (r UpdateBookRequest) ToPatch() (Patch, error) {
	p := Patch{Title: sharedvalidation.TrimPtr(r.Title), Description: r.Description, AuthorID: r.AuthorID}
	if r.PublishedDate != nil {
		d, err := sharedvalidation.ParseDate(*r.PublishedDate)
		if err != nil {
			return Patch{}, sharedvalidation.Field("published_date", "must be a valid date (YYYY-MM-DD)")
		}
		p.PublishedDate = &d
	}
	return p, nil
}
