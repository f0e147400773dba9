package service

import (
	"context"
	"errors"
	"time"

	"bookstore-api/internal/domains/author"
	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/domains/book/repository"
	"bookstore-api/internal/shared/listing"
)

type BookService struct {
	repo    repository.RepositoryInterface
	authors AuthorReader
	now     func() time.Time
}

func NewBookService(repo repository.RepositoryInterface, authors AuthorReader) ServiceInterface {
	return &BookService{
		repo:    repo,
		authors: authors,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *BookService) List(ctx context.Context, params listing.Params, authorID *int64) ([]model.Book, listing.Meta, error) {
	params = params.Normalize()

	page, err := s.repo.List(ctx, params, authorID)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return page.Data, listing.NewMeta(params, page.Total), nil
}

func (s *BookService) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	if id <= 0 {
		return nil, model.ErrBookNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *BookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := req.ToBook()
	if err != nil {
		return nil, err
	}

	now := s.now()
	b.CreatedAt = now
	b.UpdatedAt = now

	return s.repo.Create(ctx, b)
}

func (s *BookService) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	patch, err := req.ToPatch()
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, patch, s.now())
}

func (s *BookService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *BookService) GetWithAuthor(ctx context.Context, id int64) (*model.BookWithAuthor, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a, err := s.authors.GetByID(ctx, b.AuthorID)
	if err != nil {
		// the FK makes this unreachable unless the author was deleted between the two reads
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, model.ErrBookNotFound
		}
		return nil, err
	}

	return &model.BookWithAuthor{
		BookResponse: b.ToResponse(),
		Author:       a.ToResponse(),
	}, nil
}

func (s *BookService) GetAuthorWithBooks(ctx context.Context, authorID int64, params listing.Params) (*model.AuthorWithBooks, error) {
	a, err := s.authors.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	books, meta, err := s.List(ctx, params, &authorID)
	if err != nil {
		return nil, err
	}

	return &model.AuthorWithBooks{
		Author: a.ToResponse(),
		Books: model.BookPage{
			Data:       model.ToResponses(books),
			Pagination: meta,
		},
	}, nil
}
