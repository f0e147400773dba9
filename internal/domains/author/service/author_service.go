package service

import (
	"context"
	"time"

	"bookstore-api/internal/domains/author"
	"bookstore-api/internal/shared/listing"
)

// authorService implements author.Service interface
type authorService struct {
	repo author.Repository
	now  func() time.Time
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *authorService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := req.ToAuthor()
	if err != nil {
		return nil, err
	}

	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now

	return s.repo.Create(ctx, a)
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	if id <= 0 {
		return nil, author.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, params listing.Params) ([]author.Author, listing.Meta, error) {
	params = params.Normalize()

	page, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	return page.Data, listing.NewMeta(params, page.Total), nil
}

func (s *authorService) Update(ctx context.Context, id int64, req author.UpdateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	patch, err := req.ToPatch()
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, patch, s.now())
}

func (s *authorService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
