package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookstore-api/internal/domains/author"
	"bookstore-api/internal/shared/listing"
	"bookstore-api/internal/shared/validation"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*author.Author), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*author.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*author.Author), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, params listing.Params) (listing.Page[author.Author], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(listing.Page[author.Author]), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id int64, patch author.Patch, now time.Time) (*author.Author, error) {
	args := m.Called(ctx, id, patch, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*author.Author), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var fixedNow = time.Date(2024, 2, 29, 8, 30, 0, 0, time.UTC)

func setupService() (*authorService, *mockRepository) {
	repo := new(mockRepository)
	svc := NewAuthorService(repo).(*authorService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestCreate_DefaultsAndTimestamps(t *testing.T) {
	svc, repo := setupService()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *author.Author) bool {
		return a.Name == "Ted Chiang" &&
			a.Bio == "" &&
			a.Birthdate.Equal(time.Date(1967, 10, 20, 0, 0, 0, 0, time.UTC)) &&
			a.CreatedAt.Equal(fixedNow) &&
			a.UpdatedAt.Equal(fixedNow)
	})).Return(&author.Author{ID: 1, Name: "Ted Chiang", CreatedAt: fixedNow, UpdatedAt: fixedNow}, nil)

	got, err := svc.Create(context.Background(), author.CreateAuthorRequest{Name: "  Ted Chiang ", Birthdate: "1967-10-20"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	repo.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		req    author.CreateAuthorRequest
		fields []string
	}{
		{name: "missing everything", req: author.CreateAuthorRequest{}, fields: []string{"birthdate", "name"}},
		{name: "blank name", req: author.CreateAuthorRequest{Name: "   ", Birthdate: "2000-01-01"}, fields: []string{"name"}},
		{name: "bad date", req: author.CreateAuthorRequest{Name: "A", Birthdate: "01/02/2000"}, fields: []string{"birthdate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setupService()

			_, err := svc.Create(context.Background(), tt.req)

			details, ok := validation.Collect(err)
			require.True(t, ok, "expected validation error, got %v", err)
			var fields []string
			for _, d := range details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.fields, fields)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestList_NormalizesParamsAndBuildsMeta(t *testing.T) {
	svc, repo := setupService()

	repo.On("List", mock.Anything, listing.Params{Page: 1, Limit: 10, Search: "x"}).
		Return(listing.Page[author.Author]{Data: []author.Author{{ID: 1}}, Total: 21}, nil)

	data, meta, err := svc.List(context.Background(), listing.Params{Page: 0, Limit: -1, Search: " x "})

	require.NoError(t, err)
	assert.Len(t, data, 1)
	assert.Equal(t, listing.Meta{Page: 1, Limit: 10, Total: 21, TotalPages: 3}, meta)
}

func TestList_OutOfRangePage(t *testing.T) {
	svc, repo := setupService()

	repo.On("List", mock.Anything, listing.Params{Page: 9, Limit: 10}).
		Return(listing.Page[author.Author]{Data: []author.Author{}, Total: 15}, nil)

	data, meta, err := svc.List(context.Background(), listing.Params{Page: 9, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, int64(15), meta.Total)
}

func TestUpdate_PassesOnlySuppliedFields(t *testing.T) {
	svc, repo := setupService()

	expected := author.Patch{Bio: strPtr("new bio")}
	repo.On("Update", mock.Anything, int64(3), expected, fixedNow).
		Return(&author.Author{ID: 3, Bio: "new bio"}, nil)

	got, err := svc.Update(context.Background(), 3, author.UpdateAuthorRequest{Bio: strPtr("new bio")})

	require.NoError(t, err)
	assert.Equal(t, "new bio", got.Bio)
	repo.AssertExpectations(t)
}

func TestUpdate_ParsesBirthdate(t *testing.T) {
	svc, repo := setupService()

	repo.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(p author.Patch) bool {
		return p.Name == nil && p.Birthdate != nil && p.Birthdate.Year() == 1990
	}), fixedNow).Return(&author.Author{ID: 3}, nil)

	_, err := svc.Update(context.Background(), 3, author.UpdateAuthorRequest{Birthdate: strPtr("1990-05-05")})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_RejectsEmptyName(t *testing.T) {
	svc, repo := setupService()

	_, err := svc.Update(context.Background(), 3, author.UpdateAuthorRequest{Name: strPtr("")})

	_, ok := validation.Collect(err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, repo := setupService()

	repo.On("Update", mock.Anything, int64(8), author.Patch{}, fixedNow).Return(nil, author.ErrAuthorNotFound)

	_, err := svc.Update(context.Background(), 8, author.UpdateAuthorRequest{})

	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestGetByID(t *testing.T) {
	svc, repo := setupService()

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, errors.New("db down"))
	_, err = svc.GetByID(context.Background(), 2)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo := setupService()
	repo.On("Delete", mock.Anything, int64(5)).Return(true, nil)
	repo.On("Delete", mock.Anything, int64(6)).Return(false, nil)

	removed, err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(context.Background(), 6)
	require.NoError(t, err)
	assert.False(t, removed)
}
