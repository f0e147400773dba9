package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bookstore-api/internal/domains/user"
	"bookstore-api/pkg/password"
)

// TokenIssuer is satisfied by *jwt.Manager.
type TokenIssuer interface {
	GenerateToken(userID int64, email, role string) (string, error)
	Expiry() time.Duration
}

// userService implement user.Service interface
type userService struct {
	repo   user.Repository
	hasher password.Hasher
	tokens TokenIssuer
	now    func() time.Time

	// dummyHash is compared against on unknown emails so both login failures cost the same.
	dummyOnce sync.Once
	dummyHash string
}

// NewUserService tạo service instance
func NewUserService(repo user.Repository, hasher password.Hasher, tokens TokenIssuer) user.Service {
	return &userService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register tạo user mới và trả về token
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalize()

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.Role(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	return s.issue(created)
}

// Login xác thực user. Unknown email and wrong password return the same error.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.hasher.Verify(req.Password, s.fallbackHash())
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, u.PasswordHash) {
		return nil, user.ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*user.User, error) {
	if userID <= 0 {
		return nil, user.ErrUserNotFound
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *userService) issue(u *user.User) (*user.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &user.AuthResponse{
		User:      u.ToResponse(),
		Token:     token,
		ExpiresIn: int64(s.tokens.Expiry().Seconds()),
	}, nil
}

func (s *userService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("bookstore-login-placeholder")
	})
	return s.dummyHash
}
