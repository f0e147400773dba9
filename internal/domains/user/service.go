package user

import "context"

// Service định nghĩa business logic layer contract
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// Profile of the authenticated user
	GetProfile(ctx context.Context, userID int64) (*User, error)
}
