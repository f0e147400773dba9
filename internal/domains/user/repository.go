package user

import "context"

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create inserts the user.
	// Returns: ErrEmailAlreadyExists nếu email đã tồn tại (case-insensitive)
	Create(ctx context.Context, u *User) (*User, error)

	// GetByID returns ErrUserNotFound nếu không tìm thấy
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail tìm user theo email (dùng cho login)
	// Returns: ErrUserNotFound nếu không tìm thấy
	GetByEmail(ctx context.Context, email string) (*User, error)
}
