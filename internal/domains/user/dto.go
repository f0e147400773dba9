package user

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	sharedvalidation "bookstore-api/internal/shared/validation"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 72 // bcrypt ignores anything longer
	MaxUsernameLength = 100
	MaxEmailLength    = 255
)

// RegisterRequest - POST /api/users/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional, defaults to "user"
}

// Validate checks the values Normalize will store, so padding never counts toward length.
func (r RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)

	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, sharedvalidation.NotBlank, validation.RuneLength(1, MaxUsernameLength)),
		validation.Field(&r.Email, validation.Required, validation.RuneLength(3, MaxEmailLength), is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(MinPasswordLength, MaxPasswordLength)),
		validation.Field(&r.Role, validation.By(validRole)),
	)
}

// validRole accepts an empty role (defaulted later) or one of AllRoles.
func validRole(value interface{}) error {
	s, _ := value.(string)
	if s == "" || Role(s).IsValid() {
		return nil
	}
	names := make([]string, 0, len(AllRoles()))
	for _, role := range AllRoles() {
		names = append(names, role.String())
	}
	return validation.NewError("validation_role_invalid", "must be one of: "+strings.Join(names, ", "))
}

// Normalize trims the identity fields and applies the default role.
func (r RegisterRequest) Normalize() RegisterRequest {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = NormalizeEmail(r.Email)
	if r.Role == "" {
		r.Role = string(RoleUser)
	}
	return r
}

// LoginRequest - POST /api/users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// NormalizeEmail lower-cases and trims, so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
