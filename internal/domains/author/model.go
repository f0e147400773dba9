package author

import (
	"time"

	"bookstore-api/internal/shared/validation"
)

// Author represents the core Author entity
type Author struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bio       string    `json:"bio" db:"bio"` // empty when absent, never NULL
	Birthdate time.Time `json:"birthdate" db:"birthdate"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AuthorResponse is the wire shape; birthdate is a calendar date.
type AuthorResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Birthdate string    `json:"birthdate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts Author to AuthorResponse
func (a *Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		Birthdate: a.Birthdate.Format(validation.DateLayout),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToResponses(authors []Author) []AuthorResponse {
	out := make([]AuthorResponse, len(authors))
	for i := range authors {
		out[i] = authors[i].ToResponse()
	}
	return out
}

// Patch holds the fields of a partial update; nil means unchanged.
type Patch struct {
	Name      *string
	Bio       *string
	Birthdate *time.Time
}
