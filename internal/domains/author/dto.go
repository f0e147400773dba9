package author

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	sharedvalidation "bookstore-api/internal/shared/validation"
)

const (
	MaxNameLength = 255
	MaxBioLength  = 5000
)

// CreateAuthorRequest - POST /api/authors
type CreateAuthorRequest struct {
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	Birthdate string  `json:"birthdate"`
}

// Validate checks the trimmed name, the value ToAuthor stores.
func (r CreateAuthorRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, sharedvalidation.NotBlank, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Bio, validation.RuneLength(0, MaxBioLength)),
		validation.Field(&r.Birthdate, validation.Required, sharedvalidation.Date),
	)
}

// ToAuthor builds the entity; absent bio becomes "".
func (r CreateAuthorRequest) ToAuthor() (*Author, error) {
	birthdate, err := sharedvalidation.ParseDate(r.Birthdate)
	if err != nil {
		return nil, sharedvalidation.Field("birthdate", "must be a valid date (YYYY-MM-DD)")
	}

	a := &Author{
		Name:      strings.TrimSpace(r.Name),
		Birthdate: birthdate,
	}
	if r.Bio != nil {
		a.Bio = *r.Bio
	}
	return a, nil
}

// UpdateAuthorRequest - PUT /api/authors/:id. Only supplied fields change.
type UpdateAuthorRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	Birthdate *string `json:"birthdate"`
}

func (r UpdateAuthorRequest) Validate() error {
	r.Name = sharedvalidation.TrimPtr(r.Name)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, sharedvalidation.NotBlank, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Bio, validation.RuneLength(0, MaxBioLength)),
		validation.Field(&r.Birthdate, validation.NilOrNotEmpty, sharedvalidation.Date),
	)
}

func (r UpdateAuthorRequest) ToPatch() (Patch, error) {
	var p Patch
	p.Name = sharedvalidation.TrimPtr(r.Name)
	p.Bio = r.Bio
	if r.Birthdate != nil {
		d, err := sharedvalidation.ParseDate(*r.Birthdate)
		if err != nil {
			return Patch{}, sharedvalidation.Field("birthdate", "must be a valid date (YYYY-MM-DD)")
		}
		p.Birthdate = &d
	}
	return p, nil
}
