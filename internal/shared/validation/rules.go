package validation

import (
	"errors"
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the accepted wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date accepts YYYY-MM-DD or a full RFC 3339 timestamp.
var Date = ozzo.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		if p, isPtr := value.(*string); isPtr && p != nil {
			s = *p
		} else {
			return nil
		}
	}
	if s == "" {
		return nil
	}
	if _, err := ParseDate(s); err != nil {
		return errors.New("must be a valid date (YYYY-MM-DD)")
	}
	return nil
})

// ParseDate parses YYYY-MM-DD or RFC 3339 and truncates to the UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// NotBlank rejects strings made only of whitespace. Empty values are left to Required/NilOrNotEmpty.
var NotBlank = ozzo.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		p, isPtr := value.(*string)
		if !isPtr || p == nil {
			return nil
		}
		s = *p
	}
	if s != "" && strings.TrimSpace(s) == "" {
		return ozzo.ErrRequired
	}
	return nil
})

// TrimPtr returns a pointer to the trimmed copy; nil stays nil.
func TrimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}
