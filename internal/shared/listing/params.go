package listing

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (Page-1)*Limit inside int for every allowed limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Params là pagination + search input cho mọi list endpoint
type Params struct {
	Page   int
	Limit  int
	Search string
}

// ParseParams coerces raw query values into Params.
// Missing, non-numeric or non-positive page/limit fall back to the defaults;
// limit is capped at MaxLimit and page at MaxPage.
func ParseParams(page, limit, search string) Params {
	return Params{
		Page:   parsePositive(page, DefaultPage),
		Limit:  parsePositive(limit, DefaultLimit),
		Search: search,
	}.Normalize()
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Normalize applies the same coercion to Params built in code.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Offset = (Page-1)*Limit, computed on the normalized params so it never overflows.
func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// Meta là pagination metadata trả về cho client
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewMeta(p Params, total int64) Meta {
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
}

// TotalPages = ceil(total/limit)
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
