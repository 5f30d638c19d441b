package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// MaxLimit caps any page size, configured or requested
const MaxLimit = 100

// Pager clamps page requests against a configured default page size
type Pager struct {
	defaultLimit int
}

// NewPager creates a pager; sizes outside 1..MaxLimit fall back to 20
func NewPager(defaultLimit int) Pager {
	if defaultLimit < 1 || defaultLimit > MaxLimit {
		defaultLimit = 20
	}
	return Pager{defaultLimit: defaultLimit}
}

// DefaultLimit returns the page size used when none is requested
func (p Pager) DefaultLimit() int {
	return p.defaultLimit
}

// Params is a clamped page request
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// FromQuery reads ?page= and ?limit= from the request
func (p Pager) FromQuery(c *fiber.Ctx) Params {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return p.Params(page, limit)
}

// Params clamps page and limit and computes the offset
func (p Pager) Params(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = p.defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// Meta describes where a page sits in the full result
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Page is one page of items with its metadata
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NewPage builds a page of items out of total
func NewPage[T any](items []T, params Params, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return &Page[T]{
		Data: items,
		Meta: Meta{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: pages,
			HasNext:    params.Page < pages,
			HasPrev:    params.Page > 1,
		},
	}
}
