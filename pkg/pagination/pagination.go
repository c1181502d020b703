package pagination

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/JaimeStill/lexicon/pkg/validation"
)

// PageRequest represents a client request for a page of data.
// Nil fields take the configured defaults; explicit values outside the
// allowed range are rejected rather than clamped.
type PageRequest struct {
	Page  *int `json:"page,omitempty"`
	Limit *int `json:"limit,omitempty"`
}

// Page is a resolved, validated page position.
type Page struct {
	Number int
	Size   int
}

// Offset calculates the number of records to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Resolve applies defaults from cfg and validates the requested bounds.
// Failures are reported as validation.Errors keyed by "page" and "limit".
func (r PageRequest) Resolve(cfg Config) (Page, error) {
	page := Page{Number: 1, Size: cfg.DefaultPageSize}
	errs := validation.Errors{}

	if r.Page != nil {
		switch {
		case *r.Page < 1:
			errs.Add("page", "Page must be at least 1")
		case cfg.MaxPageSize > 0 && *r.Page > math.MaxInt/cfg.MaxPageSize:
			errs.Add("page", "Page is too large")
		}
		page.Number = *r.Page
	}

	if r.Limit != nil {
		if *r.Limit < 1 || *r.Limit > cfg.MaxPageSize {
			errs.Add("limit", fmt.Sprintf("Limit must be between 1 and %d", cfg.MaxPageSize))
		}
		page.Size = *r.Limit
	}

	if err := errs.Err(); err != nil {
		return Page{}, err
	}
	return page, nil
}

// PageRequestFromQuery parses the page and limit query parameters.
// Empty parameters are left unset; non-integer values are validation failures.
func PageRequestFromQuery(values url.Values) (PageRequest, error) {
	var req PageRequest
	errs := validation.Errors{}

	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("page", "Page must be an integer")
		} else {
			req.Page = &n
		}
	}

	if v := values.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("limit", "Limit must be an integer")
		} else {
			req.Limit = &n
		}
	}

	return req, errs.Err()
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
// Data is never nil so an empty page encodes as [].
func NewPageResult[T any](data []T, total int, page Page) PageResult[T] {
	totalPages := 1
	if page.Size > 0 {
		totalPages = total / page.Size
		if total%page.Size != 0 {
			totalPages++
		}
	}
	if totalPages < 1 {
		totalPages = 1
	}

	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Size,
		TotalPages: totalPages,
	}
}
