package common

import (
	"net/http"
	"strconv"
)

// Pagination is the metadata block of list responses.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPagination fills TotalPages from total and perPage.
func NewPagination(page, perPage int, total int64) Pagination {
	p := Pagination{Page: page, PerPage: perPage, TotalItems: int(total)}
	if perPage > 0 {
		p.TotalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return p
}

// ParsePagination reads ?page= and ?limit= (or ?per_page=). Non-positive or
// malformed values fall back to page 1 and defaultPerPage; perPage is capped
// at maxPerPage when maxPerPage > 0.
func ParsePagination(r *http.Request, defaultPerPage, maxPerPage int) (page, perPage int) {
	q := r.URL.Query()
	page = positiveInt(q.Get("page"), 1)
	limit := q.Get("limit")
	if limit == "" {
		limit = q.Get("per_page")
	}
	perPage = positiveInt(limit, defaultPerPage)
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// Offset returns the row offset of page.
func Offset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
