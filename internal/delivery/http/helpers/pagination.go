package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"conferencehub/internal/domain"
)

// Event listing page defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. Missing
// values take the defaults and page_size is capped at MaxPageSize. Values
// that are not positive integers are returned as messages for a 400.
func ParsePagination(r *http.Request) (domain.PaginationParams, []string) {
	params := domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}
	var errs []string
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"page", &params.Page},
		{"page_size", &params.PageSize},
	} {
		s := r.URL.Query().Get(p.name)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			errs = append(errs, fmt.Sprintf("%s must be a positive integer", p.name))
			continue
		}
		*p.dst = v
	}
	params.PageSize = min(params.PageSize, MaxPageSize)
	return params, errs
}

// PaginationMeta is the pagination block of the event listing.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPaginationMeta(params domain.PaginationParams, total int) PaginationMeta {
	return PaginationMeta{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: params.TotalPages(total),
	}
}
