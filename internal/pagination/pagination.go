package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
	defaultSortBy     = "created_at"
)

// Params carries the standard listing parameters:
// ?pageNumber=&pageSize=&sortBy=&sortDirection=
type Params struct {
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection string
}

// FromQuery parses listing parameters with defaults. allowedSort guards
// the ORDER BY column: anything not in the set falls back to created_at
// so a query parameter can never reach SQL unchecked.
func FromQuery(c *gin.Context, allowedSort map[string]bool) Params {
	params := Params{
		PageNumber:    defaultPageNumber,
		PageSize:      defaultPageSize,
		SortBy:        defaultSortBy,
		SortDirection: "desc",
	}

	if n, err := strconv.Atoi(c.Query("pageNumber")); err == nil && n >= 1 {
		params.PageNumber = n
	}
	if n, err := strconv.Atoi(c.Query("pageSize")); err == nil && n >= 1 {
		params.PageSize = n
	}
	if sortBy := c.Query("sortBy"); sortBy != "" && allowedSort[sortBy] {
		params.SortBy = sortBy
	}
	if c.Query("sortDirection") == "asc" {
		params.SortDirection = "asc"
	}

	return params
}

// Order returns the ORDER BY clause for gorm.
func (p Params) Order() string {
	return p.SortBy + " " + p.SortDirection
}

// Offset returns the row offset of the requested page.
func (p Params) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// Paginator is the listing response envelope.
type Paginator[T any] struct {
	PagesCount int   `json:"pagesCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	Items      []T   `json:"items"`
}

func NewPaginator[T any](items []T, totalCount int64, params Params) Paginator[T] {
	pagesCount := int(totalCount) / params.PageSize
	if int(totalCount)%params.PageSize != 0 {
		pagesCount++
	}
	if items == nil {
		items = []T{}
	}
	return Paginator[T]{
		PagesCount: pagesCount,
		Page:       params.PageNumber,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		Items:      items,
	}
}
