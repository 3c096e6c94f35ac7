package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromQuery(t *testing.T) {
	allowed := map[string]bool{"created_at": true, "name": true}

	tests := []struct {
		name     string
		query    string
		expected Params
	}{
		{
			name:     "defaults",
			query:    "",
			expected: Params{PageNumber: 1, PageSize: 10, SortBy: "created_at", SortDirection: "desc"},
		},
		{
			name:     "explicit values",
			query:    "pageNumber=3&pageSize=25&sortBy=name&sortDirection=asc",
			expected: Params{PageNumber: 3, PageSize: 25, SortBy: "name", SortDirection: "asc"},
		},
		{
			name:     "sort column outside the allowlist falls back",
			query:    "sortBy=password_hash;--",
			expected: Params{PageNumber: 1, PageSize: 10, SortBy: "created_at", SortDirection: "desc"},
		},
		{
			name:     "garbage numbers fall back",
			query:    "pageNumber=zero&pageSize=-5",
			expected: Params{PageNumber: 1, PageSize: 10, SortBy: "created_at", SortDirection: "desc"},
		},
		{
			name:     "unknown sort direction stays desc",
			query:    "sortDirection=sideways",
			expected: Params{PageNumber: 1, PageSize: 10, SortBy: "created_at", SortDirection: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := FromQuery(queryContext(tt.query), allowed)
			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestOrderAndOffset(t *testing.T) {
	params := Params{PageNumber: 4, PageSize: 15, SortBy: "name", SortDirection: "asc"}

	assert.Equal(t, "name asc", params.Order())
	assert.Equal(t, 45, params.Offset())
}

func TestNewPaginator(t *testing.T) {
	tests := []struct {
		name               string
		totalCount         int64
		pageSize           int
		expectedPagesCount int
	}{
		{"even split", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"empty", 0, 10, 0},
		{"single item", 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Params{PageNumber: 1, PageSize: tt.pageSize}
			p := NewPaginator([]string{}, tt.totalCount, params)

			assert.Equal(t, tt.expectedPagesCount, p.PagesCount)
			assert.Equal(t, tt.totalCount, p.TotalCount)
			assert.Equal(t, tt.pageSize, p.PageSize)
		})
	}
}

func TestNewPaginatorNilItems(t *testing.T) {
	p := NewPaginator[string](nil, 0, Params{PageNumber: 1, PageSize: 10})

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
}
