package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultPage is the first page number.
	DefaultPage = 1
	// DefaultPageSize is the page size applied when none is requested.
	DefaultPageSize = 20
	// MaxPageSize caps requested page sizes.
	MaxPageSize = 100
)

// ValidatePagination normalizes pagination parameters, applying
// defaults and the maximum page size cap.
func ValidatePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ParsePagination parses pagination parameters from the query string.
func ParsePagination(c *gin.Context) (int, int) {
	page := parseQueryInt(c, "page", DefaultPage)
	pageSize := parseQueryInt(c, "page_size", DefaultPageSize)
	return ValidatePagination(page, pageSize)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}
