package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values pass through", 3, 50, 3, 50},
		{"zero page defaults", 0, 20, DefaultPage, 20},
		{"negative page defaults", -5, 20, DefaultPage, 20},
		{"zero page size defaults", 1, 0, 1, DefaultPageSize},
		{"oversized page size is capped", 1, 5000, 1, MaxPageSize},
		{"max page size is allowed", 1, MaxPageSize, 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/tickets?"+query, nil)
		return c
	}

	t.Run("reads page and page_size", func(t *testing.T) {
		page, pageSize := ParsePagination(newContext("page=2&page_size=10"))
		assert.Equal(t, 2, page)
		assert.Equal(t, 10, pageSize)
	})

	t.Run("missing parameters use defaults", func(t *testing.T) {
		page, pageSize := ParsePagination(newContext(""))
		assert.Equal(t, DefaultPage, page)
		assert.Equal(t, DefaultPageSize, pageSize)
	})

	t.Run("garbage values use defaults", func(t *testing.T) {
		page, pageSize := ParsePagination(newContext("page=abc&page_size=-1"))
		assert.Equal(t, DefaultPage, page)
		assert.Equal(t, DefaultPageSize, pageSize)
	})

	t.Run("oversized page_size is capped", func(t *testing.T) {
		_, pageSize := ParsePagination(newContext("page_size=9999"))
		assert.Equal(t, MaxPageSize, pageSize)
	})
}
