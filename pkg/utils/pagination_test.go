package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(echo.GET, "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return GetPaginationParams(c)
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  PaginationParams
	}{
		{"defaults", "", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"explicit window", "page=3&limit=10", PaginationParams{Page: 3, Limit: 10, Offset: 20}},
		{"limit capped", "page=1&limit=500", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"negative values fall back", "page=-1&limit=-5", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"garbage falls back", "page=x&limit=y", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paramsFor(t, tt.query))
		})
	}
}
