package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PaginationParams is the page window a listing request asked for via the
// ?page and ?limit query parameters.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// GetPaginationParams reads the page window from the query string. Page
// falls back to 1; limit falls back to 20 and is capped at 100 so one
// request can never drag the whole ledger across the wire.
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
