package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"trustlens/internal/usecase"
)

type AuthMiddleware struct {
	sessions *usecase.SessionUseCase
}

func NewAuthMiddleware(sessions *usecase.SessionUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
	}
}

// Authenticate resolves the caller's wallet address from the bearer
// session token and stores it in the request context. A missing or
// invalid token means no connection is available to sign operations.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		address, err := m.sessions.VerifySession(parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session")
		}

		c.Set("address", address)

		return next(c)
	}
}
