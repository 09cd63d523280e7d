package router

import (
	"trustlens/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	SetupAuthRouter(e, rateLimitMiddleware)
	SetupInstitutionRouter(e, authMiddleware, rateLimitMiddleware)
	SetupReviewRouter(e, authMiddleware, rateLimitMiddleware)
	SetupHealthRouter(e)
}
