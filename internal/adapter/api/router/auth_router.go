package router

import (
	"trustlens/internal/adapter/api/handler"
	"trustlens/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	authHandler := handler.GetAuthHandler()

	e.POST("/v1/auth/session", authHandler.CreateSession, rateLimitMiddleware.Limit("create_session"))
}
