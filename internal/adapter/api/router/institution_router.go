package router

import (
	"trustlens/internal/adapter/api/handler"
	"trustlens/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupInstitutionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	institutionHandler := handler.GetInstitutionHandler()

	// Public routes
	e.GET("/v1/institutions", institutionHandler.ListInstitutions)
	e.GET("/v1/institutions/:id", institutionHandler.GetInstitution)
	e.GET("/v1/institutions/:id/rating", institutionHandler.GetAverageRating)
	e.GET("/v1/stats", institutionHandler.GetStats)

	// Protected routes (require a wallet session)
	authenticated := e.Group("/v1/institutions")
	authenticated.Use(authMiddleware.Authenticate)

	authenticated.POST("", institutionHandler.CreateInstitution, rateLimitMiddleware.Limit("create_institution"))
	authenticated.PATCH("/:id/status", institutionHandler.ToggleStatus, rateLimitMiddleware.Limit("toggle_status"))
}
