package router

import (
	"trustlens/internal/adapter/api/handler"
	"trustlens/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	// Public routes
	e.GET("/v1/institutions/:id/reviews", reviewHandler.GetInstitutionReviews)
	e.GET("/v1/reviews/:id", reviewHandler.GetReview)
	e.GET("/v1/users/:address/reviews", reviewHandler.GetUserReviews)

	// Protected routes (require a wallet session)
	authenticated := e.Group("")
	authenticated.Use(authMiddleware.Authenticate)

	authenticated.POST("/v1/institutions/:id/reviews", reviewHandler.CreateReview, rateLimitMiddleware.Limit("add_review"))
}
