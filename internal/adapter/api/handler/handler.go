package handler

import (
	"trustlens/internal/usecase"
)

var (
	authHandler        *AuthHandler
	institutionHandler *InstitutionHandler
	reviewHandler      *ReviewHandler
	healthHandler      *HealthHandler
)

func Setup(
	sessionUseCase *usecase.SessionUseCase,
	institutionUseCase *usecase.InstitutionUseCase,
	reviewUseCase *usecase.ReviewUseCase,
) {
	authHandler = NewAuthHandler(sessionUseCase)
	institutionHandler = NewInstitutionHandler(institutionUseCase, reviewUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	healthHandler = NewHealthHandler(institutionUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetInstitutionHandler() *InstitutionHandler {
	return institutionHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
