package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"trustlens/internal/usecase"
)

type HealthHandler struct {
	institutionUseCase *usecase.InstitutionUseCase
}

func NewHealthHandler(institutionUseCase *usecase.InstitutionUseCase) *HealthHandler {
	return &HealthHandler{
		institutionUseCase: institutionUseCase,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckLedgerHealth(c echo.Context) error {
	if _, err := h.institutionUseCase.Count(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Ledger storage unreachable",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Ledger storage connected",
	})
}
