package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"trustlens/internal/domain/entity"
	"trustlens/internal/usecase"
	"trustlens/pkg/errors"
	"trustlens/pkg/response"
)

type InstitutionHandler struct {
	institutionUseCase *usecase.InstitutionUseCase
	reviewUseCase      *usecase.ReviewUseCase
}

func NewInstitutionHandler(institutionUseCase *usecase.InstitutionUseCase, reviewUseCase *usecase.ReviewUseCase) *InstitutionHandler {
	return &InstitutionHandler{
		institutionUseCase: institutionUseCase,
		reviewUseCase:      reviewUseCase,
	}
}

type createInstitutionRequest struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Website     string `json:"website" validate:"omitempty,url"`
}

func (h *InstitutionHandler) CreateInstitution(c echo.Context) error {
	var req createInstitutionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	// Category membership is a request-layer check; the ledger stores the
	// value verbatim.
	if !entity.ValidCategory(req.Category) {
		return response.Error(c, errors.BadRequest("Unknown category", nil))
	}

	address := c.Get("address").(string)

	institution, err := h.institutionUseCase.CreateInstitution(c.Request().Context(), address, usecase.CreateInstitutionInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, institution)
}

func (h *InstitutionHandler) ListInstitutions(c echo.Context) error {
	institutions, err := h.institutionUseCase.ListInstitutions(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, institutions)
}

func (h *InstitutionHandler) GetInstitution(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	institution, err := h.institutionUseCase.GetInstitutionByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, institution)
}

func (h *InstitutionHandler) ToggleStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	address := c.Get("address").(string)

	institution, err := h.institutionUseCase.ToggleStatus(c.Request().Context(), address, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, institution)
}

func (h *InstitutionHandler) GetAverageRating(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	average, err := h.institutionUseCase.AverageRating(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"institution_id": id,
		"average_rating": average,
	})
}

func (h *InstitutionHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	institutionCount, err := h.institutionUseCase.Count(ctx)
	if err != nil {
		return response.Error(c, err)
	}

	reviewCount, err := h.reviewUseCase.Count(ctx)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"institutions": institutionCount,
		"reviews":      reviewCount,
	})
}

// parseIDParam rejects anything that is not a positive integer; id 0 is
// reserved and never assigned.
func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.BadRequest("Invalid id", err)
	}
	return id, nil
}
