package handler

import (
	"github.com/labstack/echo/v4"

	"trustlens/internal/usecase"
	"trustlens/pkg/errors"
	"trustlens/pkg/response"
	"trustlens/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	institutionID, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	address := c.Get("address").(string)

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), address, institutionID, usecase.CreateReviewInput{
		Rating:  req.Rating,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.GetReviewByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

// GetInstitutionReviews returns review ids in append order, or full
// records windowed by page/limit when expand=true is passed.
func (h *ReviewHandler) GetInstitutionReviews(c echo.Context) error {
	institutionID, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if c.QueryParam("expand") == "true" {
		params := utils.GetPaginationParams(c)
		reviews, total, err := h.reviewUseCase.ListInstitutionReviews(c.Request().Context(), institutionID, params.Page, params.Limit)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Paginated(c, reviews, total, params.Page, params.Limit)
	}

	ids, err := h.reviewUseCase.ListInstitutionReviewIDs(c.Request().Context(), institutionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ids)
}

func (h *ReviewHandler) GetUserReviews(c echo.Context) error {
	address := c.Param("address")
	if !usecase.ValidAddress(address) {
		return response.Error(c, errors.BadRequest("Invalid wallet address", nil))
	}

	ids, err := h.reviewUseCase.ListReviewerReviewIDs(c.Request().Context(), address)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ids)
}
