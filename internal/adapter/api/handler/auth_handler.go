package handler

import (
	"github.com/labstack/echo/v4"

	"trustlens/internal/usecase"
	"trustlens/pkg/response"
)

type AuthHandler struct {
	sessionUseCase *usecase.SessionUseCase
}

func NewAuthHandler(sessionUseCase *usecase.SessionUseCase) *AuthHandler {
	return &AuthHandler{
		sessionUseCase: sessionUseCase,
	}
}

type createSessionRequest struct {
	Address string `json:"address" validate:"required"`
}

func (h *AuthHandler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.sessionUseCase.IssueSession(req.Address)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, session)
}
