package handler

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/usecase"
	"verslohub/pkg/response"
)

type AdminHandler struct {
	claimUseCase *usecase.ClaimUseCase
}

var adminHandler *AdminHandler

func NewAdminHandler(claimUseCase *usecase.ClaimUseCase) *AdminHandler {
	return &AdminHandler{
		claimUseCase: claimUseCase,
	}
}

func SetupAdminHandler(claimUseCase *usecase.ClaimUseCase) {
	adminHandler = NewAdminHandler(claimUseCase)
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

type reviewClaimRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func (h *AdminHandler) ReviewClaim(c echo.Context) error {
	var req reviewClaimRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	claimID := c.Param("id")

	if err := h.claimUseCase.Review(c.Request().Context(), claimID, req.Status); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Claim reviewed successfully",
	})
}
