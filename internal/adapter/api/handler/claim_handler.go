package handler

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/usecase"
	"verslohub/pkg/response"
)

type ClaimHandler struct {
	claimUseCase *usecase.ClaimUseCase
}

func NewClaimHandler(claimUseCase *usecase.ClaimUseCase) *ClaimHandler {
	return &ClaimHandler{
		claimUseCase: claimUseCase,
	}
}

type submitClaimRequest struct {
	VendorID string `json:"vendor_id" validate:"required"`
	Note     string `json:"note" validate:"max=1000"`
}

func (h *ClaimHandler) SubmitClaim(c echo.Context) error {
	var req submitClaimRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	claim, err := h.claimUseCase.Submit(c.Request().Context(), userID, req.VendorID, req.Note)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, claim)
}

func (h *ClaimHandler) ListMyClaims(c echo.Context) error {
	userID := c.Get("uid").(string)

	claims, err := h.claimUseCase.ListOwn(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claims)
}
