package handler

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/usecase"
	"verslohub/pkg/errors"
	"verslohub/pkg/response"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) ToggleFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)
	vendorID := c.Param("vendorId")

	if vendorID == "" {
		return response.Error(c, errors.BadRequest("Vendor ID is required", nil))
	}

	isFavorite, err := h.favoriteUseCase.Toggle(c.Request().Context(), userID, vendorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"vendor_id":   vendorID,
		"is_favorite": isFavorite,
	})
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)
	vendorID := c.Param("vendorId")

	if vendorID == "" {
		return response.Error(c, errors.BadRequest("Vendor ID is required", nil))
	}

	if err := h.favoriteUseCase.Remove(c.Request().Context(), userID, vendorID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Favorite removed successfully",
	})
}

func (h *FavoriteHandler) CheckFavoriteStatus(c echo.Context) error {
	userID := c.Get("uid").(string)
	vendorID := c.Param("vendorId")

	if vendorID == "" {
		return response.Error(c, errors.BadRequest("Vendor ID is required", nil))
	}

	isFavorite, err := h.favoriteUseCase.IsFavorite(c.Request().Context(), userID, vendorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"vendor_id":   vendorID,
		"is_favorite": isFavorite,
	})
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	userID := c.Get("uid").(string)

	vendors, err := h.favoriteUseCase.ListVendors(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendors)
}
