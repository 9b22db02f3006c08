package router

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/handler"
	"verslohub/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()

	favoriteGroup := e.Group("/v1/favorites")
	favoriteGroup.Use(authMiddleware.Authenticate)

	favoriteGroup.POST("/:vendorId", favoriteHandler.ToggleFavorite)
	favoriteGroup.DELETE("/:vendorId", favoriteHandler.RemoveFavorite)
	favoriteGroup.GET("/:vendorId/status", favoriteHandler.CheckFavoriteStatus)
	favoriteGroup.GET("", favoriteHandler.ListFavorites)
}
