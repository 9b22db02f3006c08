package router

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/handler"
	"verslohub/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	adminGroup := e.Group("/v1/admin")
	adminGroup.Use(authMiddleware.Authenticate)
	adminGroup.Use(adminMiddleware.AdminOnly)

	adminGroup.PUT("/claims/:id/review", adminHandler.ReviewClaim)
}
