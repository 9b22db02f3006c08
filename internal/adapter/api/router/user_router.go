package router

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/handler"
	"verslohub/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	userGroup := e.Group("/v1/auth")
	userGroup.Use(authMiddleware.Authenticate)

	userGroup.GET("/me", userHandler.GetProfile)
}
