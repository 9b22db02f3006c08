package router

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/handler"
	"verslohub/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notificationGroup := e.Group("/v1/notifications")
	notificationGroup.Use(authMiddleware.Authenticate)

	notificationGroup.GET("", notificationHandler.ListNotifications)
	notificationGroup.PUT("/:id/read", notificationHandler.MarkRead)
}
