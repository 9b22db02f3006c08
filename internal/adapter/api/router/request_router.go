package router

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/handler"
	"verslohub/internal/adapter/api/middleware"
)

func SetupRequestRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	requestHandler := handler.GetRequestHandler()

	requestGroup := e.Group("/v1/requests")
	requestGroup.Use(authMiddleware.Authenticate)

	requestGroup.POST("", requestHandler.SubmitRequest)
	requestGroup.GET("", requestHandler.ListMyRequests)
	requestGroup.GET("/:id", requestHandler.GetRequest)

	// Lifecycle transitions
	requestGroup.POST("/:id/respond", requestHandler.Respond)
	requestGroup.POST("/:id/complete", requestHandler.MarkCompleted)
	requestGroup.POST("/:id/reject", requestHandler.RejectRequest)

	// Thread
	requestGroup.GET("/:id/messages", requestHandler.ListMessages)
	requestGroup.POST("/:id/messages", requestHandler.SendMessage)

	// Operator-scoped inbox
	vendorGroup := e.Group("/v1/vendor/requests")
	vendorGroup.Use(authMiddleware.Authenticate)

	vendorGroup.GET("", requestHandler.ListInbox)
	vendorGroup.POST("/repair", requestHandler.RepairInbox)
}
