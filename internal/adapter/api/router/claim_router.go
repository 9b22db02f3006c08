package router

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/handler"
	"verslohub/internal/adapter/api/middleware"
)

func SetupClaimRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	claimHandler := handler.GetClaimHandler()

	claimGroup := e.Group("/v1/claims")
	claimGroup.Use(authMiddleware.Authenticate)

	claimGroup.POST("", claimHandler.SubmitClaim)
	claimGroup.GET("", claimHandler.ListMyClaims)
}
