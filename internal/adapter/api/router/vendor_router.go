package router

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/handler"
	"verslohub/internal/adapter/api/middleware"
)

func SetupVendorRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	vendorHandler := handler.GetVendorHandler()

	vendorGroup := e.Group("/v1/vendors")
	vendorGroup.Use(authMiddleware.Authenticate)

	// Catalog
	vendorGroup.GET("", vendorHandler.ListVendors)
	vendorGroup.GET("/:id", vendorHandler.GetVendor)

	// Management
	vendorGroup.POST("", vendorHandler.CreateVendor)
	vendorGroup.PUT("/:id", vendorHandler.UpdateVendor)
	vendorGroup.POST("/:id/logo", vendorHandler.UploadLogo)
	vendorGroup.POST("/:id/photos", vendorHandler.UploadPhoto)

	myGroup := e.Group("/v1/my-vendors")
	myGroup.Use(authMiddleware.Authenticate)
	myGroup.GET("", vendorHandler.ListMyVendors)
}
