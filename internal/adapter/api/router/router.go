package router

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupUserRouter(e, authMiddleware)
	SetupVendorRouter(e, authMiddleware)
	SetupFavoriteRouter(e, authMiddleware)
	SetupClaimRouter(e, authMiddleware)
	SetupRequestRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}
