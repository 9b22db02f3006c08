package router

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the live session endpoint. Auth happens
// inside the handler via the token query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
