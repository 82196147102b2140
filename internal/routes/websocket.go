package routes

import (
	"github.com/labstack/echo/v4"

	"gestion-system/internal/controllers"
)

// El handshake de websocket autentica por query param dentro del propio
// controlador, por eso no pasa por el middleware Auth.
func runWebSocketRouter(api *echo.Group, wsCtrl *controllers.WebSocketController) {
	api.GET("/ws", wsCtrl.ServeWs)
}
