package routes

import (
	"github.com/labstack/echo/v4"

	"gestion-system/internal/controllers"
	"gestion-system/pkg/middleware"
)

func runPedidoRouter(secureGroup *echo.Group, pedidoCtrl *controllers.PedidoController, authMW *middleware.AuthMiddleware) {
	pedidos := secureGroup.Group("/cp-pedidos")
	{
		pedidos.GET("", pedidoCtrl.GetPedidos, authMW.RequirePermission("pedidos:ver"))
		pedidos.POST("", pedidoCtrl.CreatePedido, authMW.RequirePermission("pedidos:crear"))
		pedidos.POST("/exportar-consolidado", pedidoCtrl.ExportarConsolidado, authMW.RequirePermission("pedidos:exportar"))
		pedidos.GET("/:id", pedidoCtrl.FindPedido, authMW.RequirePermission("pedidos:ver"))
		pedidos.PUT("/:id", pedidoCtrl.UpdatePedido, authMW.RequirePermission("pedidos:actualizar"))
		pedidos.DELETE("/:id", pedidoCtrl.DeletePedido, authMW.RequirePermission("pedidos:eliminar"))

		pedidos.POST("/:id/aprobar-compras", pedidoCtrl.AprobarCompras, authMW.RequirePermission("pedidos:aprobar_compras"))
		pedidos.POST("/:id/rechazar-compras", pedidoCtrl.RechazarCompras, authMW.RequirePermission("pedidos:aprobar_compras"))
		pedidos.POST("/:id/aprobar-gerencia", pedidoCtrl.AprobarGerencia, authMW.RequirePermission("pedidos:aprobar_gerencia"))
		pedidos.POST("/:id/rechazar-gerencia", pedidoCtrl.RechazarGerencia, authMW.RequirePermission("pedidos:aprobar_gerencia"))

		pedidos.POST("/:id/update-items", pedidoCtrl.UpdateItems, authMW.RequirePermission("pedidos:marcar_items"))
		pedidos.PATCH("/:id/tracking", pedidoCtrl.UpdateSeguimiento, authMW.RequirePermission("pedidos:seguimiento"))
		pedidos.GET("/:id/exportar-excel", pedidoCtrl.ExportarExcel, authMW.RequirePermission("pedidos:exportar"))
	}
}
