package routes

import (
	"github.com/labstack/echo/v4"

	"gestion-system/internal/controllers"
	"gestion-system/pkg/middleware"
)

func runCatalogoRouter(secureGroup *echo.Group, catalogoCtrl *controllers.CatalogoController, authMW *middleware.AuthMiddleware) {
	ver := authMW.RequirePermission("catalogos:ver")
	gestionar := authMW.RequirePermission("catalogos:gestionar")

	productos := secureGroup.Group("/cp-productos")
	{
		productos.GET("", catalogoCtrl.GetProductos, ver)
		productos.GET("/:id", catalogoCtrl.FindProducto, ver)
		productos.POST("", catalogoCtrl.CreateProducto, gestionar)
		productos.PUT("/:id", catalogoCtrl.UpdateProducto, gestionar)
		productos.DELETE("/:id", catalogoCtrl.DeleteProducto, gestionar)
	}

	productosServicios := secureGroup.Group("/cp-productos-servicios")
	{
		productosServicios.GET("", catalogoCtrl.GetProductosServicios, ver)
		productosServicios.GET("/:id", catalogoCtrl.FindProductoServicio, ver)
		productosServicios.POST("", catalogoCtrl.CreateProductoServicio, gestionar)
		productosServicios.PUT("/:id", catalogoCtrl.UpdateProductoServicio, gestionar)
		productosServicios.DELETE("/:id", catalogoCtrl.DeleteProductoServicio, gestionar)
	}

	tipos := secureGroup.Group("/cp-tipos-solicitud")
	{
		tipos.GET("", catalogoCtrl.GetTiposSolicitud, ver)
		tipos.GET("/:id", catalogoCtrl.FindTipoSolicitud, ver)
		tipos.POST("", catalogoCtrl.CreateTipoSolicitud, gestionar)
		tipos.PUT("/:id", catalogoCtrl.UpdateTipoSolicitud, gestionar)
		tipos.DELETE("/:id", catalogoCtrl.DeleteTipoSolicitud, gestionar)
	}
}
