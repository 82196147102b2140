package routes

import (
	"github.com/labstack/echo/v4"

	"gestion-system/internal/controllers"
	"gestion-system/pkg/middleware"
)

func runRecursosRouter(
	secureGroup *echo.Group,
	personalCtrl *controllers.PersonalController,
	inventarioCtrl *controllers.InventarioController,
	equipoCtrl *controllers.EquipoController,
	movimientoCtrl *controllers.MovimientoEquipoController,
	authMW *middleware.AuthMiddleware,
) {
	personal := secureGroup.Group("/personal")
	{
		personal.GET("", personalCtrl.GetPersonal, authMW.RequirePermission("personal:ver"))
		personal.GET("/:id", personalCtrl.FindPersonal, authMW.RequirePermission("personal:ver"))
		personal.POST("", personalCtrl.CreatePersonal, authMW.RequirePermission("personal:gestionar"))
		personal.PUT("/:id", personalCtrl.UpdatePersonal, authMW.RequirePermission("personal:gestionar"))
		personal.DELETE("/:id", personalCtrl.DeletePersonal, authMW.RequirePermission("personal:gestionar"))
	}

	inventario := secureGroup.Group("/inventario")
	{
		inventario.GET("", inventarioCtrl.GetInventario, authMW.RequirePermission("inventario:ver"))
		inventario.GET("/:id", inventarioCtrl.FindInventario, authMW.RequirePermission("inventario:ver"))
		inventario.POST("", inventarioCtrl.CreateInventario, authMW.RequirePermission("inventario:gestionar"))
		inventario.PUT("/:id", inventarioCtrl.UpdateInventario, authMW.RequirePermission("inventario:gestionar"))
		inventario.DELETE("/:id", inventarioCtrl.DeleteInventario, authMW.RequirePermission("inventario:gestionar"))
	}

	verEquipos := authMW.RequirePermission("equipos:ver")
	gestionarEquipos := authMW.RequirePermission("equipos:gestionar")

	equipos := secureGroup.Group("/pc-equipos")
	{
		equipos.GET("", equipoCtrl.GetEquipos, verEquipos)
		equipos.GET("/:id", equipoCtrl.FindEquipo, verEquipos)
		equipos.GET("/:id/caracteristicas", equipoCtrl.GetCaracteristicas, verEquipos)
		equipos.POST("", equipoCtrl.CreateEquipo, gestionarEquipos)
		equipos.PUT("/:id", equipoCtrl.UpdateEquipo, gestionarEquipos)
		equipos.DELETE("/:id", equipoCtrl.DeleteEquipo, gestionarEquipos)
	}

	caracteristicas := secureGroup.Group("/pc-caracteristicas-tecnicas")
	{
		caracteristicas.POST("", equipoCtrl.CreateCaracteristica, gestionarEquipos)
		caracteristicas.PUT("/:id", equipoCtrl.UpdateCaracteristica, gestionarEquipos)
		caracteristicas.DELETE("/:id", equipoCtrl.DeleteCaracteristica, gestionarEquipos)
	}

	entregas := secureGroup.Group("/pc-entregas")
	{
		entregas.GET("", movimientoCtrl.GetEntregas, verEquipos)
		entregas.GET("/:id", movimientoCtrl.FindEntrega, verEquipos)
		entregas.POST("", movimientoCtrl.CreateEntrega, gestionarEquipos)
		entregas.PUT("/:id", movimientoCtrl.UpdateEntrega, gestionarEquipos)
		entregas.DELETE("/:id", movimientoCtrl.DeleteEntrega, gestionarEquipos)
	}

	devueltos := secureGroup.Group("/pc-devueltos")
	{
		devueltos.GET("", movimientoCtrl.GetDevueltos, verEquipos)
		devueltos.GET("/:id", movimientoCtrl.FindDevuelto, verEquipos)
		devueltos.POST("", movimientoCtrl.CreateDevuelto, gestionarEquipos)
		devueltos.PUT("/:id", movimientoCtrl.UpdateDevuelto, gestionarEquipos)
		devueltos.DELETE("/:id", movimientoCtrl.DeleteDevuelto, gestionarEquipos)
	}
}
