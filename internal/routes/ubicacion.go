package routes

import (
	"github.com/labstack/echo/v4"

	"gestion-system/internal/controllers"
	"gestion-system/pkg/middleware"
)

func runUbicacionRouter(secureGroup *echo.Group, ubicacionCtrl *controllers.UbicacionController, authMW *middleware.AuthMiddleware) {
	ver := authMW.RequirePermission("ubicaciones:ver")
	gestionar := authMW.RequirePermission("ubicaciones:gestionar")

	sedes := secureGroup.Group("/sedes")
	{
		sedes.GET("", ubicacionCtrl.GetSedes, ver)
		sedes.GET("/:id", ubicacionCtrl.FindSede, ver)
		sedes.POST("", ubicacionCtrl.CreateSede, gestionar)
		sedes.PUT("/:id", ubicacionCtrl.UpdateSede, gestionar)
		sedes.DELETE("/:id", ubicacionCtrl.DeleteSede, gestionar)
	}

	areas := secureGroup.Group("/areas")
	{
		areas.GET("", ubicacionCtrl.GetAreas, ver)
		areas.GET("/:id", ubicacionCtrl.FindArea, ver)
		areas.POST("", ubicacionCtrl.CreateArea, gestionar)
		areas.PUT("/:id", ubicacionCtrl.UpdateArea, gestionar)
		areas.DELETE("/:id", ubicacionCtrl.DeleteArea, gestionar)
	}

	dependencias := secureGroup.Group("/dependencias")
	{
		dependencias.GET("", ubicacionCtrl.GetDependencias, ver)
		dependencias.GET("/:id", ubicacionCtrl.FindDependencia, ver)
		dependencias.POST("", ubicacionCtrl.CreateDependencia, gestionar)
		dependencias.PUT("/:id", ubicacionCtrl.UpdateDependencia, gestionar)
		dependencias.DELETE("/:id", ubicacionCtrl.DeleteDependencia, gestionar)
	}
}
