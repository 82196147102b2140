package routes

import (
	"github.com/labstack/echo/v4"

	"gestion-system/internal/controllers"
	"gestion-system/pkg/middleware"
)

func runPermisoRouter(secureGroup *echo.Group, permisoCtrl *controllers.PermisoController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/permisos", permisoCtrl.GetPermisos, authMW.RequirePermission("permisos:ver"))
	secureGroup.GET("/permisos/roles-assignments/list", permisoCtrl.GetRolesConPermisos, authMW.RequirePermission("permisos:ver"))
	secureGroup.GET("/permisos/:id", permisoCtrl.FindPermiso, authMW.RequirePermission("permisos:ver"))
	secureGroup.POST("/permisos", permisoCtrl.CreatePermiso, authMW.RequirePermission("permisos:gestionar"))
	secureGroup.PUT("/permisos/:id", permisoCtrl.UpdatePermiso, authMW.RequirePermission("permisos:gestionar"))
	secureGroup.DELETE("/permisos/:id", permisoCtrl.DeletePermiso, authMW.RequirePermission("permisos:gestionar"))
	secureGroup.POST("/permisos/assign", permisoCtrl.AssignPermisos, authMW.RequirePermission("permisos:gestionar"))
}
