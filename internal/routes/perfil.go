package routes

import (
	"github.com/labstack/echo/v4"

	"gestion-system/internal/controllers"
)

func runPerfilRouter(secureGroup *echo.Group, perfilCtrl *controllers.PerfilController) {
	perfilGroup := secureGroup.Group("/profile")
	{
		perfilGroup.POST("/update", perfilCtrl.UpdatePerfil)
		perfilGroup.POST("/change-password", perfilCtrl.ChangePassword)
		perfilGroup.POST("/upload-signature", perfilCtrl.UploadFirma)
		perfilGroup.POST("/upload-photo", perfilCtrl.UploadFoto)
		perfilGroup.POST("/delete-photo", perfilCtrl.DeleteFoto)
	}
}
