package routes

import (
	"github.com/labstack/echo/v4"

	"gestion-system/internal/controllers"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authCtrl *controllers.AuthController) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/forgot-password", authCtrl.ForgotPassword)
		authGroup.POST("/verify-code", authCtrl.VerifyCode)
		authGroup.POST("/reset-password", authCtrl.ResetPassword)
	}

	secureGroup.POST("/auth/me", authCtrl.Me)
	secureGroup.POST("/auth/logout", authCtrl.Logout)
}
