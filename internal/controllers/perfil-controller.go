package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/services"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/utils"
)

type PerfilController struct {
	perfilService services.PerfilServiceInterface
	logger        *zap.Logger
}

func NewPerfilController(perfilService services.PerfilServiceInterface, logger *zap.Logger) *PerfilController {
	return &PerfilController{perfilService: perfilService, logger: logger}
}

func (c *PerfilController) UpdatePerfil(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdatePerfilDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	usuario, err := c.perfilService.UpdatePerfil(ctx.Request().Context(), userID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, usuario, "Perfil actualizado", http.StatusOK)
}

func (c *PerfilController) ChangePassword(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ChangePasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.perfilService.ChangePassword(ctx.Request().Context(), userID, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Contraseña actualizada", http.StatusOK)
}

func (c *PerfilController) UploadFirma(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("firma")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Falta el archivo 'firma'"), c.logger)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	usuario, err := c.perfilService.UploadFirma(ctx.Request().Context(), userID, src, fileHeader.Filename)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, usuario, "Firma guardada", http.StatusOK)
}

func (c *PerfilController) UploadFoto(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("foto")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("Falta el archivo 'foto'"), c.logger)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	usuario, err := c.perfilService.UploadFoto(ctx.Request().Context(), userID, src, fileHeader.Filename)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, usuario, "Foto de perfil actualizada", http.StatusOK)
}

func (c *PerfilController) DeleteFoto(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.perfilService.DeleteFoto(ctx.Request().Context(), userID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Foto de perfil eliminada", http.StatusOK)
}
