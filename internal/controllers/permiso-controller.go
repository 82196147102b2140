package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/services"
	"gestion-system/pkg/utils"
)

type PermisoController struct {
	permisoService services.PermisoServiceInterface
	logger         *zap.Logger
}

func NewPermisoController(permisoService services.PermisoServiceInterface, logger *zap.Logger) *PermisoController {
	return &PermisoController{permisoService: permisoService, logger: logger}
}

func (c *PermisoController) GetPermisos(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	permisos, total, err := c.permisoService.GetPermisos(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, permisos, "Permisos obtenidos", http.StatusOK, total)
}

func (c *PermisoController) FindPermiso(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	permiso, err := c.permisoService.FindPermiso(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, permiso, "Permiso obtenido", http.StatusOK)
}

func (c *PermisoController) CreatePermiso(ctx echo.Context) error {
	var payload dto.CreatePermisoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	permiso, err := c.permisoService.CreatePermiso(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, permiso, "Permiso creado", http.StatusCreated)
}

func (c *PermisoController) UpdatePermiso(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdatePermisoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	permiso, err := c.permisoService.UpdatePermiso(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, permiso, "Permiso actualizado", http.StatusOK)
}

func (c *PermisoController) DeletePermiso(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.permisoService.DeletePermiso(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Permiso eliminado", http.StatusOK)
}

func (c *PermisoController) GetRolesConPermisos(ctx echo.Context) error {
	asignaciones, err := c.permisoService.GetRolesConPermisos(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asignaciones, "Asignaciones obtenidas", http.StatusOK)
}

func (c *PermisoController) AssignPermisos(ctx echo.Context) error {
	var payload dto.AssignPermisosDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.permisoService.AssignPermisos(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Permisos asignados al rol", http.StatusOK)
}
