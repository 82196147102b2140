package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/services"
	"gestion-system/pkg/utils"
)

// UbicacionController atiende sedes, áreas y dependencias, los tres niveles
// del selector en cascada del formulario de pedidos.
type UbicacionController struct {
	ubicacionService services.UbicacionServiceInterface
	logger           *zap.Logger
}

func NewUbicacionController(ubicacionService services.UbicacionServiceInterface, logger *zap.Logger) *UbicacionController {
	return &UbicacionController{ubicacionService: ubicacionService, logger: logger}
}

// -----------------------------------------------------------
// SEDES
// -----------------------------------------------------------

func (c *UbicacionController) GetSedes(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	sedes, total, err := c.ubicacionService.GetSedes(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, sedes, "Sedes obtenidas", http.StatusOK, total)
}

func (c *UbicacionController) FindSede(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	sede, err := c.ubicacionService.FindSede(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, sede, "Sede obtenida", http.StatusOK)
}

func (c *UbicacionController) CreateSede(ctx echo.Context) error {
	var payload dto.CreateSedeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	sede, err := c.ubicacionService.CreateSede(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, sede, "Sede creada", http.StatusCreated)
}

func (c *UbicacionController) UpdateSede(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateSedeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	sede, err := c.ubicacionService.UpdateSede(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, sede, "Sede actualizada", http.StatusOK)
}

func (c *UbicacionController) DeleteSede(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.ubicacionService.DeleteSede(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Sede eliminada", http.StatusOK)
}

// -----------------------------------------------------------
// AREAS
// -----------------------------------------------------------

func (c *UbicacionController) GetAreas(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	areas, total, err := c.ubicacionService.GetAreas(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, areas, "Áreas obtenidas", http.StatusOK, total)
}

func (c *UbicacionController) FindArea(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	area, err := c.ubicacionService.FindArea(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, area, "Área obtenida", http.StatusOK)
}

func (c *UbicacionController) CreateArea(ctx echo.Context) error {
	var payload dto.CreateAreaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	area, err := c.ubicacionService.CreateArea(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, area, "Área creada", http.StatusCreated)
}

func (c *UbicacionController) UpdateArea(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateAreaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	area, err := c.ubicacionService.UpdateArea(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, area, "Área actualizada", http.StatusOK)
}

func (c *UbicacionController) DeleteArea(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.ubicacionService.DeleteArea(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Área eliminada", http.StatusOK)
}

// -----------------------------------------------------------
// DEPENDENCIAS
// -----------------------------------------------------------

func (c *UbicacionController) GetDependencias(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	dependencias, total, err := c.ubicacionService.GetDependencias(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dependencias, "Dependencias obtenidas", http.StatusOK, total)
}

func (c *UbicacionController) FindDependencia(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	dependencia, err := c.ubicacionService.FindDependencia(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dependencia, "Dependencia obtenida", http.StatusOK)
}

func (c *UbicacionController) CreateDependencia(ctx echo.Context) error {
	var payload dto.CreateDependenciaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	dependencia, err := c.ubicacionService.CreateDependencia(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dependencia, "Dependencia creada", http.StatusCreated)
}

func (c *UbicacionController) UpdateDependencia(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateDependenciaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	dependencia, err := c.ubicacionService.UpdateDependencia(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dependencia, "Dependencia actualizada", http.StatusOK)
}

func (c *UbicacionController) DeleteDependencia(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.ubicacionService.DeleteDependencia(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Dependencia eliminada", http.StatusOK)
}
