package controllers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/services"
	"gestion-system/pkg/utils"
)

// -----------------------------------------------------------
// PERSONAL
// -----------------------------------------------------------

type PersonalController struct {
	personalService services.PersonalServiceInterface
	logger          *zap.Logger
}

func NewPersonalController(personalService services.PersonalServiceInterface, logger *zap.Logger) *PersonalController {
	return &PersonalController{personalService: personalService, logger: logger}
}

func (c *PersonalController) GetPersonal(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	personal, total, err := c.personalService.GetPersonal(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, personal, "Personal obtenido", http.StatusOK, total)
}

func (c *PersonalController) FindPersonal(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	persona, err := c.personalService.FindPersonal(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, persona, "Personal obtenido", http.StatusOK)
}

func (c *PersonalController) CreatePersonal(ctx echo.Context) error {
	var payload dto.CreatePersonalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	persona, err := c.personalService.CreatePersonal(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, persona, "Personal registrado", http.StatusCreated)
}

func (c *PersonalController) UpdatePersonal(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdatePersonalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	persona, err := c.personalService.UpdatePersonal(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, persona, "Personal actualizado", http.StatusOK)
}

func (c *PersonalController) DeletePersonal(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.personalService.DeletePersonal(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Personal eliminado", http.StatusOK)
}

// -----------------------------------------------------------
// INVENTARIO
// -----------------------------------------------------------

type InventarioController struct {
	inventarioService services.InventarioServiceInterface
	logger            *zap.Logger
}

func NewInventarioController(inventarioService services.InventarioServiceInterface, logger *zap.Logger) *InventarioController {
	return &InventarioController{inventarioService: inventarioService, logger: logger}
}

func (c *InventarioController) GetInventario(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	items, total, err := c.inventarioService.GetInventario(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Inventario obtenido", http.StatusOK, total)
}

func (c *InventarioController) FindInventario(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	item, err := c.inventarioService.FindInventario(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Item de inventario obtenido", http.StatusOK)
}

func (c *InventarioController) CreateInventario(ctx echo.Context) error {
	var payload dto.CreateInventarioDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	item, err := c.inventarioService.CreateInventario(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Item de inventario creado", http.StatusCreated)
}

func (c *InventarioController) UpdateInventario(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateInventarioDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	item, err := c.inventarioService.UpdateInventario(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Item de inventario actualizado", http.StatusOK)
}

func (c *InventarioController) DeleteInventario(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.inventarioService.DeleteInventario(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Item de inventario eliminado", http.StatusOK)
}

// -----------------------------------------------------------
// PC EQUIPOS + CARACTERISTICAS
// -----------------------------------------------------------

type EquipoController struct {
	equipoService services.EquipoServiceInterface
	logger        *zap.Logger
}

func NewEquipoController(equipoService services.EquipoServiceInterface, logger *zap.Logger) *EquipoController {
	return &EquipoController{equipoService: equipoService, logger: logger}
}

func (c *EquipoController) GetEquipos(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	equipos, total, err := c.equipoService.GetEquipos(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, equipos, "Equipos obtenidos", http.StatusOK, total)
}

func (c *EquipoController) FindEquipo(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	equipo, err := c.equipoService.FindEquipo(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, equipo, "Equipo obtenido", http.StatusOK)
}

func (c *EquipoController) CreateEquipo(ctx echo.Context) error {
	var payload dto.CreateEquipoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	equipo, err := c.equipoService.CreateEquipo(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, equipo, "Equipo registrado", http.StatusCreated)
}

func (c *EquipoController) UpdateEquipo(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateEquipoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	equipo, err := c.equipoService.UpdateEquipo(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, equipo, "Equipo actualizado", http.StatusOK)
}

func (c *EquipoController) DeleteEquipo(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.equipoService.DeleteEquipo(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Equipo eliminado", http.StatusOK)
}

func (c *EquipoController) GetCaracteristicas(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	caracteristicas, err := c.equipoService.GetCaracteristicas(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, caracteristicas, "Características obtenidas", http.StatusOK)
}

func (c *EquipoController) CreateCaracteristica(ctx echo.Context) error {
	var payload dto.CreateCaracteristicaTecnicaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	caracteristicas, err := c.equipoService.CreateCaracteristica(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, caracteristicas, "Característica registrada", http.StatusCreated)
}

func (c *EquipoController) UpdateCaracteristica(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateCaracteristicaTecnicaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	caracteristicas, err := c.equipoService.UpdateCaracteristica(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, caracteristicas, "Característica actualizada", http.StatusOK)
}

func (c *EquipoController) DeleteCaracteristica(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.equipoService.DeleteCaracteristica(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Característica eliminada", http.StatusOK)
}

// -----------------------------------------------------------
// PC ENTREGAS / DEVUELTOS
// -----------------------------------------------------------

type MovimientoEquipoController struct {
	movimientoService services.MovimientoEquipoServiceInterface
	logger            *zap.Logger
}

func NewMovimientoEquipoController(movimientoService services.MovimientoEquipoServiceInterface, logger *zap.Logger) *MovimientoEquipoController {
	return &MovimientoEquipoController{movimientoService: movimientoService, logger: logger}
}

func (c *MovimientoEquipoController) GetEntregas(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	entregas, total, err := c.movimientoService.GetEntregas(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entregas, "Entregas obtenidas", http.StatusOK, total)
}

func (c *MovimientoEquipoController) FindEntrega(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	entrega, err := c.movimientoService.FindEntrega(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entrega, "Entrega obtenida", http.StatusOK)
}

// leerEntregaForm arma el DTO de entrega desde el multipart (la firma de
// recibido viaja como archivo opcional).
func leerEntregaForm(ctx echo.Context) (dto.CreateEntregaDTO, error) {
	var payload dto.CreateEntregaDTO
	if err := ctx.Bind(&payload); err != nil {
		return payload, err
	}
	if err := ctx.Validate(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (c *MovimientoEquipoController) CreateEntrega(ctx echo.Context) error {
	payload, err := leerEntregaForm(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var firma io.Reader
	filename := ""
	if fileHeader, err := ctx.FormFile("firma_entrega"); err == nil && fileHeader != nil {
		src, err := fileHeader.Open()
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		defer src.Close()
		firma = src
		filename = fileHeader.Filename
	}

	entrega, err := c.movimientoService.CreateEntrega(ctx.Request().Context(), payload, firma, filename)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entrega, "Entrega registrada", http.StatusCreated)
}

func (c *MovimientoEquipoController) UpdateEntrega(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	payload, err := leerEntregaForm(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var firma io.Reader
	filename := ""
	if fileHeader, err := ctx.FormFile("firma_entrega"); err == nil && fileHeader != nil {
		src, err := fileHeader.Open()
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		defer src.Close()
		firma = src
		filename = fileHeader.Filename
	}

	entrega, err := c.movimientoService.UpdateEntrega(ctx.Request().Context(), id, payload, firma, filename)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entrega, "Entrega actualizada", http.StatusOK)
}

func (c *MovimientoEquipoController) DeleteEntrega(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.movimientoService.DeleteEntrega(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Entrega eliminada", http.StatusOK)
}

func (c *MovimientoEquipoController) GetDevueltos(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	devueltos, total, err := c.movimientoService.GetDevueltos(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, devueltos, "Devoluciones obtenidas", http.StatusOK, total)
}

func (c *MovimientoEquipoController) FindDevuelto(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	devuelto, err := c.movimientoService.FindDevuelto(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, devuelto, "Devolución obtenida", http.StatusOK)
}

func (c *MovimientoEquipoController) CreateDevuelto(ctx echo.Context) error {
	var payload dto.CreateDevueltoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	devuelto, err := c.movimientoService.CreateDevuelto(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, devuelto, "Devolución registrada", http.StatusCreated)
}

func (c *MovimientoEquipoController) UpdateDevuelto(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateDevueltoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	devuelto, err := c.movimientoService.UpdateDevuelto(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, devuelto, "Devolución actualizada", http.StatusOK)
}

func (c *MovimientoEquipoController) DeleteDevuelto(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.movimientoService.DeleteDevuelto(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Devolución eliminada", http.StatusOK)
}
