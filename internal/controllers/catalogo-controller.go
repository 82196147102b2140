package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/services"
	"gestion-system/pkg/utils"
)

// CatalogoController agrupa los catálogos simples del módulo de compras:
// productos, productos/servicios y tipos de solicitud.
type CatalogoController struct {
	productoService         services.ProductoServiceInterface
	productoServicioService services.ProductoServicioServiceInterface
	tipoSolicitudService    services.TipoSolicitudServiceInterface
	logger                  *zap.Logger
}

func NewCatalogoController(
	productoService services.ProductoServiceInterface,
	productoServicioService services.ProductoServicioServiceInterface,
	tipoSolicitudService services.TipoSolicitudServiceInterface,
	logger *zap.Logger,
) *CatalogoController {
	return &CatalogoController{
		productoService:         productoService,
		productoServicioService: productoServicioService,
		tipoSolicitudService:    tipoSolicitudService,
		logger:                  logger,
	}
}

// -----------------------------------------------------------
// CP PRODUCTOS
// -----------------------------------------------------------

func (c *CatalogoController) GetProductos(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	productos, total, err := c.productoService.GetProductos(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, productos, "Productos obtenidos", http.StatusOK, total)
}

func (c *CatalogoController) FindProducto(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	producto, err := c.productoService.FindProducto(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, producto, "Producto obtenido", http.StatusOK)
}

func (c *CatalogoController) CreateProducto(ctx echo.Context) error {
	var payload dto.CreateProductoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	producto, err := c.productoService.CreateProducto(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, producto, "Producto creado", http.StatusCreated)
}

func (c *CatalogoController) UpdateProducto(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateProductoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	producto, err := c.productoService.UpdateProducto(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, producto, "Producto actualizado", http.StatusOK)
}

func (c *CatalogoController) DeleteProducto(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.productoService.DeleteProducto(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Producto eliminado", http.StatusOK)
}

// -----------------------------------------------------------
// CP PRODUCTOS / SERVICIOS
// -----------------------------------------------------------

func (c *CatalogoController) GetProductosServicios(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	lista, total, err := c.productoServicioService.GetProductosServicios(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, lista, "Productos y servicios obtenidos", http.StatusOK, total)
}

func (c *CatalogoController) FindProductoServicio(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	ps, err := c.productoServicioService.FindProductoServicio(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, ps, "Producto/servicio obtenido", http.StatusOK)
}

func (c *CatalogoController) CreateProductoServicio(ctx echo.Context) error {
	var payload dto.CreateProductoServicioDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	ps, err := c.productoServicioService.CreateProductoServicio(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, ps, "Producto/servicio creado", http.StatusCreated)
}

func (c *CatalogoController) UpdateProductoServicio(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateProductoServicioDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	ps, err := c.productoServicioService.UpdateProductoServicio(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, ps, "Producto/servicio actualizado", http.StatusOK)
}

func (c *CatalogoController) DeleteProductoServicio(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.productoServicioService.DeleteProductoServicio(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Producto/servicio eliminado", http.StatusOK)
}

// -----------------------------------------------------------
// CP TIPOS DE SOLICITUD
// -----------------------------------------------------------

func (c *CatalogoController) GetTiposSolicitud(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	tipos, total, err := c.tipoSolicitudService.GetTiposSolicitud(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tipos, "Tipos de solicitud obtenidos", http.StatusOK, total)
}

func (c *CatalogoController) FindTipoSolicitud(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	tipo, err := c.tipoSolicitudService.FindTipoSolicitud(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tipo, "Tipo de solicitud obtenido", http.StatusOK)
}

func (c *CatalogoController) CreateTipoSolicitud(ctx echo.Context) error {
	var payload dto.CreateTipoSolicitudDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	tipo, err := c.tipoSolicitudService.CreateTipoSolicitud(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tipo, "Tipo de solicitud creado", http.StatusCreated)
}

func (c *CatalogoController) UpdateTipoSolicitud(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateTipoSolicitudDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	tipo, err := c.tipoSolicitudService.UpdateTipoSolicitud(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tipo, "Tipo de solicitud actualizado", http.StatusOK)
}

func (c *CatalogoController) DeleteTipoSolicitud(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.tipoSolicitudService.DeleteTipoSolicitud(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Tipo de solicitud eliminado", http.StatusOK)
}
