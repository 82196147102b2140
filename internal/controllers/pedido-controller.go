package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gestion-system/internal/dto"
	"gestion-system/internal/services"
	apperrors "gestion-system/pkg/errors"
	"gestion-system/pkg/utils"
)

type PedidoController struct {
	pedidoService services.PedidoServiceInterface
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewPedidoController(
	pedidoService services.PedidoServiceInterface,
	exportService services.ExportServiceInterface,
	logger *zap.Logger,
) *PedidoController {
	return &PedidoController{
		pedidoService: pedidoService,
		exportService: exportService,
		logger:        logger,
	}
}

func (c *PedidoController) GetPedidos(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	pedidos, total, err := c.pedidoService.GetPedidos(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedidos, "Pedidos obtenidos", http.StatusOK, total)
}

func (c *PedidoController) FindPedido(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	pedido, err := c.pedidoService.FindPedido(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedido, "Pedido obtenido", http.StatusOK)
}

// parseItemsForm lee las líneas del pedido desde el formulario multipart, que
// llegan indexadas como items[0][nombre], items[0][cantidad], etc.
func parseItemsForm(values map[string][]string) ([]dto.ItemPedidoDTO, error) {
	get := func(key string) string {
		if v, ok := values[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	items := make([]dto.ItemPedidoDTO, 0)
	for i := 0; ; i++ {
		nombre := get(fmt.Sprintf("items[%d][nombre]", i))
		if nombre == "" {
			break
		}

		cantidadStr := get(fmt.Sprintf("items[%d][cantidad]", i))
		cantidad, err := strconv.Atoi(cantidadStr)
		if err != nil {
			return nil, apperrors.NewBadRequestError(
				fmt.Sprintf("La cantidad del item %d no es un número válido", i+1))
		}

		item := dto.ItemPedidoDTO{
			Nombre:   nombre,
			Cantidad: cantidad,
			Unidad:   get(fmt.Sprintf("items[%d][unidad]", i)),
		}
		if ref := get(fmt.Sprintf("items[%d][referencia]", i)); ref != "" {
			item.Referencia = &ref
		}
		if prodStr := get(fmt.Sprintf("items[%d][producto_id]", i)); prodStr != "" {
			prodID, err := strconv.ParseUint(prodStr, 10, 64)
			if err != nil {
				return nil, apperrors.NewBadRequestError(
					fmt.Sprintf("El producto del item %d no es válido", i+1))
			}
			item.ProductoID = &prodID
		}
		items = append(items, item)
	}
	return items, nil
}

// parseItemsCompradosForm lee los ids de items_comprados[] que el cliente
// histórico adjunta al aprobar; normalmente la lista llega vacía.
func parseItemsCompradosForm(values map[string][]string) ([]uint64, error) {
	crudos := values["items_comprados[]"]
	if len(crudos) == 0 {
		crudos = values["items_comprados"]
	}

	var ids []uint64
	for _, v := range crudos {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, apperrors.NewBadRequestError(
				"items_comprados contiene un identificador inválido")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// firmaDesdeForm arma la entrada de firma desde el multipart: el archivo
// "firma" si llegó, y el flag usar_firma_guardada. El Close del archivo queda
// a cargo del llamador vía la función devuelta.
func firmaDesdeForm(ctx echo.Context) (services.FirmaInput, func(), error) {
	firma := services.FirmaInput{
		UsarFirmaGuardada: ctx.FormValue("usar_firma_guardada") == "true",
	}
	cerrar := func() {}

	fileHeader, err := ctx.FormFile("firma")
	if err == nil && fileHeader != nil {
		src, err := fileHeader.Open()
		if err != nil {
			return firma, cerrar, err
		}
		firma.File = src
		firma.Filename = fileHeader.Filename
		cerrar = func() { _ = src.Close() }
	}
	return firma, cerrar, nil
}

func (c *PedidoController) CreatePedido(ctx echo.Context) error {
	actorID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("El pedido debe enviarse como formulario multipart"), c.logger)
	}

	items, err := parseItemsForm(form.Value)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	payload := dto.CreatePedidoDTO{
		Observacion:       ctx.FormValue("observacion"),
		UsarFirmaGuardada: ctx.FormValue("usar_firma_guardada") == "true",
		Items:             items,
	}
	payload.SedeID, _ = strconv.ParseUint(ctx.FormValue("sede_id"), 10, 64)
	payload.DependenciaID, _ = strconv.ParseUint(ctx.FormValue("dependencia_id"), 10, 64)
	payload.TipoSolicitudID, _ = strconv.ParseUint(ctx.FormValue("tipo_solicitud_id"), 10, 64)

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	firma, cerrar, err := firmaDesdeForm(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer cerrar()
	firma.UsarFirmaGuardada = payload.UsarFirmaGuardada

	pedido, err := c.pedidoService.CreatePedido(ctx.Request().Context(), actorID, payload, firma)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedido, "Pedido creado", http.StatusCreated)
}

func (c *PedidoController) UpdatePedido(ctx echo.Context) error {
	actorID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewBadRequestError("El pedido debe enviarse como formulario multipart"), c.logger)
	}

	items, err := parseItemsForm(form.Value)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	payload := dto.UpdatePedidoDTO{
		Observacion:       ctx.FormValue("observacion"),
		UsarFirmaGuardada: ctx.FormValue("usar_firma_guardada") == "true",
		Items:             items,
	}
	payload.SedeID, _ = strconv.ParseUint(ctx.FormValue("sede_id"), 10, 64)
	payload.DependenciaID, _ = strconv.ParseUint(ctx.FormValue("dependencia_id"), 10, 64)
	payload.TipoSolicitudID, _ = strconv.ParseUint(ctx.FormValue("tipo_solicitud_id"), 10, 64)

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	firma, cerrar, err := firmaDesdeForm(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer cerrar()
	firma.UsarFirmaGuardada = payload.UsarFirmaGuardada

	pedido, err := c.pedidoService.UpdatePedido(ctx.Request().Context(), actorID, id, payload, firma)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedido, "Pedido actualizado", http.StatusOK)
}

func (c *PedidoController) DeletePedido(ctx echo.Context) error {
	actorID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.pedidoService.DeletePedido(ctx.Request().Context(), actorID, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Pedido eliminado", http.StatusOK)
}

func (c *PedidoController) AprobarCompras(ctx echo.Context) error {
	actorID, id, payload, firma, cerrar, err := c.leerAprobacion(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer cerrar()

	pedido, err := c.pedidoService.AprobarCompras(ctx.Request().Context(), actorID, id, payload, firma)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedido, "Pedido aprobado por compras", http.StatusOK)
}

func (c *PedidoController) AprobarGerencia(ctx echo.Context) error {
	actorID, id, payload, firma, cerrar, err := c.leerAprobacion(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer cerrar()

	pedido, err := c.pedidoService.AprobarGerencia(ctx.Request().Context(), actorID, id, payload, firma)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedido, "Pedido aprobado por gerencia", http.StatusOK)
}

// leerAprobacion lee el multipart común de aprobar-compras y aprobar-gerencia.
func (c *PedidoController) leerAprobacion(ctx echo.Context) (uint64, uint64, dto.AprobarEtapaDTO, services.FirmaInput, func(), error) {
	noop := func() {}
	var payload dto.AprobarEtapaDTO

	actorID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return 0, 0, payload, services.FirmaInput{}, noop, err
	}
	id, err := parseID(ctx)
	if err != nil {
		return 0, 0, payload, services.FirmaInput{}, noop, err
	}

	payload.Justificacion = ctx.FormValue("justificacion")
	payload.UsarFirmaGuardada = ctx.FormValue("usar_firma_guardada") == "true"
	if valores, err := ctx.FormParams(); err == nil {
		payload.ItemsComprados, err = parseItemsCompradosForm(valores)
		if err != nil {
			return 0, 0, payload, services.FirmaInput{}, noop, err
		}
	}
	if err := ctx.Validate(&payload); err != nil {
		return 0, 0, payload, services.FirmaInput{}, noop, err
	}

	firma, cerrar, err := firmaDesdeForm(ctx)
	if err != nil {
		return 0, 0, payload, services.FirmaInput{}, noop, err
	}
	firma.UsarFirmaGuardada = payload.UsarFirmaGuardada

	return actorID, id, payload, firma, cerrar, nil
}

func (c *PedidoController) RechazarCompras(ctx echo.Context) error {
	actorID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RechazarComprasDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	pedido, err := c.pedidoService.RechazarCompras(ctx.Request().Context(), actorID, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedido, "Pedido rechazado por compras", http.StatusOK)
}

func (c *PedidoController) RechazarGerencia(ctx echo.Context) error {
	actorID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RechazarGerenciaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	pedido, err := c.pedidoService.RechazarGerencia(ctx.Request().Context(), actorID, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedido, "Pedido rechazado por gerencia", http.StatusOK)
}

func (c *PedidoController) UpdateItems(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateItemsDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	pedido, err := c.pedidoService.UpdateItems(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedido, "Items actualizados", http.StatusOK)
}

func (c *PedidoController) UpdateSeguimiento(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SeguimientoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	pedido, err := c.pedidoService.UpdateSeguimiento(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pedido, "Seguimiento actualizado", http.StatusOK)
}

func (c *PedidoController) ExportarExcel(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f, filename, err := c.exportService.ExportarPedido(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)

	return f.Write(ctx.Response().Writer)
}

func (c *PedidoController) ExportarConsolidado(ctx echo.Context) error {
	// El cliente manda los criterios en el cuerpo del POST; FormParams los
	// combina con los de la query string.
	valores, err := ctx.FormParams()
	if err != nil {
		valores = ctx.Request().URL.Query()
	}
	filter := utils.ParseFilterFromQuery(valores)

	f, filename, err := c.exportService.ExportarConsolidado(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)

	return f.Write(ctx.Response().Writer)
}

func parseID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewBadRequestError("El identificador de la URL no es válido")
	}
	return id, nil
}
