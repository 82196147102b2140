package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gestion-system/internal/entities"
	"gestion-system/internal/repositories"
	"gestion-system/pkg/types"
	"gestion-system/pkg/utils"
)

type ExportServiceInterface interface {
	ExportarPedido(ctx context.Context, id uint64) (*excelize.File, string, error)
	ExportarConsolidado(ctx context.Context, filter types.Filter) (*excelize.File, string, error)
}

type ExportService struct {
	pedidoRepo repositories.PedidoRepositoryInterface
	logger     *zap.Logger
}

func NewExportService(pedidoRepo repositories.PedidoRepositoryInterface, logger *zap.Logger) ExportServiceInterface {
	return &ExportService{pedidoRepo: pedidoRepo, logger: logger}
}

func nombreFase(f entities.EstadoFlujo) string {
	switch f.Fase {
	case entities.FaseEsperandoCompras:
		return "Esperando compras"
	case entities.FaseEsperandoGerencia:
		return "Esperando gerencia"
	case entities.FaseRechazado:
		return fmt.Sprintf("Rechazado (%s)", f.EtapaRechazo)
	case entities.FaseCompletado:
		return "Completado"
	default:
		return string(f.Fase)
	}
}

func valorOVacio(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportarPedido arma el libro de un solo pedido: cabecera arriba y las
// líneas debajo, con el mismo orden que muestra la pantalla de detalle.
func (s *ExportService) ExportarPedido(ctx context.Context, id uint64) (*excelize.File, string, error) {
	pedido, err := s.pedidoRepo.FindPedido(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Pedido"
	f.SetSheetName("Sheet1", sheet)

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	cabecera := [][]interface{}{
		{"Consecutivo", pedido.Consecutivo},
		{"Fecha", pedido.CreatedAt.Format("2006-01-02 15:04")},
		{"Sede", nombreRelacion(pedido.Sede)},
		{"Dependencia", nombreDependencia(pedido.Dependencia)},
		{"Tipo de solicitud", nombreTipo(pedido.TipoSolicitud)},
		{"Elaborado por", nombreCreador(pedido.Creador)},
		{"Estado", nombreFase(pedido.Flujo)},
		{"Observación", pedido.Observacion},
	}
	for i, fila := range cabecera {
		celda, _ := excelize.CoordinatesToCellName(1, i+1)
		_ = f.SetCellValue(sheet, celda, fila[0])
		_ = f.SetCellStyle(sheet, celda, celda, bold)
		celdaValor, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(sheet, celdaValor, fila[1])
	}

	filaItems := len(cabecera) + 2
	encabezados := []string{"#", "Nombre", "Cantidad", "Unidad", "Referencia", "Comprado"}
	for col, titulo := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(col+1, filaItems)
		_ = f.SetCellValue(sheet, celda, titulo)
		_ = f.SetCellStyle(sheet, celda, celda, bold)
	}
	for i, item := range pedido.Items {
		fila := filaItems + 1 + i
		comprado := "No"
		if item.Comprado {
			comprado = "Sí"
		}
		valores := []interface{}{i + 1, item.Nombre, item.Cantidad, item.Unidad, valorOVacio(item.Referencia), comprado}
		for col, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, fila)
			_ = f.SetCellValue(sheet, celda, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 24)
	_ = f.SetColWidth(sheet, "C", "F", 16)

	filename := fmt.Sprintf("pedido-%d.xlsx", pedido.Consecutivo)
	return f, filename, nil
}

// ExportarConsolidado vuelca el listado filtrado completo, una fila por
// pedido, ignorando la paginación del cliente.
func (s *ExportService) ExportarConsolidado(ctx context.Context, filter types.Filter) (*excelize.File, string, error) {
	filter.Limit = utils.MaxLimit
	filter.Offset = 0
	filter.WithPagination = false

	pedidos, _, err := s.pedidoRepo.GetPedidos(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Consolidado"
	f.SetSheetName("Sheet1", sheet)

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	encabezados := []string{
		"Consecutivo", "Fecha", "Sede", "Dependencia", "Tipo de solicitud",
		"Elaborado por", "Estado", "Items", "Items comprados", "Observación",
	}
	for col, titulo := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, celda, titulo)
		_ = f.SetCellStyle(sheet, celda, celda, bold)
	}

	for i, pedido := range pedidos {
		comprados := 0
		for _, item := range pedido.Items {
			if item.Comprado {
				comprados++
			}
		}
		valores := []interface{}{
			pedido.Consecutivo,
			pedido.CreatedAt.Format("2006-01-02"),
			nombreRelacion(pedido.Sede),
			nombreDependencia(pedido.Dependencia),
			nombreTipo(pedido.TipoSolicitud),
			nombreCreador(pedido.Creador),
			nombreFase(pedido.Flujo),
			len(pedido.Items),
			comprados,
			pedido.Observacion,
		}
		for col, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, celda, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "J", 20)

	return f, "pedidos-consolidado.xlsx", nil
}

func nombreRelacion(s *entities.Sede) string {
	if s == nil {
		return ""
	}
	return s.Nombre
}

func nombreDependencia(d *entities.Dependencia) string {
	if d == nil {
		return ""
	}
	return d.Nombre
}

func nombreTipo(t *entities.TipoSolicitud) string {
	if t == nil {
		return ""
	}
	return t.Nombre
}

func nombreCreador(u *entities.Usuario) string {
	if u == nil {
		return ""
	}
	return u.NombreCompleto
}
