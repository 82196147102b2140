package dto

import (
	"github.com/aarondl/null/v8"
)

// ItemPedidoDTO es una línea del pedido tal como llega en el formulario
// multipart (items[i][campo]).
type ItemPedidoDTO struct {
	Nombre     string  `json:"nombre" validate:"required"`
	Cantidad   int     `json:"cantidad" validate:"required,gt=0"`
	Unidad     string  `json:"unidad" validate:"required,unidad_item"`
	Referencia *string `json:"referencia,omitempty"`
	ProductoID *uint64 `json:"producto_id,omitempty"`
}

type CreatePedidoDTO struct {
	SedeID            uint64          `json:"sede_id" validate:"required"`
	DependenciaID     uint64          `json:"dependencia_id" validate:"required"`
	TipoSolicitudID   uint64          `json:"tipo_solicitud_id" validate:"required"`
	Observacion       string          `json:"observacion" validate:"required"`
	UsarFirmaGuardada bool            `json:"usar_firma_guardada"`
	Items             []ItemPedidoDTO `json:"items" validate:"required,min=1,dive"`
}

type UpdatePedidoDTO struct {
	SedeID            uint64          `json:"sede_id" validate:"required"`
	DependenciaID     uint64          `json:"dependencia_id" validate:"required"`
	TipoSolicitudID   uint64          `json:"tipo_solicitud_id" validate:"required"`
	Observacion       string          `json:"observacion" validate:"required"`
	UsarFirmaGuardada bool            `json:"usar_firma_guardada"`
	Items             []ItemPedidoDTO `json:"items" validate:"required,min=1,dive"`
}

// AprobarEtapaDTO acompaña a aprobar-compras y aprobar-gerencia. La firma
// viaja como archivo multipart o como flag de reutilización, nunca ambas.
// ItemsComprados se acepta por compatibilidad con el cliente histórico;
// normalmente llega vacío y el marcado real se hace vía update-items.
type AprobarEtapaDTO struct {
	Justificacion     string   `json:"justificacion" validate:"required"`
	UsarFirmaGuardada bool     `json:"usar_firma_guardada"`
	ItemsComprados    []uint64 `json:"items_comprados,omitempty"`
}

type RechazarComprasDTO struct {
	MotivoRechazadoCompras string `json:"motivo_rechazado_compras" validate:"required"`
}

type RechazarGerenciaDTO struct {
	MotivoRechazadoGerencia string `json:"motivo_rechazado_gerencia" validate:"required"`
}

// ItemCompradoDTO marca una línea como comprada o no.
type ItemCompradoDTO struct {
	ID       uint64 `json:"id" validate:"required"`
	Comprado bool   `json:"comprado"`
}

// UpdateItemsDTO es el guardado por lotes de los flags de comprado. Version
// es la versión del pedido que el cliente leyó; si ya no coincide, el
// guardado se rechaza con conflicto en lugar de pisar cambios ajenos.
type UpdateItemsDTO struct {
	Items   []ItemCompradoDTO `json:"items" validate:"required,min=1,dive"`
	Version int64             `json:"version" validate:"required,gt=0"`
}

// SeguimientoDTO es el PATCH de los campos libres de seguimiento. Los campos
// ausentes o nulos no se tocan; una cadena vacía limpia el campo.
type SeguimientoDTO struct {
	FechaSolicitudCotizacion null.String `json:"fecha_solicitud_cotizacion"`
	FechaRespuestaCotizacion null.String `json:"fecha_respuesta_cotizacion"`
	FechaAprobacionPedido    null.String `json:"fecha_aprobacion_pedido"`
	FechaEnvioProveedor      null.String `json:"fecha_envio_proveedor"`
	ObservacionesCompras     null.String `json:"observaciones_compras"`
}
