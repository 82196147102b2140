package entities

import "time"

// EstadoAprobacion es el estado de cada vía de aprobación de un pedido.
type EstadoAprobacion string

const (
	EstadoPendiente EstadoAprobacion = "pendiente"
	EstadoAprobado  EstadoAprobacion = "aprobado"
	EstadoRechazado EstadoAprobacion = "rechazado"
)

// EtapaFlujo identifica la vía de aprobación.
type EtapaFlujo string

const (
	EtapaCompras  EtapaFlujo = "compras"
	EtapaGerencia EtapaFlujo = "gerencia"
)

// FaseFlujo es la fase global del flujo de aprobación.
type FaseFlujo string

const (
	FaseEsperandoCompras  FaseFlujo = "esperando_compras"
	FaseEsperandoGerencia FaseFlujo = "esperando_gerencia"
	FaseRechazado         FaseFlujo = "rechazado"
	FaseCompletado        FaseFlujo = "completado"
)

// EstadoFlujo es la unión etiquetada que resume los dos estados
// independientes del pedido. EtapaRechazo solo tiene valor cuando
// Fase == FaseRechazado.
type EstadoFlujo struct {
	Fase         FaseFlujo  `json:"fase"`
	EtapaRechazo EtapaFlujo `json:"etapa_rechazo,omitempty"`
}

// DerivarFlujo calcula la fase activa a partir de los dos estados. Se invoca
// una sola vez al cargar el pedido desde la base de datos; las vistas y los
// servicios consultan el resultado, nunca recombinan los estados crudos.
func DerivarFlujo(compras, gerencia EstadoAprobacion) EstadoFlujo {
	switch {
	case compras == EstadoRechazado:
		return EstadoFlujo{Fase: FaseRechazado, EtapaRechazo: EtapaCompras}
	case gerencia == EstadoRechazado:
		return EstadoFlujo{Fase: FaseRechazado, EtapaRechazo: EtapaGerencia}
	case compras == EstadoPendiente:
		return EstadoFlujo{Fase: FaseEsperandoCompras}
	case gerencia == EstadoPendiente:
		return EstadoFlujo{Fase: FaseEsperandoGerencia}
	default:
		return EstadoFlujo{Fase: FaseCompletado}
	}
}

// EtapaActiva devuelve la etapa que puede actuar ahora mismo, o false si el
// flujo ya concluyó.
func (f EstadoFlujo) EtapaActiva() (EtapaFlujo, bool) {
	switch f.Fase {
	case FaseEsperandoCompras:
		return EtapaCompras, true
	case FaseEsperandoGerencia:
		return EtapaGerencia, true
	default:
		return "", false
	}
}

// PedidoItem es una línea del pedido. Comprado solo puede cambiar cuando la
// vía de compras ya está aprobada.
type PedidoItem struct {
	ID         uint64  `json:"id"`
	PedidoID   uint64  `json:"pedido_id"`
	Nombre     string  `json:"nombre"`
	Cantidad   int     `json:"cantidad"`
	Unidad     string  `json:"unidad"`
	Referencia *string `json:"referencia,omitempty"`
	ProductoID *uint64 `json:"producto_id,omitempty"`
	Comprado   bool    `json:"comprado"`
}

// Seguimiento son los campos libres de seguimiento de compras, editables en
// cualquier momento al margen del flujo de aprobación.
type Seguimiento struct {
	FechaSolicitudCotizacion *string `json:"fecha_solicitud_cotizacion,omitempty"`
	FechaRespuestaCotizacion *string `json:"fecha_respuesta_cotizacion,omitempty"`
	FechaAprobacionPedido    *string `json:"fecha_aprobacion_pedido,omitempty"`
	FechaEnvioProveedor      *string `json:"fecha_envio_proveedor,omitempty"`
	ObservacionesCompras     *string `json:"observaciones_compras,omitempty"`
}

type Pedido struct {
	ID              uint64           `json:"id"`
	Consecutivo     int64            `json:"consecutivo"`
	SedeID          uint64           `json:"sede_id"`
	DependenciaID   uint64           `json:"dependencia_id"`
	TipoSolicitudID uint64           `json:"tipo_solicitud_id"`
	Observacion     string           `json:"observacion"`
	CreadorID       uint64           `json:"creador_id"`
	EstadoCompras   EstadoAprobacion `json:"estado_compras"`
	EstadoGerencia  EstadoAprobacion `json:"estado_gerencia"`
	Flujo           EstadoFlujo      `json:"flujo"`

	JustificacionCompras    *string `json:"justificacion_compras,omitempty"`
	MotivoRechazadoCompras  *string `json:"motivo_rechazado_compras,omitempty"`
	JustificacionGerencia   *string `json:"justificacion_gerencia,omitempty"`
	MotivoRechazadoGerencia *string `json:"motivo_rechazado_gerencia,omitempty"`

	FirmaElaboracion *string `json:"firma_elaboracion,omitempty"`
	FirmaCompras     *string `json:"firma_compras,omitempty"`
	FirmaGerencia    *string `json:"firma_gerencia,omitempty"`

	Seguimiento Seguimiento  `json:"seguimiento"`
	Items       []PedidoItem `json:"items"`

	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Relaciones resueltas en los listados.
	Sede          *Sede          `json:"sede,omitempty"`
	Dependencia   *Dependencia   `json:"dependencia,omitempty"`
	TipoSolicitud *TipoSolicitud `json:"tipo_solicitud,omitempty"`
	Creador       *Usuario       `json:"creador,omitempty"`
}

// PuedeMarcarItems indica si ya se pueden alternar los flags de comprado.
func (p *Pedido) PuedeMarcarItems() bool {
	return p.EstadoCompras == EstadoAprobado
}
