package events

import "gestion-system/internal/entities"

// PedidoCreadoEvent se publica al crear un pedido nuevo.
type PedidoCreadoEvent struct {
	Pedido  *entities.Pedido
	ActorID uint64
}

func (e PedidoCreadoEvent) Name() string { return "pedido.creado" }

// PedidoTransicionEvent se publica en cada transición del flujo de
// aprobación (aprobar/rechazar compras o gerencia).
type PedidoTransicionEvent struct {
	Pedido  *entities.Pedido
	Etapa   entities.EtapaFlujo
	Estado  entities.EstadoAprobacion
	ActorID uint64
}

func (e PedidoTransicionEvent) Name() string { return "pedido.transicion" }
