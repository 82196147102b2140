package services

import (
	"context"

	"go.uber.org/zap"

	"gestion-system/internal/events"
	"gestion-system/pkg/eventbus"
	"gestion-system/pkg/websocket"
)

// NotificadorService escucha los eventos del flujo de pedidos y los empuja a
// los clientes conectados por websocket.
type NotificadorService struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewNotificadorService(hub *websocket.Hub, logger *zap.Logger) *NotificadorService {
	return &NotificadorService{hub: hub, logger: logger}
}

// RegistrarListeners suscribe el notificador al bus de eventos. Se llama una
// sola vez durante el arranque.
func (s *NotificadorService) RegistrarListeners(bus *eventbus.Bus) {
	bus.Subscribe(events.PedidoCreadoEvent{}.Name(), s.onPedidoCreado)
	bus.Subscribe(events.PedidoTransicionEvent{}.Name(), s.onPedidoTransicion)
}

func (s *NotificadorService) onPedidoCreado(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.PedidoCreadoEvent)
	if !ok {
		return nil
	}

	payload := websocket.PedidoEventPayload{
		PedidoID:    e.Pedido.ID,
		Consecutivo: e.Pedido.Consecutivo,
		Estado:      "creado",
		ActorID:     e.ActorID,
	}
	return s.hub.Broadcast(payload, "pedido_creado")
}

func (s *NotificadorService) onPedidoTransicion(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.PedidoTransicionEvent)
	if !ok {
		return nil
	}

	payload := websocket.PedidoEventPayload{
		PedidoID:    e.Pedido.ID,
		Consecutivo: e.Pedido.Consecutivo,
		Etapa:       string(e.Etapa),
		Estado:      string(e.Estado),
		ActorID:     e.ActorID,
	}

	if err := s.hub.Broadcast(payload, "pedido_transicion"); err != nil {
		return err
	}

	// El creador recibe además una notificación directa con el resultado de
	// su pedido.
	if e.Pedido.CreadorID != e.ActorID {
		if err := s.hub.SendMessageToUser(e.Pedido.CreadorID, payload, "pedido_resultado"); err != nil {
			s.logger.Warn("No se pudo notificar al creador del pedido",
				zap.Uint64("creador_id", e.Pedido.CreadorID),
				zap.Error(err),
			)
		}
	}
	return nil
}
