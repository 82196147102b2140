package websocket

import "time"

// Envelope envuelve todo mensaje saliente; Type le dice al frontend qué hacer
// con el payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// PedidoEventPayload es la notificación de un cambio en el flujo de
// aprobación de un pedido.
type PedidoEventPayload struct {
	PedidoID    uint64 `json:"pedido_id"`
	Consecutivo int64  `json:"consecutivo"`
	Etapa       string `json:"etapa"`
	Estado      string `json:"estado"`
	ActorID     uint64 `json:"actor_id"`
}
