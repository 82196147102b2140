package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub mantiene las conexiones activas y reparte los mensajes.
type Hub struct {
	clients     map[*Client]bool
	userClients map[uint64][]*Client
	broadcast   chan []byte
	Register    chan *Client
	unregister  chan *Client
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[uint64][]*Client),
		broadcast:   make(chan []byte),
		Register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Debug("Cliente websocket conectado", zap.Uint64("userId", client.UserID))

		case client := <-h.unregister:
			h.mu.Lock()
			h.dropClient(client)
			h.mu.Unlock()
			h.logger.Debug("Cliente websocket desconectado", zap.Uint64("userId", client.UserID))

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.dropClient(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// dropClient saca al cliente de los dos índices y cierra su canal. El
// llamador debe tener tomado h.mu; el cliente tiene que salir de ambos mapas
// a la vez, o SendMessageToUser escribiría sobre un canal cerrado.
func (h *Hub) dropClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	clients := h.userClients[client.UserID]
	for i, c := range clients {
		if c == client {
			h.userClients[client.UserID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
}

// Broadcast envía un evento a todos los clientes conectados.
func (h *Hub) Broadcast(payload interface{}, messageType string) error {
	envelope := Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	h.broadcast <- messageBytes
	return nil
}

// SendMessageToUser envía una notificación a un usuario concreto.
func (h *Hub) SendMessageToUser(userID uint64, payload interface{}, messageType string) error {
	envelope := Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	// Copia del slice: descartar un cliente lento lo muta.
	destinos := append([]*Client(nil), h.userClients[userID]...)
	for _, client := range destinos {
		select {
		case client.Send <- messageBytes:
		default:
			h.dropClient(client)
		}
	}
	return nil
}
