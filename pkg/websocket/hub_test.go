package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func registrarCliente(t *testing.T, hub *Hub, userID uint64, buffer int) *Client {
	t.Helper()

	client := &Client{Hub: hub, Send: make(chan []byte, buffer), UserID: userID}
	hub.Register <- client

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return hub.clients[client]
	}, time.Second, 5*time.Millisecond)

	return client
}

func TestBroadcastDescartaAlClienteLentoDeAmbosIndices(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	client := registrarCliente(t, hub, 42, 1)
	// Buffer lleno: el broadcast no puede entregar y debe descartarlo.
	client.Send <- []byte("ocupado")

	require.NoError(t, hub.Broadcast(map[string]string{"k": "v"}, "pedido_creado"))

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, sigue := hub.clients[client]
		return !sigue && len(hub.userClients[42]) == 0
	}, time.Second, 5*time.Millisecond)

	// Con el cliente fuera de los dos índices, el mensaje directo no toca el
	// canal cerrado.
	assert.NoError(t, hub.SendMessageToUser(42, map[string]string{"k": "v"}, "pedido_resultado"))
}

func TestSendMessageToUserEntregaAlDestinatario(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	destinatario := registrarCliente(t, hub, 7, 4)
	otro := registrarCliente(t, hub, 8, 4)

	require.NoError(t, hub.SendMessageToUser(7, map[string]string{"k": "v"}, "pedido_resultado"))

	select {
	case msg := <-destinatario.Send:
		assert.Contains(t, string(msg), "pedido_resultado")
	case <-time.After(time.Second):
		t.Fatal("el destinatario no recibió el mensaje")
	}
	assert.Empty(t, otro.Send)
}

func TestSendMessageToUserNoSeBloqueaConBufferLleno(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	client := registrarCliente(t, hub, 9, 1)
	client.Send <- []byte("ocupado")

	done := make(chan error, 1)
	go func() {
		done <- hub.SendMessageToUser(9, map[string]string{"k": "v"}, "pedido_resultado")
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("SendMessageToUser quedó bloqueado contra el buffer lleno")
	}

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	_, sigue := hub.clients[client]
	assert.False(t, sigue)
	assert.Empty(t, hub.userClients[9])
}

func TestUnregisterEsIdempotente(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	client := registrarCliente(t, hub, 11, 1)

	hub.unregister <- client
	hub.unregister <- client

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.userClients[11]) == 0
	}, time.Second, 5*time.Millisecond)
}
