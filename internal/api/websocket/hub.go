package websocket

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected canvases and fans execution events out
// to all of them. Unlike a collaboration hub there are no rooms: every client
// observes every run.
type Hub struct {
	clients map[*Client]bool

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Broadcast execution events to all clients
	Broadcast chan Message

	mu sync.RWMutex

	Logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Message, 256),
		Logger:     logger,
	}
}

// Run starts the hub's main event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

// Publish queues an event for broadcast without blocking the execution run.
func (h *Hub) Publish(message Message) {
	select {
	case h.Broadcast <- message:
	default:
		h.Logger.Warn().
			Str("type", string(message.Type)).
			Msg("Broadcast buffer full, execution event dropped")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.Logger.Info().
		Str("clientId", client.ID).
		Int("totalClients", len(h.clients)).
		Msg("Client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client]; exists {
		delete(h.clients, client)
		close(client.Send)
		h.Logger.Info().
			Str("clientId", client.ID).
			Int("remainingClients", len(h.clients)).
			Msg("Client disconnected")
	}
}

func (h *Hub) broadcastMessage(message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			// Client's send channel is full, skip
			h.Logger.Warn().
				Str("clientId", client.ID).
				Msg("Client send buffer full, message dropped")
		}
	}
}
