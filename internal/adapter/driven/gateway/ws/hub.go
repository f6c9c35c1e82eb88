package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/Wyydra/yacall/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// Hub is the table of live connections. It implements port.Gateway.
type Hub struct {
	mu      sync.RWMutex
	clients map[domain.ConnID]Client
	stopped bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[domain.ConnID]Client),
	}
}

func (h *Hub) Register(c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		_ = c.Close()
		return
	}
	h.clients[c.ID()] = c
	log.Info().Str("conn_id", c.ID().String()).Int("count", len(h.clients)).Msg("Client registered")
}

func (h *Hub) Unregister(c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[c.ID()]; ok && current == c {
		delete(h.clients, c.ID())
		log.Info().Str("conn_id", c.ID().String()).Int("count", len(h.clients)).Msg("Client unregistered")
	}
}

// Emit encodes the event and queues it for one connection. Unknown ids are
// ignored. A connection that cannot keep up is closed.
func (h *Hub) Emit(ctx context.Context, to domain.ConnID, event string, payload any) error {
	h.mu.RLock()
	client, ok := h.clients[to]
	h.mu.RUnlock()
	if !ok {
		log.Debug().Str("conn_id", to.String()).Str("event", event).Msg("Dropping event for unknown client")
		return nil
	}

	frame, err := Encode(event, payload)
	if err != nil {
		return err
	}

	if err := client.Send(frame); err != nil {
		if errors.Is(err, ErrBackpressure) {
			log.Warn().Str("conn_id", to.String()).Msg("Send buffer full, closing connection")
			_ = client.Close()
		}
		return err
	}
	return nil
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop closes every connection and refuses new ones.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopped = true
	log.Info().Int("count", len(h.clients)).Msg("Stopping hub")
	for id, client := range h.clients {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Str("conn_id", id.String()).Msg("Error closing client connection")
		}
		delete(h.clients, id)
	}
}
