package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Wyydra/yacall/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/yacall/internal/core/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// WSClient owns one websocket. All writes go through send so that the
// write pump is the only writer on the connection.
type WSClient struct {
	id   domain.ConnID
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func newWSClient(id domain.ConnID, conn *websocket.Conn, buffer int) *WSClient {
	return &WSClient{
		id:   id,
		conn: conn,
		send: make(chan []byte, buffer),
	}
}

func (c *WSClient) ID() domain.ConnID {
	return c.id
}

func (c *WSClient) Send(frame []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ws.ErrClosed
	}
	select {
	case c.send <- frame:
		return nil
	default:
		return ws.ErrBackpressure
	}
}

// Close stops the write pump, which says goodbye and closes the socket.
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.send)
	return nil
}

func (c *WSClient) writePump(writeWait, pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Warn().Err(err).Str("conn_id", c.id.String()).Msg("Error writing to websocket")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("conn_id", c.id.String()).Msg("Error sending ping")
				return
			}
		}
	}
}

// ServeWS upgrades the request and runs the connection's read loop. Events
// from one connection are handled one at a time, in arrival order.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := newWSClient(domain.NewConnID(), conn, h.cfg.SendBuffer)
	ctx := r.Context()

	l := log.With().Str("conn_id", client.id.String()).Logger()
	l.Info().Str("remote_addr", r.RemoteAddr).Msg("New client connected")

	h.Hub.Register(client)
	go client.writePump(h.cfg.WriteWait, h.cfg.PingPeriod())

	defer func() {
		h.RoomService.Disconnect(ctx, client.id)
		h.Hub.Unregister(client)
		_ = client.Close()
		l.Info().Msg("Client connection closed")
	}()

	_ = h.Hub.Emit(ctx, client.id, domain.EventWelcome, domain.Welcome{ConnectionID: client.id.String()})

	conn.SetReadLimit(h.cfg.ReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	limiter := rate.NewLimiter(rate.Inf, 0)
	if h.cfg.MessagesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(h.cfg.MessagesPerSecond), h.cfg.MessageBurst)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			return
		}

		if !limiter.Allow() {
			l.Warn().Msg("Client exceeded message rate")
			h.reject(ctx, client.id, "", domain.ErrRateLimited)
			continue
		}

		env, err := ws.Decode(data)
		if err != nil {
			l.Warn().Err(err).Msg("Malformed frame")
			h.reject(ctx, client.id, "", err)
			continue
		}

		if err := h.dispatch(ctx, client.id, env); err != nil {
			l.Warn().Err(err).Str("event", env.Event).Msg("Failed to handle event")
			h.reject(ctx, client.id, env.Event, err)
		}
	}
}

func (h *Handler) reject(ctx context.Context, to domain.ConnID, event string, err error) {
	_ = h.Hub.Emit(ctx, to, domain.EventError, domain.ErrorNotice{Event: event, Error: err.Error()})
}
