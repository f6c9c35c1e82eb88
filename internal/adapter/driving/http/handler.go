package http

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/Wyydra/yacall/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/yacall/internal/config"
	"github.com/Wyydra/yacall/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	RoomService  *service.RoomService
	RelayService *service.RelayService
	Hub          *ws.Hub

	cfg        *config.Config
	upgrader   websocket.Upgrader
	iceServers []webrtc.ICEServer
}

func NewHandler(cfg *config.Config, roomService *service.RoomService, relayService *service.RelayService, hub *ws.Hub) *Handler {
	return &Handler{
		RoomService:  roomService,
		RelayService: relayService,
		Hub:          hub,
		cfg:          cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return cfg.OriginAllowed(r.Header.Get("Origin"))
			},
		},
		iceServers: buildICEServers(cfg.STUNServers),
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ws", h.ServeWS)
	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ice-servers", h.ICEServers)
		r.Get("/stats", h.Stats)
	})

	// Shared links land on the SPA, which reads the id from the path.
	r.Get("/room/{roomID}", h.ServeRoom)

	fs := http.FileServer(http.Dir(h.cfg.StaticPath))
	r.Handle("/*", fs)

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) ServeRoom(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.cfg.StaticPath, "index.html"))
}

type statsDTO struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsDTO{
		Rooms:       h.RoomService.RoomCount(),
		Connections: h.Hub.Count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}
