package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Wyydra/yacall/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/yacall/internal/adapter/driven/persistence/memory"
	handler "github.com/Wyydra/yacall/internal/adapter/driving/http"
	"github.com/Wyydra/yacall/internal/config"
	"github.com/Wyydra/yacall/internal/core/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	cfg.SetupLogger()

	registry := memory.NewRoomRegistry()
	hub := ws.NewHub()

	relayService := service.NewRelayService(registry, hub)
	roomService := service.NewRoomService(registry, hub, relayService, service.RoomOptions{
		MaxMembers:     cfg.MaxRoomMembers,
		NotifyPeerLeft: cfg.NotifyPeerLeft,
	})
	h := handler.NewHandler(cfg, roomService, relayService, hub)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.NewRouter(),
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Int("max_room_members", cfg.MaxRoomMembers).
			Strs("stun_servers", cfg.STUNServers).
			Msg("Starting signaling server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Upgraded connections are not tracked by Shutdown.
	hub.Stop()
	log.Info().Msg("Server exited")
}
