package service

import (
	"context"
	"fmt"

	"github.com/Wyydra/yacall/internal/core/domain"
	"github.com/Wyydra/yacall/internal/core/port"
	"github.com/rs/zerolog/log"
)

// RelayService forwards signaling and chat payloads to the other members of
// a room. The sender never gets its own message back.
type RelayService struct {
	rooms   port.RoomRegistry
	gateway port.Gateway
}

func NewRelayService(rooms port.RoomRegistry, gateway port.Gateway) *RelayService {
	return &RelayService{
		rooms:   rooms,
		gateway: gateway,
	}
}

// RelaySignal forwards sig.Payload verbatim and returns how many members it
// was handed to. A room with nobody else in it is not an error.
func (s *RelayService) RelaySignal(ctx context.Context, from domain.ConnID, sig domain.Signal) (int, error) {
	if !sig.Type.Valid() {
		return 0, fmt.Errorf("signal %q: %w", sig.Type, domain.ErrUnknownEvent)
	}
	if !s.rooms.IsMember(sig.RoomID, from) {
		return 0, fmt.Errorf("relay %s to %s: %w", sig.Type, sig.RoomID, domain.ErrNotMember)
	}
	return s.Broadcast(ctx, sig.RoomID, from, string(sig.Type), sig.Payload), nil
}

func (s *RelayService) RelayOffer(ctx context.Context, from domain.ConnID, roomID domain.RoomID, offer []byte) (int, error) {
	return s.RelaySignal(ctx, from, domain.NewSignal(domain.SignalOffer, roomID, offer))
}

func (s *RelayService) RelayAnswer(ctx context.Context, from domain.ConnID, roomID domain.RoomID, answer []byte) (int, error) {
	return s.RelaySignal(ctx, from, domain.NewSignal(domain.SignalAnswer, roomID, answer))
}

func (s *RelayService) RelayICECandidate(ctx context.Context, from domain.ConnID, roomID domain.RoomID, candidate []byte) (int, error) {
	return s.RelaySignal(ctx, from, domain.NewSignal(domain.SignalICECandidate, roomID, candidate))
}

// RelayChat fans a chat line out to everyone in the room but the sender,
// who renders its own copy locally.
func (s *RelayService) RelayChat(ctx context.Context, from domain.ConnID, roomID domain.RoomID, text string) (int, error) {
	if !s.rooms.IsMember(roomID, from) {
		return 0, fmt.Errorf("chat to %s: %w", roomID, domain.ErrNotMember)
	}
	return s.Broadcast(ctx, roomID, from, domain.EventMessage, domain.NewChatMessage(from, text)), nil
}

// Broadcast emits event to every member of roomID except the excluded
// connection. Delivery failures are logged and skipped.
func (s *RelayService) Broadcast(ctx context.Context, roomID domain.RoomID, except domain.ConnID, event string, payload any) int {
	delivered := 0
	for _, to := range s.rooms.MembersExcept(roomID, except) {
		if err := s.gateway.Emit(ctx, to, event, payload); err != nil {
			log.Warn().Err(err).
				Str("room_id", roomID.String()).
				Str("conn_id", to.String()).
				Str("event", event).
				Msg("Failed to relay event")
			continue
		}
		delivered++
	}

	log.Debug().
		Str("room_id", roomID.String()).
		Str("from", except.String()).
		Str("event", event).
		Int("recipients", delivered).
		Msg("Relayed event")
	return delivered
}
