package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Wyydra/yacall/internal/core/domain"
	"github.com/Wyydra/yacall/internal/core/port"
	"github.com/rs/zerolog/log"
)

type RoomOptions struct {
	// MaxMembers caps room size. Zero means no cap.
	MaxMembers int
	// NotifyPeerLeft tells the remaining members when someone goes away.
	NotifyPeerLeft bool
}

func DefaultRoomOptions() RoomOptions {
	return RoomOptions{
		MaxMembers:     2,
		NotifyPeerLeft: true,
	}
}

// RoomService drives the per-connection lifecycle: create, join and
// disconnect. It is the only writer of the registry.
type RoomService struct {
	// mu makes a capacity check and the join that follows it atomic.
	mu sync.Mutex

	rooms   port.RoomRegistry
	gateway port.Gateway
	relay   *RelayService
	opts    RoomOptions
}

func NewRoomService(rooms port.RoomRegistry, gateway port.Gateway, relay *RelayService, opts RoomOptions) *RoomService {
	return &RoomService{
		rooms:   rooms,
		gateway: gateway,
		relay:   relay,
		opts:    opts,
	}
}

// CreateRoom allocates a fresh room, moves connID into it and replies to
// connID alone with the new id.
func (s *RoomService) CreateRoom(ctx context.Context, connID domain.ConnID) (domain.RoomID, error) {
	roomID := domain.NewRoomID()

	s.mu.Lock()
	s.leaveAllLocked(ctx, connID)
	s.rooms.Join(roomID, connID)
	s.mu.Unlock()

	log.Info().Str("room_id", roomID.String()).Str("conn_id", connID.String()).Msg("Room created")

	if err := s.gateway.Emit(ctx, connID, domain.EventRoomCreated, roomID.String()); err != nil {
		return roomID, fmt.Errorf("reply room created: %w", err)
	}
	return roomID, nil
}

// JoinRoom puts connID into roomID, creating the room if nobody is in it
// yet, and announces the newcomer to the members already there.
func (s *RoomService) JoinRoom(ctx context.Context, connID domain.ConnID, roomID domain.RoomID) error {
	if roomID == "" {
		return domain.ErrInvalidRoomID
	}

	s.mu.Lock()
	if s.rooms.IsMember(roomID, connID) {
		s.mu.Unlock()
		return nil
	}
	if s.opts.MaxMembers > 0 && len(s.rooms.Members(roomID)) >= s.opts.MaxMembers {
		s.mu.Unlock()
		return fmt.Errorf("join %s: %w", roomID, domain.ErrRoomFull)
	}
	s.leaveAllLocked(ctx, connID)
	s.rooms.Join(roomID, connID)
	s.mu.Unlock()

	log.Info().Str("room_id", roomID.String()).Str("conn_id", connID.String()).Msg("Client joined room")

	s.relay.Broadcast(ctx, roomID, connID, domain.EventMessage, domain.NewSystemNotice(domain.JoinNotice))
	return nil
}

// Disconnect drops connID from every room it was in. Empty rooms vanish
// with their last member.
func (s *RoomService) Disconnect(ctx context.Context, connID domain.ConnID) {
	s.mu.Lock()
	left := s.leaveAllLocked(ctx, connID)
	s.mu.Unlock()

	log.Info().Str("conn_id", connID.String()).Int("rooms_left", len(left)).Msg("Client disconnected")
}

func (s *RoomService) leaveAllLocked(ctx context.Context, connID domain.ConnID) []domain.RoomID {
	left := s.rooms.LeaveAll(connID)
	for _, roomID := range left {
		log.Info().Str("room_id", roomID.String()).Str("conn_id", connID.String()).Msg("Client left room")
		if s.opts.NotifyPeerLeft {
			s.relay.Broadcast(ctx, roomID, connID, domain.EventPeerLeft, domain.PeerLeft{SenderID: connID.String()})
		}
	}
	return left
}

func (s *RoomService) RoomCount() int {
	return s.rooms.RoomCount()
}
