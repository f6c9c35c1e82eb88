package memory

import (
	"sync"

	"github.com/Wyydra/yacall/internal/core/domain"
)

type memberSet map[domain.ConnID]struct{}

// RoomRegistry keeps membership in process memory, indexed both ways so
// that a disconnect can be cleaned up without scanning every room.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]memberSet
	conns map[domain.ConnID]map[domain.RoomID]struct{}
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[domain.RoomID]memberSet),
		conns: make(map[domain.ConnID]map[domain.RoomID]struct{}),
	}
}

func (r *RoomRegistry) Join(roomID domain.RoomID, connID domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		members = make(memberSet)
		r.rooms[roomID] = members
	}
	members[connID] = struct{}{}

	joined, ok := r.conns[connID]
	if !ok {
		joined = make(map[domain.RoomID]struct{})
		r.conns[connID] = joined
	}
	joined[roomID] = struct{}{}
}

func (r *RoomRegistry) Leave(roomID domain.RoomID, connID domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(roomID, connID)
}

func (r *RoomRegistry) LeaveAll(connID domain.ConnID) []domain.RoomID {
	r.mu.Lock()
	defer r.mu.Unlock()

	joined := r.conns[connID]
	left := make([]domain.RoomID, 0, len(joined))
	for roomID := range joined {
		left = append(left, roomID)
	}
	for _, roomID := range left {
		r.leaveLocked(roomID, connID)
	}
	return left
}

func (r *RoomRegistry) leaveLocked(roomID domain.RoomID, connID domain.ConnID) {
	if members, ok := r.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
	if joined, ok := r.conns[connID]; ok {
		delete(joined, roomID)
		if len(joined) == 0 {
			delete(r.conns, connID)
		}
	}
}

func (r *RoomRegistry) Members(roomID domain.RoomID) []domain.ConnID {
	return r.MembersExcept(roomID, "")
}

func (r *RoomRegistry) MembersExcept(roomID domain.RoomID, connID domain.ConnID) []domain.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[roomID]
	out := make([]domain.ConnID, 0, len(members))
	for id := range members {
		if id != connID {
			out = append(out, id)
		}
	}
	return out
}

func (r *RoomRegistry) IsMember(roomID domain.RoomID, connID domain.ConnID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID][connID]
	return ok
}

func (r *RoomRegistry) RoomsOf(connID domain.ConnID) []domain.RoomID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	joined := r.conns[connID]
	out := make([]domain.RoomID, 0, len(joined))
	for id := range joined {
		out = append(out, id)
	}
	return out
}

func (r *RoomRegistry) Exists(roomID domain.RoomID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID]
	return ok
}

func (r *RoomRegistry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
