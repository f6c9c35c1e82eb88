package port

import "github.com/Wyydra/yacall/internal/core/domain"

// RoomRegistry tracks room membership. RoomService is its only writer;
// RelayService only reads from it.
type RoomRegistry interface {
	// Join is idempotent and creates the room on first join.
	Join(roomID domain.RoomID, connID domain.ConnID)
	// Leave is the single-room leave. It drops the room once it is empty.
	// The lifecycle service moves connections with LeaveAll, since a
	// connection is in at most one room.
	Leave(roomID domain.RoomID, connID domain.ConnID)
	// LeaveAll removes connID everywhere and returns the rooms it left.
	LeaveAll(connID domain.ConnID) []domain.RoomID

	Members(roomID domain.RoomID) []domain.ConnID
	MembersExcept(roomID domain.RoomID, connID domain.ConnID) []domain.ConnID
	IsMember(roomID domain.RoomID, connID domain.ConnID) bool
	RoomCount() int
}
