package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ConnID identifies one transport connection. It is assigned at connect
// time and carries no user identity.
type ConnID string

// RoomID is the opaque room token. Knowing it is enough to join the room.
type RoomID string

func NewConnID() ConnID {
	return ConnID(uuid.New().String())
}

// NewRoomID returns a random (v4) UUID string, 122 bits of entropy.
func NewRoomID() RoomID {
	return RoomID(uuid.New().String())
}

// ParseRoomID accepts any non-blank token as-is. Ids are not required to
// be UUIDs: the first join defines the room.
func ParseRoomID(s string) (RoomID, error) {
	if strings.TrimSpace(s) == "" {
		return "", ErrInvalidRoomID
	}
	return RoomID(s), nil
}

func (id ConnID) String() string {
	return string(id)
}

func (id RoomID) String() string {
	return string(id)
}
