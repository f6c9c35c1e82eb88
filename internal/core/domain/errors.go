package domain

import "errors"

var (
	ErrInvalidRoomID = errors.New("room id cannot be empty")
	ErrRoomFull      = errors.New("room is full")
	ErrNotMember     = errors.New("not a member of this room")
	ErrUnknownEvent  = errors.New("unknown event")
	ErrRateLimited   = errors.New("too many messages")
)
