package domain

// Event names on the wire.
const (
	EventCreateRoom   = "createRoom"
	EventRoomCreated  = "roomCreated"
	EventJoinRoom     = "joinRoom"
	EventChatMessage  = "chatMessage"
	EventMessage      = "message"
	EventOffer        = string(SignalOffer)
	EventAnswer       = string(SignalAnswer)
	EventICECandidate = string(SignalICECandidate)
	EventPeerLeft     = "peerLeft"
	EventWelcome      = "welcome"
	EventError        = "error"
)

// PeerLeft is the payload of EventPeerLeft.
type PeerLeft struct {
	SenderID string `json:"senderId"`
}

// Welcome is sent once per connection.
type Welcome struct {
	ConnectionID string `json:"connectionId"`
}

// ErrorNotice reports a rejected client event back to its sender.
type ErrorNotice struct {
	Event string `json:"event"`
	Error string `json:"error"`
}
