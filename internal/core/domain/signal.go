package domain

import "encoding/json"

type SignalType string

const (
	SignalOffer        SignalType = "offer"
	SignalAnswer       SignalType = "answer"
	SignalICECandidate SignalType = "ice-candidate"
)

func (t SignalType) Valid() bool {
	switch t {
	case SignalOffer, SignalAnswer, SignalICECandidate:
		return true
	}
	return false
}

// Signal is one session-negotiation payload. The payload is an SDP or
// candidate blob that only browsers interpret; it is relayed as-is.
type Signal struct {
	Type    SignalType
	RoomID  RoomID
	Payload json.RawMessage
}

func NewSignal(t SignalType, roomID RoomID, payload json.RawMessage) Signal {
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return Signal{
		Type:    t,
		RoomID:  roomID,
		Payload: payload,
	}
}
