package http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Wyydra/yacall/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/yacall/internal/core/domain"
)

type chatDTO struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type offerDTO struct {
	RoomID string          `json:"roomId"`
	Offer  json.RawMessage `json:"offer"`
}

type answerDTO struct {
	RoomID string          `json:"roomId"`
	Answer json.RawMessage `json:"answer"`
}

type candidateDTO struct {
	RoomID    string          `json:"roomId"`
	Candidate json.RawMessage `json:"candidate"`
}

// decodeData leaves v untouched when the event carried no data.
func decodeData(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("bad payload: %w", err)
	}
	return nil
}

func (h *Handler) dispatch(ctx context.Context, from domain.ConnID, env ws.Envelope) error {
	switch env.Event {
	case domain.EventCreateRoom:
		_, err := h.RoomService.CreateRoom(ctx, from)
		return err

	case domain.EventJoinRoom:
		var raw string
		if err := decodeData(env.Data, &raw); err != nil {
			return err
		}
		roomID, err := domain.ParseRoomID(raw)
		if err != nil {
			return err
		}
		return h.RoomService.JoinRoom(ctx, from, roomID)

	case domain.EventChatMessage:
		var req chatDTO
		if err := decodeData(env.Data, &req); err != nil {
			return err
		}
		roomID, err := domain.ParseRoomID(req.RoomID)
		if err != nil {
			return err
		}
		_, err = h.RelayService.RelayChat(ctx, from, roomID, req.Message)
		return err

	case domain.EventOffer:
		var req offerDTO
		if err := decodeData(env.Data, &req); err != nil {
			return err
		}
		roomID, err := domain.ParseRoomID(req.RoomID)
		if err != nil {
			return err
		}
		_, err = h.RelayService.RelayOffer(ctx, from, roomID, req.Offer)
		return err

	case domain.EventAnswer:
		var req answerDTO
		if err := decodeData(env.Data, &req); err != nil {
			return err
		}
		roomID, err := domain.ParseRoomID(req.RoomID)
		if err != nil {
			return err
		}
		_, err = h.RelayService.RelayAnswer(ctx, from, roomID, req.Answer)
		return err

	case domain.EventICECandidate:
		var req candidateDTO
		if err := decodeData(env.Data, &req); err != nil {
			return err
		}
		roomID, err := domain.ParseRoomID(req.RoomID)
		if err != nil {
			return err
		}
		_, err = h.RelayService.RelayICECandidate(ctx, from, roomID, req.Candidate)
		return err

	default:
		return fmt.Errorf("%q: %w", env.Event, domain.ErrUnknownEvent)
	}
}
