package ws

import (
	"errors"

	"github.com/Wyydra/yacall/internal/core/domain"
)

var (
	ErrBackpressure = errors.New("send buffer full")
	ErrClosed       = errors.New("connection closed")
)

// Client is one live transport connection as the hub sees it.
type Client interface {
	ID() domain.ConnID
	// Send queues an encoded frame without blocking.
	Send(frame []byte) error
	Close() error
}
