package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Wyydra/yacall/internal/core/domain"
)

type emitted struct {
	to      domain.ConnID
	event   string
	payload any
}

type fakeGateway struct {
	mu     sync.Mutex
	events []emitted
	fail   map[domain.ConnID]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{fail: make(map[domain.ConnID]bool)}
}

func (g *fakeGateway) Emit(ctx context.Context, to domain.ConnID, event string, payload any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail[to] {
		return errors.New("connection gone")
	}
	g.events = append(g.events, emitted{to: to, event: event, payload: payload})
	return nil
}

func (g *fakeGateway) to(id domain.ConnID) []emitted {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []emitted
	for _, e := range g.events {
		if e.to == id {
			out = append(out, e)
		}
	}
	return out
}

func (g *fakeGateway) reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = nil
}
