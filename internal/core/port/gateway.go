package port

import (
	"context"

	"github.com/Wyydra/yacall/internal/core/domain"
)

// Gateway delivers named events to single connections. Delivery is
// fire-and-forget: an unknown or departed connection is not an error.
type Gateway interface {
	Emit(ctx context.Context, to domain.ConnID, event string, payload any) error
}
