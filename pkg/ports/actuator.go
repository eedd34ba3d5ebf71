package ports

import (
	"context"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// Actuator performs physical side-effects on behalf of the core.
// Calls are fire-and-forget: a returned error is only logged by the caller.
type Actuator interface {
	// Apply performs a pin, sound or fire effect.
	Apply(ctx context.Context, effect domain.Effect) error

	// Render updates the LED strips.
	Render(ctx context.Context, cmd domain.RenderCommand) error
}
