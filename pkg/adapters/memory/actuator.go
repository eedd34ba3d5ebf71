package memory

import (
	"context"
	"sync"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// Actuator implements ports.Actuator by recording every call.
// It is used by tests and by dry runs without hardware.
type Actuator struct {
	// Err, when set, is returned from every call after recording it.
	Err error

	effects []domain.Effect
	renders []domain.RenderCommand
	mu      sync.Mutex
}

// NewActuator creates an empty recorder.
func NewActuator() *Actuator {
	return &Actuator{}
}

// Apply records the effect.
func (a *Actuator) Apply(ctx context.Context, effect domain.Effect) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.effects = append(a.effects, effect)
	return a.Err
}

// Render records the command.
func (a *Actuator) Render(ctx context.Context, cmd domain.RenderCommand) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.renders = append(a.renders, cmd)
	return a.Err
}

// Effects returns the applied effects in order.
func (a *Actuator) Effects() []domain.Effect {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Effect(nil), a.effects...)
}

// Renders returns the render commands in order.
func (a *Actuator) Renders() []domain.RenderCommand {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.RenderCommand(nil), a.renders...)
}
