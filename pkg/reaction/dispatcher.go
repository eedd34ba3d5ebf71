// Package reaction maps a completed trigram to the physical effects it triggers.
package reaction

import (
	"context"
	"log/slog"

	"github.com/dkuanyshbaev/ioracle-core/internal/logging"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// Sound clips played by the reaction table.
const (
	ClipThunder  = "thunder"
	ClipMountain = "mountain"
)

// Reaction is one row of the table.
type Reaction struct {
	Effects []domain.Effect
	// Pump marks trigrams whose pin drives a water pump; each dispatch counts one use.
	Pump bool
}

// Table maps the eight trigrams to their reactions.
var Table = map[domain.Trigram]Reaction{
	"111": {Effects: []domain.Effect{domain.ActivatePin(domain.PinA)}},
	"110": {Effects: []domain.Effect{domain.ActivatePin(domain.PinB)}, Pump: true},
	"101": {Effects: []domain.Effect{domain.TriggerFire()}},
	"011": {Effects: []domain.Effect{domain.ActivatePin(domain.PinC)}},
	"100": {Effects: []domain.Effect{domain.PlaySound(ClipThunder)}},
	"010": {Effects: []domain.Effect{domain.ActivatePin(domain.PinD)}, Pump: true},
	"001": {Effects: []domain.Effect{domain.ActivatePin(domain.PinE), domain.PlaySound(ClipMountain)}, Pump: true},
	"000": {Effects: []domain.Effect{domain.PlaySound(ClipMountain)}},
}

// Counter is the usage throttle consulted for pump trigrams.
type Counter interface {
	Increment(ctx context.Context) (value int, alert bool)
}

// Dispatcher resolves trigrams against Table.
type Dispatcher struct {
	counter Counter
	logger  *slog.Logger
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures a logger for the Dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a Dispatcher. counter may be nil, in which case pump usage is not counted.
func NewDispatcher(counter Counter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		counter: counter,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch returns the effects for trigram and, for pump trigrams, counts one use.
// Unknown trigrams yield no effects.
func (d *Dispatcher) Dispatch(ctx context.Context, trigram domain.Trigram) []domain.Effect {
	r, ok := Table[trigram]
	if !ok {
		d.logger.Warn("No reaction for trigram", "trigram", trigram)
		return nil
	}

	if r.Pump && d.counter != nil {
		value, alert := d.counter.Increment(ctx)
		d.logger.Info("Pump usage counted", "trigram", trigram, "value", value, "alert", alert)
	}

	return append([]domain.Effect(nil), r.Effects...)
}

// Release returns a ReleasePin for every pin Dispatch activates for trigram.
func (d *Dispatcher) Release(trigram domain.Trigram) []domain.Effect {
	var out []domain.Effect
	for _, e := range Table[trigram].Effects {
		if e.Kind == domain.EffectActivatePin {
			out = append(out, domain.ReleasePin(e.Pin))
		}
	}
	return out
}
