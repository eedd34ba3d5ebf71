// Package symbol acquires a primary and related hexagram from the sensor.
package symbol

import (
	"context"
	"log/slog"
	"time"

	"github.com/dkuanyshbaev/ioracle-core/internal/logging"
	"github.com/dkuanyshbaev/ioracle-core/pkg/classifier"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/dkuanyshbaev/ioracle-core/pkg/ports"
)

// DefaultColour is the LED colour of a freshly read line.
const DefaultColour = "rgb(51, 0, 180)"

// Timing holds the window and dwell durations of one acquisition.
type Timing struct {
	// PrimaryWindow is sampled once per primary line.
	PrimaryWindow time.Duration `yaml:"primary_window" mapstructure:"primary_window"`
	// RelatedWindow is sampled once per related line, right after the trigram completes.
	RelatedWindow time.Duration `yaml:"related_window" mapstructure:"related_window"`
	// LineDwell holds a rendered primary line before the next window.
	LineDwell time.Duration `yaml:"line_dwell" mapstructure:"line_dwell"`
}

// DefaultTiming returns the installation timings.
func DefaultTiming() Timing {
	return Timing{
		PrimaryWindow: 2 * time.Second,
		RelatedWindow: 1 * time.Second,
		LineDwell:     3 * time.Second,
	}
}

// Reactor resolves a completed trigram into effects.
type Reactor interface {
	Dispatch(ctx context.Context, trigram domain.Trigram) []domain.Effect
	Release(trigram domain.Trigram) []domain.Effect
}

// Builder drives the sampler, classifier and reactor through one reading.
type Builder struct {
	sampler  ports.Sampler
	actuator ports.Actuator
	reactor  Reactor

	params classifier.Params
	timing Timing
	colour string

	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures the Builder.
type Option func(*Builder)

// WithParams overrides classifier.DefaultParams.
func WithParams(p classifier.Params) Option {
	return func(b *Builder) {
		b.params = p
	}
}

// WithTiming overrides DefaultTiming.
func WithTiming(t Timing) Option {
	return func(b *Builder) {
		b.timing = t
	}
}

// WithColour sets the colour used to render primary lines.
func WithColour(colour string) Option {
	return func(b *Builder) {
		b.colour = colour
	}
}

// WithLogger configures a logger for the Builder.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// NewBuilder creates a Builder with dependencies.
func NewBuilder(sampler ports.Sampler, actuator ports.Actuator, reactor Reactor, opts ...Option) *Builder {
	b := &Builder{
		sampler:  sampler,
		actuator: actuator,
		reactor:  reactor,
		params:   classifier.DefaultParams(),
		timing:   DefaultTiming(),
		colour:   DefaultColour,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Acquire reads the lower and then the upper trigram and returns the primary
// hexagram together with its related hexagram. It always runs to completion:
// sampler and actuator failures are logged and count as empty windows and
// skipped effects respectively.
func (b *Builder) Acquire(ctx context.Context) (primary, related domain.Hexagram) {
	lower, lowerRelated := b.acquireTrigram(ctx, 1)
	upper, upperRelated := b.acquireTrigram(ctx, 4)

	primary = domain.NewHexagram(lower, upper)
	relatedOriginal := domain.NewHexagram(lowerRelated, upperRelated)

	// Both inputs are built from exactly six classified lines.
	related, _ = Related(primary, relatedOriginal)

	b.logger.Info("Hexagram acquired",
		"primary", primary,
		"related_original", relatedOriginal,
		"related", related,
	)
	return primary, related
}

// acquireTrigram reads the three primary lines starting at position first,
// fires the trigram's reaction, then takes the fast related pass and releases held pins.
func (b *Builder) acquireTrigram(ctx context.Context, first int) (trigram, related domain.Trigram) {
	lines := make([]domain.Line, 0, 3)
	for pos := first; pos < first+3; pos++ {
		line := b.readLine(ctx, pos, b.timing.PrimaryWindow, false)
		lines = append(lines, line)

		b.render(ctx, domain.RenderCommand{
			Kind:     domain.RenderLine,
			Position: pos,
			Line:     line,
			Colour:   b.colour,
		})
		if b.timing.LineDwell > 0 {
			time.Sleep(b.timing.LineDwell)
		}
	}
	trigram = domain.NewTrigram(lines...)

	b.logger.Info("Trigram complete", "trigram", trigram, "position", first)
	for _, e := range b.reactor.Dispatch(ctx, trigram) {
		b.apply(ctx, e)
	}

	relatedLines := make([]domain.Line, 0, 3)
	for pos := first; pos < first+3; pos++ {
		relatedLines = append(relatedLines, b.readLine(ctx, pos, b.timing.RelatedWindow, true))
	}
	related = domain.NewTrigram(relatedLines...)

	for _, e := range b.reactor.Release(trigram) {
		b.apply(ctx, e)
	}
	return trigram, related
}

func (b *Builder) readLine(ctx context.Context, pos int, window time.Duration, isRelated bool) domain.Line {
	samples, err := b.sampler.SampleWindow(ctx, window)
	if err != nil {
		b.logger.Warn("Sampling failed, using empty window", "position", pos, "related", isRelated, "err", err)
		samples = nil
	}

	maxima, minima := classifier.Extrema(samples, b.params)
	line := classifier.Classify(samples, b.params)

	b.logger.Debug("Line classified",
		"position", pos,
		"related", isRelated,
		"line", line,
		"samples", len(samples),
		"maxima", maxima,
		"minima", minima,
	)
	if b.hooks.OnLine != nil {
		b.hooks.OnLine(ctx, &domain.LineEvent{
			EventBase: b.event(ctx, domain.EventLine),
			Position:  pos,
			Related:   isRelated,
			Line:      line,
			Samples:   len(samples),
			Maxima:    maxima,
			Minima:    minima,
		})
	}
	return line
}

func (b *Builder) apply(ctx context.Context, e domain.Effect) {
	err := b.actuator.Apply(ctx, e)
	if err != nil {
		b.logger.Warn("Effect failed", "effect", e.String(), "err", err)
	} else {
		b.logger.Debug("Effect applied", "effect", e.String())
	}
	if b.hooks.OnEffect != nil {
		b.hooks.OnEffect(ctx, &domain.EffectEvent{
			EventBase: b.event(ctx, domain.EventEffect),
			Effect:    e,
			IsError:   err != nil,
		})
	}
}

func (b *Builder) render(ctx context.Context, cmd domain.RenderCommand) {
	if err := b.actuator.Render(ctx, cmd); err != nil {
		b.logger.Warn("Render failed", "kind", cmd.Kind, "position", cmd.Position, "err", err)
	}
}

func (b *Builder) event(ctx context.Context, t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		ReadingID: domain.ReadingIDFrom(ctx),
	}
}
