package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dkuanyshbaev/ioracle-core/internal/logging"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/dkuanyshbaev/ioracle-core/pkg/ports"
)

// DefaultPresentDwell holds a displayed result before returning to Idle.
const DefaultPresentDwell = 8 * time.Second

// Gate reports whether a read was requested since the last poll.
type Gate interface {
	Poll(ctx context.Context) bool
}

// Acquirer produces one reading.
type Acquirer interface {
	Acquire(ctx context.Context) (primary, related domain.Hexagram)
}

// Publisher delivers a finished reading.
type Publisher interface {
	Publish(ctx context.Context, primary, related domain.Hexagram) error
}

// Controller drives the reading cycle.
type Controller struct {
	gate      Gate
	acquirer  Acquirer
	publisher Publisher
	actuator  ports.Actuator

	presentDwell time.Duration
	newID        func() string

	session domain.Session
	started time.Time
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// Option configures the Controller.
type Option func(*Controller)

// WithPresentDwell overrides DefaultPresentDwell.
func WithPresentDwell(d time.Duration) Option {
	return func(c *Controller) {
		c.presentDwell = d
	}
}

// WithLogger configures a logger for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithIDGenerator overrides the reading ID source (uuid by default).
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) {
		c.newID = gen
	}
}

// NewController creates a Controller resting in Idle.
func NewController(gate Gate, acquirer Acquirer, publisher Publisher, actuator ports.Actuator, opts ...Option) *Controller {
	c := &Controller{
		gate:         gate,
		acquirer:     acquirer,
		publisher:    publisher,
		actuator:     actuator,
		presentDwell: DefaultPresentDwell,
		newID:        uuid.NewString,
		session:      domain.NewSession(),
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns a copy of the current session.
// It is not safe to call concurrently with Run; observers use hooks instead.
func (c *Controller) Session() domain.Session {
	return c.session
}

// Run turns the cycle until ctx is cancelled while Idle.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("Controller started", "phase", c.session.Phase)
	for {
		if c.session.Phase == domain.PhaseIdle && ctx.Err() != nil {
			c.logger.Info("Controller stopped")
			return nil
		}
		c.Turn(ctx)
	}
}

// Turn performs the work of the current phase and advances when it is done.
// An Idle turn without a trigger leaves the phase unchanged.
func (c *Controller) Turn(ctx context.Context) {
	switch c.session.Phase {
	case domain.PhaseIdle:
		c.idle(ctx)
	case domain.PhaseAcquire:
		c.acquire(ctx)
	case domain.PhasePresent:
		c.present(ctx)
	}
}

func (c *Controller) idle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !c.gate.Poll(ctx) {
		c.render(ctx, domain.RenderCommand{Kind: domain.RenderResting})
		return
	}

	c.session.ReadingID = c.newID()
	c.logger.Info("Reading requested", "reading_id", c.session.ReadingID)
	c.advance(ctx)
}

func (c *Controller) acquire(ctx context.Context) {
	ctx = c.readingContext(ctx)
	c.started = time.Now()

	c.render(ctx, domain.RenderCommand{Kind: domain.RenderClear})
	c.session.Primary, c.session.Related = c.acquirer.Acquire(ctx)
	c.advance(ctx)
}

func (c *Controller) present(ctx context.Context) {
	ctx = c.readingContext(ctx)
	s := c.session

	c.render(ctx, domain.RenderCommand{
		Kind:    domain.RenderDisplay,
		Primary: s.Primary,
		Related: s.Related,
	})

	if err := c.publisher.Publish(ctx, s.Primary, s.Related); err != nil {
		c.logger.Warn("Failed to publish result", "reading_id", s.ReadingID, "err", err)
	}

	elapsed := time.Since(c.started)
	c.logger.Info("Reading complete",
		"reading_id", s.ReadingID,
		"primary", s.Primary,
		"related", s.Related,
		"duration", elapsed,
	)
	if c.hooks.OnResult != nil {
		c.hooks.OnResult(ctx, &domain.ResultEvent{
			EventBase: c.event(domain.EventResult),
			Primary:   s.Primary,
			Related:   s.Related,
			Duration:  elapsed,
		})
	}

	if c.presentDwell > 0 {
		time.Sleep(c.presentDwell)
	}
	c.advance(ctx)
}

// advance applies the phase transition and reports it.
func (c *Controller) advance(ctx context.Context) {
	prev := c.session.Phase
	c.session = c.session.Next()

	c.logger.Debug("Phase transition", "from", prev, "phase", c.session.Phase, "reading_id", c.session.ReadingID)
	if c.hooks.OnPhaseEnter != nil {
		c.hooks.OnPhaseEnter(ctx, &domain.PhaseEvent{
			EventBase: c.event(domain.EventPhaseEnter),
			From:      prev,
			To:        c.session.Phase,
		})
	}
}

// readingContext detaches the reading from shutdown and tags it with its ID.
func (c *Controller) readingContext(ctx context.Context) context.Context {
	return domain.WithReadingID(context.WithoutCancel(ctx), c.session.ReadingID)
}

func (c *Controller) render(ctx context.Context, cmd domain.RenderCommand) {
	if err := c.actuator.Render(ctx, cmd); err != nil {
		c.logger.Warn("Render failed", "kind", cmd.Kind, "err", err)
	}
}

func (c *Controller) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		ReadingID: c.session.ReadingID,
	}
}
