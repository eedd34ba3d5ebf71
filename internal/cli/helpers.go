package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal arrived.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createDebugHooks logs every lifecycle event at debug level.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPhaseEnter: func(ctx context.Context, e *domain.PhaseEvent) {
			logger.Debug("Enter Phase", "from", e.From, "phase", e.To, "reading_id", e.ReadingID)
		},
		OnLine: func(ctx context.Context, e *domain.LineEvent) {
			logger.Debug("Line",
				"position", e.Position,
				"related", e.Related,
				"line", e.Line,
				"samples", e.Samples,
				"reading_id", e.ReadingID,
			)
		},
		OnEffect: func(ctx context.Context, e *domain.EffectEvent) {
			if e.IsError {
				logger.Debug("Effect (Error)", "effect", e.Effect.String(), "reading_id", e.ReadingID)
			} else {
				logger.Debug("Effect", "effect", e.Effect.String(), "reading_id", e.ReadingID)
			}
		},
		OnThrottle: func(ctx context.Context, e *domain.ThrottleEvent) {
			logger.Debug("Throttle", "value", e.Value, "alert", e.Alert)
		},
	}
}
