package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPhaseEnter EventType = "phase_enter"
	EventLine       EventType = "line"
	EventEffect     EventType = "effect"
	EventThrottle   EventType = "throttle"
	EventResult     EventType = "result"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ReadingID string    `json:"reading_id,omitempty"`
}

// PhaseEvent is emitted on every phase transition.
type PhaseEvent struct {
	EventBase
	From Phase `json:"from"`
	To   Phase `json:"to"`
}

// LineEvent is emitted for every classified window.
type LineEvent struct {
	EventBase
	Position int  `json:"position"`
	Related  bool `json:"related"` // Second, short-window pass
	Line     Line `json:"line"`
	Samples  int  `json:"samples"`
	Maxima   int  `json:"maxima"`
	Minima   int  `json:"minima"`
}

// EffectEvent is emitted for every effect sent to the Actuator.
type EffectEvent struct {
	EventBase
	Effect  Effect `json:"effect"`
	IsError bool   `json:"is_error,omitempty"`
}

// ThrottleEvent is emitted after every usage counter increment.
type ThrottleEvent struct {
	EventBase
	Value int  `json:"value"`
	Alert bool `json:"alert"`
}

// ResultEvent is emitted when a reading is published.
type ResultEvent struct {
	EventBase
	Primary  Hexagram      `json:"primary"`
	Related  Hexagram      `json:"related"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for observability. Nil fields are skipped.
type LifecycleHooks struct {
	OnPhaseEnter func(context.Context, *PhaseEvent)
	OnLine       func(context.Context, *LineEvent)
	OnEffect     func(context.Context, *EffectEvent)
	OnThrottle   func(context.Context, *ThrottleEvent)
	OnResult     func(context.Context, *ResultEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnPhaseEnter: chain(h.OnPhaseEnter, other.OnPhaseEnter),
		OnLine:       chain(h.OnLine, other.OnLine),
		OnEffect:     chain(h.OnEffect, other.OnEffect),
		OnThrottle:   chain(h.OnThrottle, other.OnThrottle),
		OnResult:     chain(h.OnResult, other.OnResult),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

type readingIDKey struct{}

// WithReadingID returns a context carrying the current reading ID for event correlation.
func WithReadingID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, readingIDKey{}, id)
}

// ReadingIDFrom returns the reading ID stored by WithReadingID, or "".
func ReadingIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(readingIDKey{}).(string)
	return id
}
