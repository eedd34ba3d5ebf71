package observability

import (
	"context"
	"sync"
	"time"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// StatusSnapshot is the JSON body of /status.
type StatusSnapshot struct {
	Phase         domain.Phase    `json:"phase"`
	ReadingID     string          `json:"reading_id,omitempty"`
	Readings      int             `json:"readings"`
	LastPrimary   domain.Hexagram `json:"last_primary,omitempty"`
	LastRelated   domain.Hexagram `json:"last_related,omitempty"`
	LastReadingAt *time.Time      `json:"last_reading_at,omitempty"`
	ThrottleValue int             `json:"throttle_value"`
	ThrottleAlert bool            `json:"throttle_alert"`
	Uptime        string          `json:"uptime"`
}

// Status tracks the latest phase and result as seen through hooks.
type Status struct {
	mu      sync.RWMutex
	snap    StatusSnapshot
	started time.Time
	now     func() time.Time
}

// NewStatus creates a Status starting in Idle.
func NewStatus() *Status {
	return &Status{
		snap:    StatusSnapshot{Phase: domain.PhaseIdle},
		started: time.Now(),
		now:     time.Now,
	}
}

// Snapshot returns a copy of the current status.
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap
	snap.Uptime = s.now().Sub(s.started).Truncate(time.Second).String()
	return snap
}

// Hooks returns the lifecycle hooks that update the status.
func (s *Status) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPhaseEnter: func(_ context.Context, e *domain.PhaseEvent) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.snap.Phase = e.To
			s.snap.ReadingID = e.ReadingID
		},
		OnThrottle: func(_ context.Context, e *domain.ThrottleEvent) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.snap.ThrottleValue = e.Value
			s.snap.ThrottleAlert = e.Alert
		},
		OnResult: func(_ context.Context, e *domain.ResultEvent) {
			s.mu.Lock()
			defer s.mu.Unlock()
			at := e.Timestamp
			s.snap.Readings++
			s.snap.LastPrimary = e.Primary
			s.snap.LastRelated = e.Related
			s.snap.LastReadingAt = &at
		},
	}
}
