package memory

import (
	"context"
	"sync"
	"time"
)

// Sampler implements ports.Sampler by replaying scripted windows in order.
// After the last window it starts over. It never sleeps.
type Sampler struct {
	windows [][]int
	next    int

	requested []time.Duration
	mu        sync.Mutex
}

// NewSampler creates a Sampler replaying windows. With no windows every call returns an empty window.
func NewSampler(windows ...[]int) *Sampler {
	return &Sampler{windows: windows}
}

// SampleWindow returns a copy of the next scripted window.
func (s *Sampler) SampleWindow(ctx context.Context, d time.Duration) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requested = append(s.requested, d)
	if len(s.windows) == 0 {
		return nil, nil
	}

	w := s.windows[s.next%len(s.windows)]
	s.next++
	return append([]int(nil), w...), nil
}

// Requested returns the durations asked for so far, in call order.
func (s *Sampler) Requested() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.requested...)
}
