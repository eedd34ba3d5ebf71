package ports

import (
	"context"
	"time"
)

// Sampler gathers raw sensor readings.
type Sampler interface {
	// SampleWindow returns whatever readings arrived within d, possibly none.
	SampleWindow(ctx context.Context, d time.Duration) ([]int, error)
}
