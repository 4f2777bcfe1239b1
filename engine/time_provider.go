package engine

import (
	"context"
	"time"
)

// Clock paces the game loop
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx ends
	Sleep(ctx context.Context, d time.Duration) error
}

// TimeProvider is the real wall clock with monotonic readings
type TimeProvider struct{}

// NewTimeProvider creates a new monotonic time provider
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// Sleep waits for d, returning early with ctx.Err() on cancellation
func (p *TimeProvider) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
