// Package clock provides ports.Clock implementations for live playback, scaled
// playback, dry runs and tests.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/reel/pkg/ports"
)

// Real waits on the wall clock.
type Real struct{}

// WaitFor blocks for d or until ctx is done.
func (Real) WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Scaled wraps another clock and multiplies every wait by 1/Speed.
// A Speed of 2 plays the timeline twice as fast.
type Scaled struct {
	Base  ports.Clock
	Speed float64
}

// WaitFor waits d/Speed on the base clock. A non-positive Speed means real time.
func (s Scaled) WaitFor(ctx context.Context, d time.Duration) error {
	if s.Speed > 0 && s.Speed != 1 {
		d = time.Duration(float64(d) / s.Speed)
	}
	return s.Base.WaitFor(ctx, d)
}

// Instant never blocks. Useful for dry runs that only need the call order.
type Instant struct{}

func (Instant) WaitFor(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Manual is a virtual clock: waits return immediately and advance Now.
// Safe for concurrent use.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	waits []time.Duration
}

// NewManual creates a virtual clock at zero.
func NewManual() *Manual {
	return &Manual{}
}

// WaitFor records d and advances the virtual time.
func (m *Manual) WaitFor(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
	m.waits = append(m.waits, d)
	return nil
}

// Now returns the total virtual time waited.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Waits returns every wait in the order it was requested.
func (m *Manual) Waits() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.waits))
	copy(out, m.waits)
	return out
}
