package ports

import (
	"context"
	"time"
)

// Clock suspends the current flow for a wait step.
// WaitFor returns ctx.Err() if the context ends before d has elapsed.
type Clock interface {
	WaitFor(ctx context.Context, d time.Duration) error
}
