package ports

import (
	"context"

	"github.com/aretw0/reel/pkg/domain"
)

// CompletionSink receives the SequenceComplete notification.
// It is called once per playback, after the last step's side effects are applied.
type CompletionSink interface {
	SequenceComplete(ctx context.Context, c domain.Completion) error
}

// CompletionFunc adapts a function to a CompletionSink.
type CompletionFunc func(ctx context.Context, c domain.Completion) error

func (f CompletionFunc) SequenceComplete(ctx context.Context, c domain.Completion) error {
	return f(ctx, c)
}
