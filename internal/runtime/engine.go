package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// Engine walks a sequence one step at a time against its collaborators.
// An Engine holds no playback state; every Run or Player owns its own snapshot.
type Engine struct {
	presenter ports.Presenter
	clock     ports.Clock
	voice     ports.VoiceCue
	sink      ports.CompletionSink
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithVoice sets the collaborator that plays per-line voice audio.
func WithVoice(v ports.VoiceCue) EngineOption {
	return func(e *Engine) {
		e.voice = v
	}
}

// WithCompletionSink sets the receiver of the SequenceComplete notification.
// When unset, completion is logged.
func WithCompletionSink(s ports.CompletionSink) EngineOption {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithNow overrides the wall clock used for event timestamps.
func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine. Presenter and clock are required; a missing one is
// a configuration error and no playback can be started.
func NewEngine(presenter ports.Presenter, clock ports.Clock, opts ...EngineOption) (*Engine, error) {
	if presenter == nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", domain.ErrMissingPresenter)
	}
	if clock == nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", domain.ErrMissingClock)
	}

	e := &Engine{
		presenter: presenter,
		clock:     clock,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sink == nil {
		e.sink = NewLogSink(e.logger)
	}
	return e, nil
}

// Observer receives a copy of the playback snapshot every time it changes.
type Observer func(domain.PlaybackState)

// Run plays seq to completion, blocking the caller for every wait step.
//
// If ctx ends mid-playback the step index stops advancing, the presenter is left as
// the last completed step left it, no completion is emitted and the returned state
// has StatusCancelled alongside ctx.Err().
func (e *Engine) Run(ctx context.Context, playbackID string, seq *domain.Sequence, observe Observer) (domain.PlaybackState, error) {
	if seq == nil {
		seq = domain.NewSequence(domain.Meta{})
	}
	if observe == nil {
		observe = func(domain.PlaybackState) {}
	}

	run := &playback{engine: e, id: playbackID, seq: seq, state: domain.NewPlaybackState(seq)}
	run.start(ctx)
	observe(run.state)

	for run.state.Index < seq.Len() {
		if err := ctx.Err(); err != nil {
			run.cancel(ctx)
			observe(run.state)
			return run.state, err
		}

		step := seq.At(run.state.Index)
		run.enter(ctx, step)

		if step.Kind == domain.StepWait {
			d := waitDuration(step)
			if err := e.clock.WaitFor(ctx, d); err != nil {
				run.cancel(ctx)
				observe(run.state)
				return run.state, err
			}
			run.state.Elapsed = d
			run.state.Total += d
		} else {
			run.apply(ctx, step)
		}

		run.leave(ctx, step)
		observe(run.state)
	}

	run.complete(ctx)
	observe(run.state)
	return run.state, nil
}
