package reel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/internal/runtime"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/google/uuid"
)

// Sequencer is the high-level entry point for the reel library.
// It wraps the internal runtime and owns the presenter for the duration of a playback.
type Sequencer struct {
	runtime *runtime.Engine

	presenter ports.Presenter
	clock     ports.Clock
	voice     ports.VoiceCue
	sink      ports.CompletionSink
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	mu     sync.Mutex
	active *Playback
}

// Option defines a functional option for configuring the Sequencer.
type Option func(*Sequencer)

// WithPresenter sets the dialogue UI collaborator. Required.
func WithPresenter(p ports.Presenter) Option {
	return func(s *Sequencer) {
		s.presenter = p
	}
}

// WithClock sets the clock used by wait steps. Required.
func WithClock(c ports.Clock) Option {
	return func(s *Sequencer) {
		s.clock = c
	}
}

// WithVoice sets the optional per-line voice collaborator.
func WithVoice(v ports.VoiceCue) Option {
	return func(s *Sequencer) {
		s.voice = v
	}
}

// WithCompletionSink sets the receiver of SequenceComplete notifications.
// Defaults to logging the sequence's completion message.
func WithCompletionSink(sink ports.CompletionSink) Option {
	return func(s *Sequencer) {
		s.sink = sink
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Sequencer) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// New initializes a Sequencer. A missing Presenter or Clock is reported here,
// before any playback can start.
func New(opts ...Option) (*Sequencer, error) {
	s := &Sequencer{}
	for _, opt := range opts {
		opt(s)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithVoice(s.voice),
	}
	if s.sink != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithCompletionSink(s.sink))
	}

	engine, err := runtime.NewEngine(s.presenter, s.clock, runtimeOpts...)
	if err != nil {
		return nil, err
	}
	s.runtime = engine
	return s, nil
}

// Play starts seq on its own goroutine and returns a handle to it, so the caller's
// loop keeps running while the cutscene plays. Only one playback may own the
// presenter at a time; Play returns domain.ErrPlaybackActive otherwise.
//
// Cancelling ctx (or calling Playback.Cancel) stops the playback after the step in
// progress; the presenter keeps what the last completed step displayed.
func (s *Sequencer) Play(ctx context.Context, seq *domain.Sequence) (*Playback, error) {
	if seq == nil {
		seq = domain.NewSequence(domain.Meta{})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		select {
		case <-s.active.done:
		default:
			return nil, fmt.Errorf("cannot play %q: %w", seq.Name(), domain.ErrPlaybackActive)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	p := &Playback{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
		state:  domain.NewPlaybackState(seq),
	}
	s.active = p

	go func() {
		defer cancel()
		defer close(p.done)

		state, err := s.runtime.Run(runCtx, p.id, seq, p.observe)

		p.mu.Lock()
		p.state = state
		p.err = err
		p.mu.Unlock()
	}()

	return p, nil
}

// Run starts a playback of seq and blocks until it finishes, returning the final snapshot.
func (s *Sequencer) Run(ctx context.Context, seq *domain.Sequence) (domain.PlaybackState, error) {
	p, err := s.Play(ctx, seq)
	if err != nil {
		return domain.PlaybackState{}, err
	}
	return p.Wait()
}

// NewPlayer returns a tick-driven player for hosts that advance time themselves.
// Players bypass the Clock and the single-playback guard; the host owns scheduling.
func (s *Sequencer) NewPlayer(ctx context.Context, seq *domain.Sequence) *runtime.Player {
	return s.runtime.NewPlayer(ctx, uuid.NewString(), seq)
}

// Playback is a handle on one run of a sequence.
type Playback struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.RWMutex
	state domain.PlaybackState
	err   error
}

func (p *Playback) observe(state domain.PlaybackState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
}

// ID returns the unique identifier of the playback.
func (p *Playback) ID() string {
	return p.id
}

// Done is closed once the playback reaches a terminal status.
func (p *Playback) Done() <-chan struct{} {
	return p.done
}

// Cancel stops the playback. It is safe to call multiple times.
func (p *Playback) Cancel() {
	p.cancel()
}

// State returns the latest snapshot.
func (p *Playback) State() domain.PlaybackState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Wait blocks until the playback ends and returns its final snapshot.
// The error is non-nil only when the playback was cancelled.
func (p *Playback) Wait() (domain.PlaybackState, error) {
	<-p.done
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state, p.err
}
