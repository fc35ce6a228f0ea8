package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/presentation/tui"
	"github.com/aretw0/reel/pkg/adapters/redis"
	"github.com/aretw0/reel/pkg/adapters/terminal"
	"github.com/aretw0/reel/pkg/clock"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/observability"
	"github.com/aretw0/reel/pkg/ports"
)

// PlayOptions contains all the configuration for the play command.
type PlayOptions struct {
	File       string
	Scene      string
	ScriptsDir string

	Speed    float64
	Instant  bool
	Debug    bool
	Quiet    bool
	Markdown bool

	RedisAddr    string
	RedisPrefix  string
	RedisHistory int64

	Out io.Writer
	// Clock overrides the clock derived from Speed and Instant.
	Clock ports.Clock
}

// Play resolves the sequence and plays it to opts.Out. An interrupted playback
// is reported and is not an error.
func Play(ctx context.Context, opts PlayOptions) error {
	logger := createLogger(opts.Debug)

	seq, err := ResolveSequence(opts.File, opts.ScriptsDir, opts.Scene)
	if err != nil {
		return err
	}

	tty := IsTerminal(opts.Out)
	presenterOpts := []terminal.Option{terminal.WithLogger(logger)}
	if opts.Markdown {
		render, err := tui.NewRenderer(tty, terminalWidth(opts.Out, 80))
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		presenterOpts = append(presenterOpts, terminal.WithRenderer(render))
	}
	presenter := terminal.New(opts.Out, presenterOpts...)

	sinks := fanout{ports.CompletionFunc(func(_ context.Context, c domain.Completion) error {
		if !opts.Quiet {
			printSystemMessage(opts.Out, "%s", c.Message)
		}
		return nil
	})}
	if opts.RedisAddr != "" {
		rs := redis.New(opts.RedisAddr,
			redis.WithPrefix(opts.RedisPrefix),
			redis.WithHistory(opts.RedisHistory),
		)
		defer closeSink(logger, rs)
		sinks = append(sinks, rs)
	}

	sequencerOpts := []reel.Option{
		reel.WithPresenter(presenter),
		reel.WithVoice(presenter),
		reel.WithClock(playClock(opts)),
		reel.WithCompletionSink(sinks),
		reel.WithLogger(logger),
	}
	if opts.Debug {
		sequencerOpts = append(sequencerOpts, reel.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	s, err := reel.New(sequencerOpts...)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		title := seq.Meta().Title
		if title == "" {
			title = seq.Name()
		}
		tui.PrintBanner(opts.Out, title)
	}

	state, err := s.Run(ctx, seq)
	if isInterrupted(err) && !opts.Quiet {
		if sig := interruptSignal(ctx); sig != nil {
			printSystemMessage(opts.Out, "Interrupted (%v) at step %d/%d.", sig, state.Index, seq.Len())
		} else {
			printSystemMessage(opts.Out, "Interrupted at step %d/%d.", state.Index, seq.Len())
		}
	}
	return handleExecutionError(err)
}

func playClock(opts PlayOptions) ports.Clock {
	switch {
	case opts.Clock != nil:
		return opts.Clock
	case opts.Instant:
		return clock.Instant{}
	default:
		return scaledRealClock(opts.Speed)
	}
}

func scaledRealClock(speed float64) ports.Clock {
	return clock.Scaled{Base: clock.Real{}, Speed: speed}
}
