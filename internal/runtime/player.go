package runtime

import (
	"context"
	"time"

	"github.com/aretw0/reel/pkg/domain"
)

// Player exposes a playback as an explicit state machine stepped by an external
// driver, such as a host's update loop. It never blocks and never touches the Clock.
//
// A Player is not safe for concurrent use; drive it from a single goroutine.
type Player struct {
	run     *playback
	ctx     context.Context
	started bool
}

// NewPlayer prepares a tick-driven playback of seq. ctx is passed to hooks,
// the voice collaborator and the completion sink.
func (e *Engine) NewPlayer(ctx context.Context, playbackID string, seq *domain.Sequence) *Player {
	if seq == nil {
		seq = domain.NewSequence(domain.Meta{})
	}
	return &Player{
		run: &playback{engine: e, id: playbackID, seq: seq, state: domain.NewPlaybackState(seq)},
		ctx: ctx,
	}
}

// Advance moves the timeline forward by dt and reports whether the playback is over.
// Zero-duration steps run as soon as they are reached; time left over after a wait
// carries into the next one, so the sum of ticks matches the authored timeline.
func (p *Player) Advance(dt time.Duration) bool {
	run := p.run
	if run.state.Status.Terminal() {
		return true
	}
	if !p.started {
		p.started = true
		run.start(p.ctx)
	}
	if dt < 0 {
		dt = 0
	}

	for run.state.Index < run.seq.Len() {
		step := run.seq.At(run.state.Index)
		if !run.entered {
			run.enter(p.ctx, step)
		}

		if step.Kind == domain.StepWait {
			d := waitDuration(step)
			remaining := d - run.state.Elapsed
			if dt < remaining {
				run.state.Elapsed += dt
				run.state.Total += dt
				return false
			}
			dt -= remaining
			run.state.Elapsed = d
			run.state.Total += remaining
		} else {
			run.apply(p.ctx, step)
		}

		run.leave(p.ctx, step)
	}

	run.complete(p.ctx)
	return true
}

// Cancel stops the playback where it is. It is a no-op once the playback is over.
func (p *Player) Cancel() {
	if p.run.state.Status.Terminal() {
		return
	}
	p.run.cancel(p.ctx)
}

// State returns the current snapshot.
func (p *Player) State() domain.PlaybackState {
	return p.run.state
}

// Done reports whether the playback reached a terminal status.
func (p *Player) Done() bool {
	return p.run.state.Status.Terminal()
}
