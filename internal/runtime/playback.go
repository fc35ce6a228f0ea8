package runtime

import (
	"context"
	"time"

	"github.com/aretw0/reel/pkg/domain"
)

// playback is the step executor shared by Engine.Run and Player.
type playback struct {
	engine  *Engine
	id      string
	seq     *domain.Sequence
	state   domain.PlaybackState
	entered bool
}

func (p *playback) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp:  p.engine.now(),
		Type:       t,
		PlaybackID: p.id,
		Sequence:   p.seq.Name(),
	}
}

func (p *playback) start(ctx context.Context) {
	p.state.Status = domain.StatusRunning
	p.engine.logger.DebugContext(ctx, "playback started",
		"playback_id", p.id, "sequence", p.seq.Name(), "steps", p.seq.Len())

	if h := p.engine.hooks.OnPlaybackStart; h != nil {
		h(ctx, &domain.PlaybackEvent{
			EventBase: p.base(domain.EventPlaybackStart),
			Status:    p.state.Status,
			Steps:     p.seq.Len(),
		})
	}
}

func (p *playback) enter(ctx context.Context, step domain.Step) {
	p.entered = true
	p.state.Elapsed = 0
	if h := p.engine.hooks.OnStepEnter; h != nil {
		h(ctx, p.stepEvent(domain.EventStepEnter, step))
	}
}

func (p *playback) leave(ctx context.Context, step domain.Step) {
	if h := p.engine.hooks.OnStepLeave; h != nil {
		h(ctx, p.stepEvent(domain.EventStepLeave, step))
	}
	p.entered = false
	p.state.Index++
	p.state.Elapsed = 0
}

func (p *playback) stepEvent(t domain.EventType, step domain.Step) *domain.StepEvent {
	return &domain.StepEvent{
		EventBase: p.base(t),
		Index:     p.state.Index,
		Step:      step,
	}
}

// waitDuration is how long a wait step holds the timeline. Negative durations hold for zero.
func waitDuration(step domain.Step) time.Duration {
	return max(step.Duration, 0)
}

// apply executes a zero-duration step.
func (p *playback) apply(ctx context.Context, step domain.Step) {
	e := p.engine
	switch step.Kind {
	case domain.StepDialogue:
		e.presenter.SetSpeaker(step.Dialogue.Speaker)
		e.presenter.SetText(step.Dialogue.Text)
		if e.voice != nil && step.Dialogue.Voice != "" {
			e.voice.Play(ctx, step.Dialogue.Speaker, step.Dialogue.Voice)
		}
		e.logger.DebugContext(ctx, "dialogue shown", "playback_id", p.id, "index", p.state.Index, "speaker", step.Dialogue.Speaker)
	case domain.StepBox:
		e.presenter.SetVisible(step.Visible)
		p.state.BoxVisible = step.Visible
		e.logger.DebugContext(ctx, "box visibility changed", "playback_id", p.id, "index", p.state.Index, "visible", step.Visible)
	case domain.StepCue:
		if h := e.hooks.OnCue; h != nil {
			h(ctx, p.stepEvent(domain.EventCue, step))
		}
		e.logger.DebugContext(ctx, "cue reached", "playback_id", p.id, "index", p.state.Index, "cue", step.String())
	default:
		e.logger.WarnContext(ctx, "unknown step kind skipped", "playback_id", p.id, "index", p.state.Index, "kind", step.Kind)
	}
}

func (p *playback) complete(ctx context.Context) {
	p.state.Status = domain.StatusComplete
	p.state.Index = p.seq.Len()
	p.state.Elapsed = 0

	meta := p.seq.Meta()
	c := domain.Completion{
		PlaybackID: p.id,
		Sequence:   meta.Name,
		Message:    meta.CompletionMessage,
		Steps:      p.seq.Len(),
		Total:      p.state.Total,
		FinishedAt: p.engine.now(),
	}
	// The playback already finished; a late cancellation must not drop the notification.
	if err := p.engine.sink.SequenceComplete(context.WithoutCancel(ctx), c); err != nil {
		p.engine.logger.ErrorContext(ctx, "completion sink failed", "playback_id", p.id, "sequence", meta.Name, "error", err)
	}
	p.end(ctx)
}

func (p *playback) cancel(ctx context.Context) {
	p.state.Status = domain.StatusCancelled
	p.engine.logger.InfoContext(ctx, "playback cancelled",
		"playback_id", p.id, "sequence", p.seq.Name(), "index", p.state.Index)
	p.end(ctx)
}

func (p *playback) end(ctx context.Context) {
	if h := p.engine.hooks.OnPlaybackEnd; h != nil {
		h(context.WithoutCancel(ctx), &domain.PlaybackEvent{
			EventBase: p.base(domain.EventPlaybackEnd),
			Status:    p.state.Status,
			Steps:     p.seq.Len(),
			Total:     p.state.Total,
		})
	}
}
