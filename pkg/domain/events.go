package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPlaybackStart EventType = "playback_start"
	EventPlaybackEnd   EventType = "playback_end"
	EventStepEnter     EventType = "step_enter"
	EventStepLeave     EventType = "step_leave"
	EventCue           EventType = "cue"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	PlaybackID string    `json:"playback_id"`
	Sequence   string    `json:"sequence"`
}

// PlaybackEvent marks the start or end of a playback.
type PlaybackEvent struct {
	EventBase
	Status PlaybackStatus `json:"status"`
	Steps  int            `json:"steps"`
	Total  time.Duration  `json:"total"`
}

// StepEvent represents entry into or exit from a step.
type StepEvent struct {
	EventBase
	Index int  `json:"index"`
	Step  Step `json:"step"`
}

// LifecycleHooks defines callbacks for playback observability.
// Hooks run synchronously on the playback goroutine and must not block.
type LifecycleHooks struct {
	OnPlaybackStart func(context.Context, *PlaybackEvent)
	OnPlaybackEnd   func(context.Context, *PlaybackEvent)
	OnStepEnter     func(context.Context, *StepEvent)
	OnStepLeave     func(context.Context, *StepEvent)
	OnCue           func(context.Context, *StepEvent)
}

// Combine returns hooks that invoke every set callback of each input in order.
func Combine(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnPlaybackStart: func(ctx context.Context, e *PlaybackEvent) {
			for _, h := range hooks {
				if h.OnPlaybackStart != nil {
					h.OnPlaybackStart(ctx, e)
				}
			}
		},
		OnPlaybackEnd: func(ctx context.Context, e *PlaybackEvent) {
			for _, h := range hooks {
				if h.OnPlaybackEnd != nil {
					h.OnPlaybackEnd(ctx, e)
				}
			}
		},
		OnStepEnter: func(ctx context.Context, e *StepEvent) {
			for _, h := range hooks {
				if h.OnStepEnter != nil {
					h.OnStepEnter(ctx, e)
				}
			}
		},
		OnStepLeave: func(ctx context.Context, e *StepEvent) {
			for _, h := range hooks {
				if h.OnStepLeave != nil {
					h.OnStepLeave(ctx, e)
				}
			}
		},
		OnCue: func(ctx context.Context, e *StepEvent) {
			for _, h := range hooks {
				if h.OnCue != nil {
					h.OnCue(ctx, e)
				}
			}
		},
	}
}

// Completion is the notification delivered once a sequence finishes.
type Completion struct {
	PlaybackID string        `json:"playback_id"`
	Sequence   string        `json:"sequence"`
	Message    string        `json:"message"`
	Steps      int           `json:"steps"`
	Total      time.Duration `json:"total"`
	FinishedAt time.Time     `json:"finished_at"`
}
