package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/reel/pkg/domain"
)

// LoggingHooks reports playback boundaries at info level and steps at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPlaybackStart: func(ctx context.Context, e *domain.PlaybackEvent) {
			logger.InfoContext(ctx, "playback started",
				"playback_id", e.PlaybackID, "sequence", e.Sequence, "steps", e.Steps)
		},
		OnPlaybackEnd: func(ctx context.Context, e *domain.PlaybackEvent) {
			logger.InfoContext(ctx, "playback ended",
				"playback_id", e.PlaybackID, "sequence", e.Sequence, "status", e.Status)
		},
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"playback_id", e.PlaybackID, "index", e.Index, "step", e.Step.String())
		},
		OnCue: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "cue",
				"playback_id", e.PlaybackID, "kind", e.Step.Cue.Kind, "target", e.Step.Cue.Target, "action", e.Step.Cue.Action)
		},
	}
}
