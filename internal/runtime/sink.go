package runtime

import (
	"context"
	"log/slog"

	"github.com/aretw0/reel/pkg/domain"
)

// LogSink reports completion through the structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a completion sink backed by logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) SequenceComplete(ctx context.Context, c domain.Completion) error {
	msg := c.Message
	if msg == "" {
		msg = "sequence complete"
	}
	s.logger.InfoContext(ctx, msg,
		"playback_id", c.PlaybackID,
		"sequence", c.Sequence,
		"steps", c.Steps,
		"total", c.Total,
	)
	return nil
}
