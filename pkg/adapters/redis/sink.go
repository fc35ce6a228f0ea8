// Package redis publishes SequenceComplete notifications to Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/reel/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Sink implements ports.CompletionSink. Every completion is published on a
// channel and pushed onto a capped history list. A per-playback marker key
// (SET NX) keeps a retried notification from being delivered twice.
type Sink struct {
	client    *backend.Client
	prefix    string
	channel   string
	history   int64
	markerTTL time.Duration
}

// Option configures the Sink.
type Option func(*Sink)

// WithPrefix sets the key prefix (default "reel:").
func WithPrefix(prefix string) Option {
	return func(s *Sink) {
		s.prefix = prefix
	}
}

// WithChannel sets the pub/sub channel, relative to the prefix (default "complete").
func WithChannel(channel string) Option {
	return func(s *Sink) {
		s.channel = channel
	}
}

// WithHistory caps the history list length. Zero disables history.
func WithHistory(n int64) Option {
	return func(s *Sink) {
		s.history = n
	}
}

// WithMarkerTTL sets how long a playback stays marked as delivered.
func WithMarkerTTL(ttl time.Duration) Option {
	return func(s *Sink) {
		s.markerTTL = ttl
	}
}

// NewFromClient creates a Sink using an existing Redis client.
func NewFromClient(client *backend.Client, opts ...Option) *Sink {
	s := &Sink{
		client:    client,
		prefix:    "reel:",
		channel:   "complete",
		history:   100,
		markerTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New creates a Sink connected to addr.
func New(addr string, opts ...Option) *Sink {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// Channel returns the fully qualified pub/sub channel name.
func (s *Sink) Channel() string {
	return s.prefix + s.channel
}

func (s *Sink) historyKey() string {
	return s.prefix + "history"
}

func (s *Sink) markerKey(playbackID string) string {
	return s.prefix + "delivered:" + playbackID
}

// SequenceComplete publishes c. Duplicate notifications for the same playback are dropped.
func (s *Sink) SequenceComplete(ctx context.Context, c domain.Completion) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal completion: %w", err)
	}

	if c.PlaybackID != "" {
		first, err := s.client.SetNX(ctx, s.markerKey(c.PlaybackID), c.Sequence, s.markerTTL).Result()
		if err != nil {
			return fmt.Errorf("failed to mark playback %s delivered: %w", c.PlaybackID, err)
		}
		if !first {
			return nil
		}
	}

	pipe := s.client.TxPipeline()
	pipe.Publish(ctx, s.Channel(), data)
	if s.history > 0 {
		pipe.LPush(ctx, s.historyKey(), data)
		pipe.LTrim(ctx, s.historyKey(), 0, s.history-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		if c.PlaybackID != "" {
			// Release the marker so a retry can deliver.
			s.client.Del(context.WithoutCancel(ctx), s.markerKey(c.PlaybackID))
		}
		return fmt.Errorf("failed to publish completion of %q: %w", c.Sequence, err)
	}
	return nil
}

// History returns up to n recent completions, newest first.
func (s *Sink) History(ctx context.Context, n int64) ([]domain.Completion, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := s.client.LRange(ctx, s.historyKey(), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read completion history: %w", err)
	}

	out := make([]domain.Completion, 0, len(raw))
	for _, item := range raw {
		var c domain.Completion
		if err := json.Unmarshal([]byte(item), &c); err != nil {
			return nil, fmt.Errorf("corrupt completion history entry: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Close releases the underlying Redis client.
func (s *Sink) Close() error {
	return s.client.Close()
}

// Subscribe returns a subscription to the completion channel.
// The caller must close it.
func (s *Sink) Subscribe(ctx context.Context) *backend.PubSub {
	return s.client.Subscribe(ctx, s.Channel())
}
