package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/clock"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/dsl"
	"github.com/aretw0/reel/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scene() *domain.Sequence {
	return dsl.New("rooftop").
		Show().
		Pause(1).
		Say("Kai", "Now!").
		Animate("Kai", "Point_Urgent").
		Camera("pan to portal").
		Pause(2).
		Hide().
		MustBuild()
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	s, err := reel.New(
		reel.WithPresenter(memory.NewRecorder()),
		reel.WithClock(clock.Instant{}),
		reel.WithLifecycleHooks(m.Hooks()),
	)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), scene())
	require.NoError(t, err)

	expected := `
# HELP reel_steps_total Total number of steps executed
# TYPE reel_steps_total counter
reel_steps_total{kind="box"} 2
reel_steps_total{kind="cue"} 2
reel_steps_total{kind="dialogue"} 1
reel_steps_total{kind="wait"} 2
`
	assert.NoError(t, testutil.CollectAndCompare(reg, bytes.NewBufferString(expected), "reel_steps_total"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Started("rooftop")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Finished("rooftop", domain.StatusComplete)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Active()))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "reel_playback_duration_seconds"))
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "reel_cues_total"))
}

func TestMetrics_Cancelled(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	s, err := reel.New(
		reel.WithPresenter(memory.NewRecorder()),
		reel.WithClock(clock.Instant{}),
		reel.WithLifecycleHooks(m.Hooks()),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx, scene())
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Finished("rooftop", domain.StatusCancelled)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Finished("rooftop", domain.StatusComplete)))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := reel.New(
		reel.WithPresenter(memory.NewRecorder()),
		reel.WithClock(clock.Instant{}),
		reel.WithLifecycleHooks(domain.Combine(observability.LoggingHooks(logger))),
	)
	require.NoError(t, err)
	_, err = s.Run(context.Background(), scene())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "playback started")
	assert.Contains(t, out, "sequence=rooftop")
	assert.Contains(t, out, "target=Kai action=Point_Urgent")
	assert.Contains(t, out, "status=complete")
}
