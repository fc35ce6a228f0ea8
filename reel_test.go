package reel_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/testutils"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/clock"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MissingCollaborators(t *testing.T) {
	_, err := reel.New(reel.WithClock(clock.Instant{}))
	assert.ErrorIs(t, err, domain.ErrMissingPresenter)

	_, err = reel.New(reel.WithPresenter(memory.NewRecorder()))
	assert.ErrorIs(t, err, domain.ErrMissingClock)
}

func TestSequencer_Play(t *testing.T) {
	rec := memory.NewRecorder()
	clk := clock.NewManual()
	s, err := reel.New(
		reel.WithPresenter(rec),
		reel.WithClock(clk),
		reel.WithCompletionSink(rec),
	)
	require.NoError(t, err)

	p, err := s.Play(context.Background(), testutils.Scenario())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID())

	state, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, state.Status)
	assert.Equal(t, state, p.State())

	assert.Equal(t, []string{
		"SetVisible(true)",
		"SetSpeaker(Delilah)",
		"SetText(...)",
		"SetSpeaker(Sky.ix)",
		"SetText(...)",
		"SetVisible(false)",
		"SequenceComplete(scenario)",
	}, callStrings(rec))
	assert.Equal(t, 14500*time.Millisecond, clk.Now())

	completions := rec.Completions()
	require.Len(t, completions, 1)
	assert.Equal(t, p.ID(), completions[0].PlaybackID)
}

func TestSequencer_Play_RejectsConcurrentPlayback(t *testing.T) {
	rec := memory.NewRecorder()
	s, err := reel.New(reel.WithPresenter(rec), reel.WithClock(clock.Real{}), reel.WithCompletionSink(rec))
	require.NoError(t, err)

	long := dsl.New("long").Show().Wait(time.Hour).MustBuild()
	first, err := s.Play(context.Background(), long)
	require.NoError(t, err)

	_, err = s.Play(context.Background(), testutils.Scenario())
	assert.ErrorIs(t, err, domain.ErrPlaybackActive)

	first.Cancel()
	state, err := first.Wait()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.StatusCancelled, state.Status)
	assert.Equal(t, 1, state.Index)
	assert.Empty(t, rec.Completions())

	// Once the first playback is over the presenter is free again.
	s2, err := s.Play(context.Background(), dsl.New("short").Show().MustBuild())
	require.NoError(t, err)
	_, err = s2.Wait()
	assert.NoError(t, err)
}

func TestSequencer_Play_HostKeepsRunning(t *testing.T) {
	rec := memory.NewRecorder()
	s, err := reel.New(reel.WithPresenter(rec), reel.WithClock(clock.Real{}), reel.WithCompletionSink(rec))
	require.NoError(t, err)

	seq := dsl.New("beat").Show().Wait(30 * time.Millisecond).Hide().MustBuild()
	p, err := s.Play(context.Background(), seq)
	require.NoError(t, err)

	frames := 0
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-p.Done():
			break loop
		case <-ticker.C:
			frames++
		}
	}
	assert.Greater(t, frames, 1, "the host loop must keep ticking during waits")
	assert.Equal(t, domain.StatusComplete, p.State().Status)
}

func TestSequencer_Run(t *testing.T) {
	rec := memory.NewRecorder()
	s, err := reel.New(reel.WithPresenter(rec), reel.WithClock(clock.Instant{}), reel.WithCompletionSink(rec))
	require.NoError(t, err)

	first, err := s.Run(context.Background(), testutils.Scenario())
	require.NoError(t, err)
	calls := callStrings(rec)

	rec.Reset()
	second, err := s.Run(context.Background(), testutils.Scenario())
	require.NoError(t, err)

	assert.Equal(t, calls, callStrings(rec), "replays must be identical")
	assert.Equal(t, first.Index, second.Index)
}

func TestSequencer_NewPlayer(t *testing.T) {
	rec := memory.NewRecorder()
	s, err := reel.New(reel.WithPresenter(rec), reel.WithClock(clock.Instant{}), reel.WithCompletionSink(rec))
	require.NoError(t, err)

	p := s.NewPlayer(context.Background(), testutils.Scenario())
	frames := 0
	for !p.Advance(time.Second / 60) {
		frames++
	}
	assert.InDelta(t, 14.5*60, frames, 2)
	assert.Len(t, rec.Completions(), 1)
}

func callStrings(rec *memory.Recorder) []string {
	var out []string
	for _, c := range rec.Calls() {
		out = append(out, c.String())
	}
	return out
}
