package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/reel/internal/runtime"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/clock"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() *domain.Sequence {
	return domain.NewSequence(domain.Meta{Name: "scenario", CompletionMessage: "done"},
		domain.Box(true),
		domain.Seconds(1.0),
		domain.Say("Delilah", "Can you feel them, Sky.ix?"),
		domain.Seconds(7.5),
		domain.Say("Sky.ix", "Those 'flaws' are everything that matters!"),
		domain.Seconds(6.0),
		domain.Box(false),
	)
}

func newEngine(t *testing.T, rec *memory.Recorder, clk ports.Clock, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	opts = append([]runtime.EngineOption{runtime.WithCompletionSink(rec), runtime.WithVoice(rec)}, opts...)
	engine, err := runtime.NewEngine(rec, clk, opts...)
	require.NoError(t, err)
	return engine
}

func TestNewEngine_RequiresCollaborators(t *testing.T) {
	_, err := runtime.NewEngine(nil, clock.Instant{})
	assert.ErrorIs(t, err, domain.ErrMissingPresenter)

	_, err = runtime.NewEngine(memory.NewRecorder(), nil)
	assert.ErrorIs(t, err, domain.ErrMissingClock)
}

func TestEngine_Run_Scenario(t *testing.T) {
	rec := memory.NewRecorder()
	clk := clock.NewManual()
	engine := newEngine(t, rec, clk)

	state, err := engine.Run(context.Background(), "pb-1", scenario(), nil)
	require.NoError(t, err)

	want := []memory.Call{
		{Method: "SetVisible", Arg: true},
		{Method: "SetSpeaker", Arg: "Delilah"},
		{Method: "SetText", Arg: "Can you feel them, Sky.ix?"},
		{Method: "SetSpeaker", Arg: "Sky.ix"},
		{Method: "SetText", Arg: "Those 'flaws' are everything that matters!"},
		{Method: "SetVisible", Arg: false},
		{Method: "SequenceComplete", Arg: "scenario"},
	}
	assert.Equal(t, want, rec.Calls())

	assert.Equal(t, domain.StatusComplete, state.Status)
	assert.Equal(t, 7, state.Index)
	assert.False(t, state.BoxVisible)
	assert.Equal(t, 14500*time.Millisecond, state.Total)
	assert.Equal(t, 14500*time.Millisecond, clk.Now(), "suspension must equal the sum of waits")
	assert.Equal(t, []time.Duration{time.Second, 7500 * time.Millisecond, 6 * time.Second}, clk.Waits())

	completions := rec.Completions()
	require.Len(t, completions, 1)
	assert.Equal(t, "pb-1", completions[0].PlaybackID)
	assert.Equal(t, "done", completions[0].Message)
	assert.Equal(t, 7, completions[0].Steps)
	assert.Equal(t, 14500*time.Millisecond, completions[0].Total)
}

func TestEngine_Run_Deterministic(t *testing.T) {
	rec := memory.NewRecorder()
	engine := newEngine(t, rec, clock.Instant{})
	seq := scenario()

	_, err := engine.Run(context.Background(), "first", seq, nil)
	require.NoError(t, err)
	first := rec.Calls()

	rec.Reset()
	_, err = engine.Run(context.Background(), "second", seq, nil)
	require.NoError(t, err)

	assert.Equal(t, first, rec.Calls())
}

func TestEngine_Run_VoiceAfterText(t *testing.T) {
	rec := memory.NewRecorder()
	engine := newEngine(t, rec, clock.Instant{})
	seq := domain.NewSequence(domain.Meta{Name: "voice"},
		domain.SayWithVoice("Kai", "now!", "kai_03"),
		domain.Say("Kai", "silent"),
	)

	_, err := engine.Run(context.Background(), "v", seq, nil)
	require.NoError(t, err)

	calls := rec.Calls()
	require.Len(t, calls, 6)
	assert.Equal(t, "SetSpeaker(Kai)", calls[0].String())
	assert.Equal(t, "SetText(now!)", calls[1].String())
	assert.Equal(t, "Voice(Kai/kai_03)", calls[2].String())
	assert.Equal(t, "SetSpeaker(Kai)", calls[3].String())
	assert.Equal(t, "SetText(silent)", calls[4].String())
}

func TestEngine_Run_NoVoiceConfigured(t *testing.T) {
	rec := memory.NewRecorder()
	engine, err := runtime.NewEngine(rec, clock.Instant{}, runtime.WithCompletionSink(rec))
	require.NoError(t, err)

	_, err = engine.Run(context.Background(), "v", domain.NewSequence(domain.Meta{Name: "v"},
		domain.SayWithVoice("Kai", "now!", "kai_03")), nil)
	require.NoError(t, err)

	for _, c := range rec.Calls() {
		assert.NotEqual(t, "Voice", c.Method)
	}
}

func TestEngine_Run_EmptySequence(t *testing.T) {
	rec := memory.NewRecorder()
	engine := newEngine(t, rec, clock.Instant{})

	state, err := engine.Run(context.Background(), "empty", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, state.Status)
	assert.Len(t, rec.Completions(), 1)
}

func TestEngine_Run_CuesHaveNoPresenterEffect(t *testing.T) {
	rec := memory.NewRecorder()
	var cues []string
	engine := newEngine(t, rec, clock.Instant{}, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnCue: func(_ context.Context, e *domain.StepEvent) {
			cues = append(cues, e.Step.Cue.Action)
		},
	}))
	seq := domain.NewSequence(domain.Meta{Name: "cues"},
		domain.Annotate(domain.Cue{Kind: domain.CueAnimation, Target: "Kai", Action: "Point_Urgent"}),
		domain.Annotate(domain.Cue{Kind: domain.CueCamera, Note: "Pan to Kai"}),
	)

	_, err := engine.Run(context.Background(), "c", seq, nil)
	require.NoError(t, err)

	assert.Equal(t, []memory.Call{{Method: "SequenceComplete", Arg: "cues"}}, rec.Calls())
	assert.Equal(t, []string{"Point_Urgent", ""}, cues)
}

func TestEngine_Run_Cancelled(t *testing.T) {
	rec := memory.NewRecorder()
	engine := newEngine(t, rec, clock.Real{})
	seq := domain.NewSequence(domain.Meta{Name: "long"},
		domain.Box(true),
		domain.Say("Kai", "hold on"),
		domain.Wait(time.Hour),
		domain.Say("Kai", "never shown"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	state, err := engine.Run(ctx, "cancel", seq, nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, domain.StatusCancelled, state.Status)
	assert.Equal(t, 2, state.Index, "index must stop at the interrupted wait")
	assert.Empty(t, rec.Completions(), "cancelled playbacks never complete")

	speaker, text, visible := rec.Displayed()
	assert.Equal(t, "Kai", speaker)
	assert.Equal(t, "hold on", text)
	assert.True(t, visible, "presenter keeps the last completed step's state")
}

func TestEngine_Run_CancelledBeforeStart(t *testing.T) {
	rec := memory.NewRecorder()
	engine := newEngine(t, rec, clock.Instant{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := engine.Run(ctx, "early", scenario(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.StatusCancelled, state.Status)
	assert.Equal(t, 0, state.Index)
	assert.Empty(t, rec.Calls())
}

func TestEngine_Run_ObserverSeesMonotonicIndex(t *testing.T) {
	rec := memory.NewRecorder()
	engine := newEngine(t, rec, clock.Instant{})

	var snapshots []domain.PlaybackState
	_, err := engine.Run(context.Background(), "obs", scenario(), func(s domain.PlaybackState) {
		snapshots = append(snapshots, s)
	})
	require.NoError(t, err)

	require.NotEmpty(t, snapshots)
	assert.Equal(t, domain.StatusRunning, snapshots[0].Status)
	assert.Equal(t, domain.StatusComplete, snapshots[len(snapshots)-1].Status)
	for i := 1; i < len(snapshots); i++ {
		assert.GreaterOrEqual(t, snapshots[i].Index, snapshots[i-1].Index)
	}
}

func TestEngine_Run_BoxVisibilityKeepsAuthoredValue(t *testing.T) {
	rec := memory.NewRecorder()
	engine := newEngine(t, rec, clock.Instant{})

	seq := domain.NewSequence(domain.Meta{Name: "vis", BoxVisible: true}, domain.Say("Kai", "hi"))
	state, err := engine.Run(context.Background(), "vis", seq, nil)
	require.NoError(t, err)
	assert.True(t, state.BoxVisible)
}

func TestEngine_Run_SinkErrorStillCompletes(t *testing.T) {
	rec := memory.NewRecorder()
	failing := ports.CompletionFunc(func(context.Context, domain.Completion) error {
		return errors.New("sink down")
	})
	engine, err := runtime.NewEngine(rec, clock.Instant{}, runtime.WithCompletionSink(failing))
	require.NoError(t, err)

	state, err := engine.Run(context.Background(), "s", scenario(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, state.Status)
}

func TestEngine_Run_NegativeWaitHoldsForZero(t *testing.T) {
	rec := memory.NewRecorder()
	clk := clock.NewManual()
	seq := domain.NewSequence(domain.Meta{Name: "neg"},
		domain.Wait(-time.Second),
		domain.Wait(time.Second),
		domain.Box(true),
	)

	state, err := newEngine(t, rec, clk).Run(context.Background(), "neg", seq, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Second, state.Total)
	assert.Equal(t, time.Second, clk.Now())
	assert.Equal(t, []time.Duration{0, time.Second}, clk.Waits())
}

func TestEngine_Run_TimestampsUseNow(t *testing.T) {
	rec := memory.NewRecorder()
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	var stamps []time.Time
	hooks := domain.LifecycleHooks{
		OnPlaybackStart: func(_ context.Context, e *domain.PlaybackEvent) { stamps = append(stamps, e.Timestamp) },
		OnPlaybackEnd:   func(_ context.Context, e *domain.PlaybackEvent) { stamps = append(stamps, e.Timestamp) },
	}
	engine := newEngine(t, rec, clock.Instant{},
		runtime.WithNow(func() time.Time { return fixed }),
		runtime.WithLifecycleHooks(hooks),
	)

	_, err := engine.Run(context.Background(), "pb", scenario(), nil)
	require.NoError(t, err)

	require.Len(t, rec.Completions(), 1)
	assert.Equal(t, fixed, rec.Completions()[0].FinishedAt)
	assert.Equal(t, []time.Time{fixed, fixed}, stamps)
}
