package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/reel/pkg/domain"
)

// Call is one recorded collaborator invocation.
type Call struct {
	Method string
	Arg    any
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%v)", c.Method, c.Arg)
}

// Recorder implements ports.Presenter, ports.VoiceCue and ports.CompletionSink by
// recording every call in order. Safe for concurrent use.
type Recorder struct {
	mu          sync.Mutex
	calls       []Call
	completions []domain.Completion

	speaker string
	text    string
	visible bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(method string, arg any) {
	r.calls = append(r.calls, Call{Method: method, Arg: arg})
}

func (r *Recorder) SetSpeaker(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.speaker = name
	r.record("SetSpeaker", name)
}

func (r *Recorder) SetText(body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = body
	r.record("SetText", body)
}

func (r *Recorder) SetVisible(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = visible
	r.record("SetVisible", visible)
}

// Play records a voice line trigger as "speaker/voice".
func (r *Recorder) Play(_ context.Context, speaker, voice string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Voice", speaker+"/"+voice)
}

func (r *Recorder) SequenceComplete(_ context.Context, c domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = append(r.completions, c)
	r.record("SequenceComplete", c.Sequence)
	return nil
}

// Calls returns a copy of every recorded call.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Completions returns the received completion notifications.
func (r *Recorder) Completions() []domain.Completion {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Completion, len(r.completions))
	copy(out, r.completions)
	return out
}

// Displayed returns what the presenter currently shows.
func (r *Recorder) Displayed() (speaker, text string, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.speaker, r.text, r.visible
}

// Reset forgets every recorded call and the displayed state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.completions = nil
	r.speaker, r.text, r.visible = "", "", false
}
