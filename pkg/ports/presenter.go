package ports

import "context"

// Presenter renders dialogue UI state. The sequencer never renders on its own;
// it only calls these methods, always from the playback goroutine.
type Presenter interface {
	SetSpeaker(name string)
	SetText(body string)
	SetVisible(visible bool)
}

// VoiceCue triggers the voice line associated with a dialogue step.
type VoiceCue interface {
	Play(ctx context.Context, speaker, voice string)
}

// PresenterFuncs adapts plain functions to a Presenter. Nil fields are no-ops.
type PresenterFuncs struct {
	Speaker func(string)
	Text    func(string)
	Visible func(bool)
}

func (p PresenterFuncs) SetSpeaker(name string) {
	if p.Speaker != nil {
		p.Speaker(name)
	}
}

func (p PresenterFuncs) SetText(body string) {
	if p.Text != nil {
		p.Text(body)
	}
}

func (p PresenterFuncs) SetVisible(visible bool) {
	if p.Visible != nil {
		p.Visible(visible)
	}
}
