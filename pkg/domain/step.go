package domain

import (
	"fmt"
	"time"
)

// StepKind discriminates the variants of a Step.
type StepKind string

const (
	StepWait     StepKind = "wait"
	StepDialogue StepKind = "dialogue"
	StepBox      StepKind = "box"
	StepCue      StepKind = "cue"
)

// CueKind classifies an annotation on the timeline.
type CueKind string

const (
	CueScene     CueKind = "scene"
	CueAnimation CueKind = "animation"
	CueCamera    CueKind = "camera"
	CueVFX       CueKind = "vfx"
	CueSFX       CueKind = "sfx"
)

// Valid reports whether k is part of the cue vocabulary.
func (k CueKind) Valid() bool {
	switch k {
	case CueScene, CueAnimation, CueCamera, CueVFX, CueSFX:
		return true
	}
	return false
}

// Dialogue is the payload of a dialogue step.
type Dialogue struct {
	Speaker string `json:"speaker" yaml:"speaker"`
	Text    string `json:"text" yaml:"text"`
	// Voice optionally names the voice line to trigger after the text is shown.
	Voice string `json:"voice,omitempty" yaml:"voice,omitempty"`
}

// Cue is a freeform annotation (animation trigger, camera move, VFX...).
// It has no runtime effect besides being reported to lifecycle hooks.
type Cue struct {
	Kind   CueKind `json:"kind" yaml:"kind"`
	Target string  `json:"target,omitempty" yaml:"target,omitempty"`
	Action string  `json:"action,omitempty" yaml:"action,omitempty"`
	Note   string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// Step is a tagged union over the timeline instructions.
// Only the field matching Kind is meaningful.
type Step struct {
	Kind     StepKind      `json:"kind"`
	Duration time.Duration `json:"duration,omitempty"`
	Dialogue Dialogue      `json:"dialogue,omitzero"`
	Visible  bool          `json:"visible,omitempty"`
	Cue      Cue           `json:"cue,omitzero"`
}

// Wait suspends the timeline for d.
func Wait(d time.Duration) Step {
	return Step{Kind: StepWait, Duration: d}
}

// Seconds is a convenience for Wait with a fractional number of seconds.
func Seconds(s float64) Step {
	return Wait(time.Duration(s * float64(time.Second)))
}

// Say shows a dialogue line.
func Say(speaker, text string) Step {
	return Step{Kind: StepDialogue, Dialogue: Dialogue{Speaker: speaker, Text: text}}
}

// SayWithVoice shows a dialogue line and triggers the named voice line.
func SayWithVoice(speaker, text, voice string) Step {
	return Step{Kind: StepDialogue, Dialogue: Dialogue{Speaker: speaker, Text: text, Voice: voice}}
}

// Box toggles the visibility of the dialogue surface.
func Box(visible bool) Step {
	return Step{Kind: StepBox, Visible: visible}
}

// Annotate places an inert cue on the timeline.
func Annotate(c Cue) Step {
	return Step{Kind: StepCue, Cue: c}
}

// String renders a short, human readable description of the step.
func (s Step) String() string {
	switch s.Kind {
	case StepWait:
		return fmt.Sprintf("wait %s", s.Duration)
	case StepDialogue:
		return fmt.Sprintf("say %s: %q", s.Dialogue.Speaker, s.Dialogue.Text)
	case StepBox:
		if s.Visible {
			return "box show"
		}
		return "box hide"
	case StepCue:
		out := fmt.Sprintf("cue %s", s.Cue.Kind)
		if s.Cue.Target != "" {
			out += " " + s.Cue.Target
		}
		if s.Cue.Action != "" {
			out += "." + s.Cue.Action
		}
		return out
	default:
		return fmt.Sprintf("unknown step %q", s.Kind)
	}
}
