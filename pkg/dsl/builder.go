package dsl

import (
	"fmt"
	"time"

	"github.com/aretw0/reel/internal/validator"
	"github.com/aretw0/reel/pkg/domain"
)

// Builder manages the sequence construction.
type Builder struct {
	meta  domain.Meta
	steps []domain.Step
}

// New creates a new sequence builder.
func New(name string) *Builder {
	return &Builder{meta: domain.Meta{Name: name}}
}

// Title sets the display title.
func (b *Builder) Title(title string) *Builder {
	b.meta.Title = title
	return b
}

// Synopsis sets the long description.
func (b *Builder) Synopsis(text string) *Builder {
	b.meta.Synopsis = text
	return b
}

// Completion sets the message delivered with the completion notification.
func (b *Builder) Completion(msg string) *Builder {
	b.meta.CompletionMessage = msg
	return b
}

// Initially sets the authored visibility of the dialogue box before the first step.
func (b *Builder) Initially(visible bool) *Builder {
	b.meta.BoxVisible = visible
	return b
}

// Cast declares characters. Once a cast exists, every speaker must belong to it.
func (b *Builder) Cast(chars ...domain.Character) *Builder {
	b.meta.Cast = append(b.meta.Cast, chars...)
	return b
}

// Step appends raw steps.
func (b *Builder) Step(steps ...domain.Step) *Builder {
	b.steps = append(b.steps, steps...)
	return b
}

// Show makes the dialogue box visible.
func (b *Builder) Show() *Builder {
	return b.Step(domain.Box(true))
}

// Hide hides the dialogue box.
func (b *Builder) Hide() *Builder {
	return b.Step(domain.Box(false))
}

// Wait suspends the timeline for d.
func (b *Builder) Wait(d time.Duration) *Builder {
	return b.Step(domain.Wait(d))
}

// Pause suspends the timeline for a fractional number of seconds.
func (b *Builder) Pause(seconds float64) *Builder {
	return b.Step(domain.Seconds(seconds))
}

// Say shows a dialogue line.
func (b *Builder) Say(speaker, text string) *Builder {
	return b.Step(domain.Say(speaker, text))
}

// Voice attaches a voice line to the most recent dialogue step.
func (b *Builder) Voice(voice string) *Builder {
	for i := len(b.steps) - 1; i >= 0; i-- {
		if b.steps[i].Kind == domain.StepDialogue {
			b.steps[i].Dialogue.Voice = voice
			break
		}
	}
	return b
}

// Line appends the usual beat of a cutscene: a pause before the line,
// the line itself, then the time it stays on screen.
func (b *Builder) Line(speaker, text string, before, hold time.Duration) *Builder {
	if before > 0 {
		b.Wait(before)
	}
	b.Say(speaker, text)
	if hold > 0 {
		b.Wait(hold)
	}
	return b
}

// Cue places an inert annotation.
func (b *Builder) Cue(kind domain.CueKind, note string) *Builder {
	return b.Step(domain.Annotate(domain.Cue{Kind: kind, Note: note}))
}

// Animate places an animation trigger annotation for target.
func (b *Builder) Animate(target, action string) *Builder {
	return b.Step(domain.Annotate(domain.Cue{Kind: domain.CueAnimation, Target: target, Action: action}))
}

// Camera places a camera annotation.
func (b *Builder) Camera(note string) *Builder {
	return b.Cue(domain.CueCamera, note)
}

// Build validates and freezes the sequence.
func (b *Builder) Build() (*domain.Sequence, error) {
	seq := domain.NewSequence(b.meta, b.steps...)
	if err := validator.ValidateSequence(seq); err != nil {
		return nil, fmt.Errorf("failed to build sequence %q: %w", b.meta.Name, err)
	}
	return seq, nil
}

// MustBuild is like Build but panics on error. Intended for package-level fixtures.
func (b *Builder) MustBuild() *domain.Sequence {
	seq, err := b.Build()
	if err != nil {
		panic(err)
	}
	return seq
}
