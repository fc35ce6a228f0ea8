package domain

import "time"

// Character describes a member of the cast authored with a sequence.
type Character struct {
	ID          string `json:"id" yaml:"id"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// VoiceProfile is free text direction for voice actors or TTS.
	VoiceProfile string `json:"voice_profile,omitempty" yaml:"voice_profile,omitempty"`
	Voice        string `json:"voice,omitempty" yaml:"voice,omitempty"`
}

// Meta holds the authored, non-timeline data of a sequence.
type Meta struct {
	Name     string
	Title    string
	Synopsis string
	// CompletionMessage is delivered with the completion notification.
	CompletionMessage string
	// BoxVisible is the authored initial visibility of the dialogue surface.
	BoxVisible bool
	Cast       []Character
}

// Sequence is an ordered, immutable list of steps authored for one cutscene.
// Construct it with NewSequence; the zero value is an empty sequence.
type Sequence struct {
	meta  Meta
	steps []Step
}

// NewSequence copies steps and cast so later changes by the caller cannot leak in.
func NewSequence(meta Meta, steps ...Step) *Sequence {
	s := &Sequence{
		meta:  meta,
		steps: make([]Step, len(steps)),
	}
	copy(s.steps, steps)
	if meta.Cast != nil {
		s.meta.Cast = make([]Character, len(meta.Cast))
		copy(s.meta.Cast, meta.Cast)
	}
	return s
}

// Name returns the identifier of the sequence.
// Like every accessor it treats a nil *Sequence as empty.
func (s *Sequence) Name() string {
	if s == nil {
		return ""
	}
	return s.meta.Name
}

// Meta returns a copy of the authored metadata.
func (s *Sequence) Meta() Meta {
	if s == nil {
		return Meta{}
	}
	m := s.meta
	if m.Cast != nil {
		m.Cast = make([]Character, len(s.meta.Cast))
		copy(m.Cast, s.meta.Cast)
	}
	return m
}

// Len returns the number of steps.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.steps)
}

// At returns the i-th step. It panics if i is out of range.
func (s *Sequence) At(i int) Step { return s.steps[i] }

// Steps returns a copy of the steps.
func (s *Sequence) Steps() []Step {
	if s == nil {
		return nil
	}
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Character looks up a cast member by id.
func (s *Sequence) Character(id string) (Character, bool) {
	if s == nil {
		return Character{}, false
	}
	for _, c := range s.meta.Cast {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

// Duration is the sum of all wait steps.
func (s *Sequence) Duration() time.Duration {
	var total time.Duration
	if s == nil {
		return total
	}
	for _, st := range s.steps {
		if st.Kind == StepWait {
			total += st.Duration
		}
	}
	return total
}

// TimelineEntry is a step annotated with its start offset in the playback.
type TimelineEntry struct {
	Index  int
	Offset time.Duration
	Step   Step
}

// Timeline resolves the start offset of every step.
func (s *Sequence) Timeline() []TimelineEntry {
	if s == nil {
		return nil
	}
	entries := make([]TimelineEntry, 0, len(s.steps))
	var at time.Duration
	for i, st := range s.steps {
		entries = append(entries, TimelineEntry{Index: i, Offset: at, Step: st})
		if st.Kind == StepWait {
			at += st.Duration
		}
	}
	return entries
}
