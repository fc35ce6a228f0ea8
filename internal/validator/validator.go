// Package validator checks authored sequences before they reach the sequencer.
package validator

import (
	"github.com/aretw0/reel/pkg/domain"
)

// ValidateSequence reports every authoring problem found in seq at once.
func ValidateSequence(seq *domain.Sequence) error {
	var errs []error
	meta := seq.Meta()

	if meta.Name == "" {
		errs = append(errs, &ValidationError{Step: -1, Key: "name", Reason: "required"})
	}

	cast := make(map[string]bool, len(meta.Cast))
	for _, c := range meta.Cast {
		if c.ID == "" {
			errs = append(errs, &ValidationError{Step: -1, Key: "cast", Reason: "character missing id"})
			continue
		}
		if cast[c.ID] {
			errs = append(errs, &ValidationError{Step: -1, Key: "cast", Reason: "duplicate character " + c.ID})
		}
		cast[c.ID] = true
	}

	for i, step := range seq.Steps() {
		switch step.Kind {
		case domain.StepWait:
			if step.Duration < 0 {
				errs = append(errs, &ValidationError{Step: i, Key: "wait", Reason: "duration must not be negative"})
			}
		case domain.StepDialogue:
			if step.Dialogue.Speaker == "" {
				errs = append(errs, &ValidationError{Step: i, Key: "speaker", Reason: "required"})
			} else if len(cast) > 0 && !cast[step.Dialogue.Speaker] {
				errs = append(errs, &ValidationError{Step: i, Key: "speaker", Reason: "not in cast: " + step.Dialogue.Speaker})
			}
		case domain.StepBox:
		case domain.StepCue:
			if !step.Cue.Kind.Valid() {
				errs = append(errs, &ValidationError{Step: i, Key: "cue.kind", Reason: "unknown cue kind " + string(step.Cue.Kind)})
			}
		default:
			errs = append(errs, &ValidationError{Step: i, Key: "kind", Reason: "unknown step kind " + string(step.Kind)})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
