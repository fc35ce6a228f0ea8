package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/reel/pkg/domain"
)

func TestValidateSequence(t *testing.T) {
	// Scenario A: Valid sequence
	valid := domain.NewSequence(domain.Meta{
		Name: "valid",
		Cast: []domain.Character{{ID: "Kai"}, {ID: "Sky.ix"}},
	},
		domain.Box(true),
		domain.Seconds(0.5),
		domain.Say("Kai", "now!"),
		domain.Annotate(domain.Cue{Kind: domain.CueCamera, Note: "pan"}),
	)
	if err := ValidateSequence(valid); err != nil {
		t.Errorf("Scenario A (Valid) failed: %v", err)
	}

	// Scenario B: Everything wrong at once
	broken := domain.NewSequence(domain.Meta{
		Cast: []domain.Character{{ID: "Kai"}, {ID: "Kai"}, {}},
	},
		domain.Wait(-time.Second),
		domain.Say("", "who?"),
		domain.Say("Delilah", "not cast"),
		domain.Annotate(domain.Cue{Kind: "lighting"}),
		domain.Step{Kind: "jump"},
	)

	err := ValidateSequence(broken)
	if err == nil {
		t.Fatal("Scenario B (Broken) should have failed, but got nil")
	}
	errs := ValidationErrors(err)
	if len(errs) != 8 {
		t.Fatalf("Expected 8 validation errors, got %d: %v", len(errs), err)
	}
	for _, want := range []string{
		`field "name": required`,
		"duplicate character Kai",
		"character missing id",
		"step 0: field \"wait\"",
		"step 1: field \"speaker\": required",
		"not in cast: Delilah",
		"unknown cue kind lighting",
		"unknown step kind jump",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %q, got: %v", want, err)
		}
	}
}

func TestValidateSequence_NoCastAllowsAnySpeaker(t *testing.T) {
	seq := domain.NewSequence(domain.Meta{Name: "open"}, domain.Say("Anyone", "hi"))
	if err := ValidateSequence(seq); err != nil {
		t.Errorf("Expected no error without a cast, got: %v", err)
	}
}

func TestAggregateError_Single(t *testing.T) {
	err := &AggregateError{Errors: []error{&ValidationError{Step: 2, Key: "wait", Reason: "bad"}}}
	if got := err.Error(); got != `step 2: field "wait": bad` {
		t.Errorf("unexpected message: %s", got)
	}
	if ValidationErrors(err) == nil {
		t.Error("expected ValidationErrors to unwrap the aggregate")
	}
}
