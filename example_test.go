package reel_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/pkg/clock"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/dsl"
	"github.com/aretw0/reel/pkg/ports"
)

// ExampleNew demonstrates playing a short sequence against a custom presenter.
func ExampleNew() {
	seq := dsl.New("example").
		Completion("example complete").
		Show().
		Pause(1.0).
		Say("Kai", "The energy spike is massive!").
		Pause(3.5).
		Hide().
		MustBuild()

	presenter := ports.PresenterFuncs{
		Speaker: func(name string) { fmt.Printf("[%s]\n", name) },
		Text:    func(body string) { fmt.Println(body) },
		Visible: func(v bool) { fmt.Println("box visible:", v) },
	}
	sink := ports.CompletionFunc(func(_ context.Context, c domain.Completion) error {
		fmt.Println(c.Message)
		return nil
	})

	s, err := reel.New(
		reel.WithPresenter(presenter),
		reel.WithClock(clock.Instant{}),
		reel.WithCompletionSink(sink),
	)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := s.Run(context.Background(), seq); err != nil {
		log.Fatal(err)
	}

	// Output:
	// box visible: true
	// [Kai]
	// The energy spike is massive!
	// box visible: false
	// example complete
}
