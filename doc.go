/*
Package reel is a cutscene sequencer: it plays an authored timeline of dialogue
lines, timed pauses and staging cues against pluggable presentation backends.

A Sequence is immutable, authored data (YAML scripts via pkg/script, or Go via
pkg/dsl). The Sequencer walks it strictly in order on a single logical timeline,
calls the Presenter for every dialogue or visibility change, suspends on the Clock
for every wait, and notifies the CompletionSink exactly once when the last step
has been applied. Rendering, audio, animation and camera work belong to the host.

# Usage

	seq, err := dsl.New("rooftop").
		Show().
		Pause(1.0).
		Say("Kai", "Now!").
		Pause(8.0).
		Hide().
		Build()
	if err != nil {
		log.Fatal(err)
	}

	s, err := reel.New(
		reel.WithPresenter(myDialogueUI),
		reel.WithClock(clock.Real{}),
	)
	if err != nil {
		log.Fatal(err) // missing collaborators are a startup error
	}

	playback, err := s.Play(ctx, seq)
	if err != nil {
		log.Fatal(err)
	}

	// The host loop keeps running; wait (or select on Done) when needed.
	state, err := playback.Wait()

Hosts with their own update loop can use NewPlayer instead and advance the
timeline by the frame delta.
*/
package reel
