/*
Package ports defines the driven ports (interfaces) of the reel sequencer.

These interfaces decouple the timeline walk from the host engine, allowing the same
sequence to be played against a terminal, an HTTP stream or a game UI.

# Key Interfaces

  - Presenter: renders dialogue UI state (speaker, body text, box visibility).
  - VoiceCue: triggers per-line voice audio. Optional.
  - Clock: suspends the playback for a wait step.
  - CompletionSink: receives exactly one notification per finished playback.
  - SequenceLoader: resolves authored sequences by name.
*/
package ports
