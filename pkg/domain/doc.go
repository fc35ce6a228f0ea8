/*
Package domain contains the core models of the reel sequencer.

It defines the authored timeline (Steps grouped into an immutable Sequence), the
runtime snapshot of a playback (PlaybackState) and the events emitted while a
playback advances. This package is kept pure and free of external dependencies
like I/O or rendering.

# Key Entities

  - Step: one discrete timeline instruction (wait, dialogue, box visibility, cue).
  - Sequence: the ordered, immutable list of Steps authored for one cutscene.
  - PlaybackState: step index, elapsed-in-step time and status of one playback.
  - Completion: the notification delivered once a playback finishes.
*/
package domain
