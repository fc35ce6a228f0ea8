package domain

import "time"

// PlaybackStatus is the coarse progression of a playback.
type PlaybackStatus string

const (
	StatusNotStarted PlaybackStatus = "not_started"
	StatusRunning    PlaybackStatus = "running"
	StatusComplete   PlaybackStatus = "complete"
	StatusCancelled  PlaybackStatus = "cancelled" // Stopped before the last step
)

// Terminal reports whether no further steps will execute.
func (s PlaybackStatus) Terminal() bool {
	return s == StatusComplete || s == StatusCancelled
}

// PlaybackState is a snapshot of one playback.
type PlaybackState struct {
	// Sequence is the name of the sequence being played.
	Sequence string `json:"sequence"`

	// Index is the step currently executing (or the number of steps once complete).
	Index int `json:"index"`

	// Elapsed is the time spent inside the current wait step.
	Elapsed time.Duration `json:"elapsed"`

	// Total is the time spent waiting since the playback started.
	Total time.Duration `json:"total"`

	Status PlaybackStatus `json:"status"`

	// BoxVisible mirrors the last visibility applied to the presenter.
	BoxVisible bool `json:"box_visible"`
}

// NewPlaybackState creates the initial snapshot for seq.
func NewPlaybackState(seq *Sequence) PlaybackState {
	return PlaybackState{
		Sequence:   seq.Name(),
		Status:     StatusNotStarted,
		BoxVisible: seq.Meta().BoxVisible,
	}
}
