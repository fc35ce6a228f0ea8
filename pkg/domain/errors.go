package domain

import "errors"

// ErrMissingPresenter is returned at construction when no Presenter is configured.
var ErrMissingPresenter = errors.New("presenter is required")

// ErrMissingClock is returned at construction when no Clock is configured.
var ErrMissingClock = errors.New("clock is required")

// ErrPlaybackActive is returned when a playback is requested while another one
// still owns the presenter.
var ErrPlaybackActive = errors.New("playback already active")

// ErrSequenceNotFound is returned when a sequence name cannot be resolved.
var ErrSequenceNotFound = errors.New("sequence not found")
