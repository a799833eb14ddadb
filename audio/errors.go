package audio

import "errors"

var (
	// ErrInsufficientData is returned when an utterance has no samples,
	// or fewer than an analysis step needs.
	ErrInsufficientData = errors.New("audio: insufficient data")

	// ErrDegenerateSignal is returned when a signal has zero dynamic range
	// (every sample equal) and cannot be normalized.
	ErrDegenerateSignal = errors.New("audio: degenerate signal (zero dynamic range)")
)
