package feature

import "errors"

var (
	// ErrFrameTooShort is returned when a frame has no more samples than the LPC order.
	ErrFrameTooShort = errors.New("feature: frame length must exceed LPC order")

	// ErrSingularPrediction is returned when the Levinson-Durbin prediction
	// error energy reaches exactly zero before the final order.
	ErrSingularPrediction = errors.New("feature: singular prediction (zero error energy)")

	// ErrInsufficientSteadyRegion is returned when the energy-threshold policy
	// cannot gather enough high-energy samples.
	ErrInsufficientSteadyRegion = errors.New("feature: insufficient steady region")
)
