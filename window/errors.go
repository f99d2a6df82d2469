package window

import (
	"errors"
	"fmt"
)

// Errors returned by window constructors.
var (
	ErrNonPositiveSize = errors.New("window: size must be > 0")
	ErrEvenSize        = errors.New("window: size must be odd")
	ErrNegativeWeight  = errors.New("window: weights must be non-negative")
	ErrRagged          = errors.New("window: weight rows differ in length")
	ErrEmptyWindow     = errors.New("window: no nonzero weight outside the centre")
	ErrInvalidParam    = errors.New("window: invalid parameter")
	ErrUnknownType     = errors.New("window: unknown type")
)

func validateSize(height, width int) error {
	if height <= 0 || width <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrNonPositiveSize, height, width)
	}
	if height%2 == 0 || width%2 == 0 {
		return fmt.Errorf("%w: %dx%d", ErrEvenSize, height, width)
	}
	return nil
}

func validateSigma(sigma float64) error {
	if sigma <= 0 {
		return fmt.Errorf("%w: gaussian sigma must be > 0: %f", ErrInvalidParam, sigma)
	}
	return nil
}

func validateInnerRadius(inner float64, radius int) error {
	if inner < 0 || inner > float64(radius) {
		return fmt.Errorf("%w: annulus inner radius must be in [0,%d]: %f", ErrInvalidParam, radius, inner)
	}
	return nil
}
