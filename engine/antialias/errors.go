package antialias

import "errors"

var (
	// ErrUnknownStrategy is returned when a requested strategy name is not part of the fixed set.
	ErrUnknownStrategy = errors.New("antialias: unknown strategy")

	// ErrInvalidState is returned when the controller's internal invariants do not hold,
	// e.g. the current strategy is missing from the navigation order.
	ErrInvalidState = errors.New("antialias: invalid controller state")
)
