package antialias

import "slices"

// ControllerBuilderOption is a functional option applied to a controller during construction via NewController.
type ControllerBuilderOption func(*controller)

// WithDefault sets the strategy activated at construction and restored by ToggleDefault (TRAA if unset).
// The default cannot be Disabled.
//
// Parameters:
//   - s: the default strategy
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithDefault(s Strategy) ControllerBuilderOption {
	return func(c *controller) {
		c.defaultStrategy = s
	}
}

// WithOrder replaces the navigation order used by Cycle. Defaults to the registry order.
// The order must list every registered strategy exactly once.
//
// Parameters:
//   - order: the strategies in navigation order
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithOrder(order ...Strategy) ControllerBuilderOption {
	return func(c *controller) {
		c.order = slices.Clone(order)
	}
}

// WithObserver registers an observer before the default strategy is applied, so it also sees
// the initial activation.
//
// Parameters:
//   - o: the observer
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithObserver(o Observer) ControllerBuilderOption {
	return func(c *controller) {
		c.AddObserver(o)
	}
}
