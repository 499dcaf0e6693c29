package antialias

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
)

// RegistryBuilderOption is a functional option applied to a registry during construction via NewRegistry.
type RegistryBuilderOption func(*registry)

// WithPass supplies the pre-built pass of a discrete-pass strategy (TRAA, FXAA or SMAA).
// Supplying a pass for any other strategy makes NewRegistry fail.
//
// Parameters:
//   - s: the strategy the pass belongs to
//   - p: the fully constructed pass
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithPass(s Strategy, p postprocess.Pass) RegistryBuilderOption {
	return func(r *registry) {
		switch s {
		case TRAA, FXAA, SMAA:
			r.pendingPasses[s] = p
		default:
			r.optionFailures = append(r.optionFailures, fmt.Errorf("antialias: strategy %s does not use a pass", s))
		}
	}
}

// WithMultisampling sets the composer multisampling level used by the MSAA strategy.
// Defaults to DefaultMultisampling.
//
// Parameters:
//   - level: the number of samples (must be positive)
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithMultisampling(level int) RegistryBuilderOption {
	return func(r *registry) {
		r.multisampling = level
	}
}

// WithLabel overrides the display label of a strategy.
//
// Parameters:
//   - s: the strategy to relabel
//   - label: the new label, empty keeps the default
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithLabel(s Strategy, label string) RegistryBuilderOption {
	return func(r *registry) {
		r.pendingLabels[s] = label
	}
}
