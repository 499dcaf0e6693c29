package antialias

import (
	"errors"
	"fmt"
	"strings"

	"cogentcore.org/core/base/keylist"
	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
)

// DefaultMultisampling is the composer multisampling level used by the MSAA strategy.
const DefaultMultisampling = 8

// Descriptor describes how a strategy is realised on the composer.
type Descriptor struct {
	// Strategy is the described strategy.
	Strategy Strategy

	// Label is the human-readable name shown by input surfaces.
	Label string

	// Pass is the pre-built pass installed while the strategy is active, nil if the strategy uses no pass.
	Pass postprocess.Pass

	// Multisampling is the composer multisampling level while active, 0 if unused.
	Multisampling int

	// DirectRender is set when frames bypass the composer and render through the renderer's own
	// multisample path.
	DirectRender bool
}

// UsesPass reports whether the strategy installs a discrete pass.
func (d Descriptor) UsesPass() bool {
	return d.Pass != nil
}

// UsesMultisampling reports whether the strategy sets the composer's multisampling level.
func (d Descriptor) UsesMultisampling() bool {
	return d.Multisampling > 0
}

// registry is the implementation of the Registry interface.
type registry struct {
	entries *keylist.List[Strategy, Descriptor]

	// Pre-creation config collected from builder options
	pendingPasses  map[Strategy]postprocess.Pass
	pendingLabels  map[Strategy]string
	multisampling  int
	optionFailures []error
}

// Registry is the immutable table of strategy descriptors, in navigation order.
type Registry interface {
	// Describe resolves a strategy by name (see ParseStrategy) or by its registry label, as set
	// with WithLabel, and returns its descriptor. Names take precedence over labels.
	//
	// Parameters:
	//   - name: the strategy name
	//
	// Returns:
	//   - Descriptor: the strategy's descriptor
	//   - error: ErrUnknownStrategy (wrapped) if the name does not resolve
	Describe(name string) (Descriptor, error)

	// DescribeStrategy returns the descriptor of a typed strategy.
	//
	// Parameters:
	//   - s: the strategy
	//
	// Returns:
	//   - Descriptor: the strategy's descriptor
	//   - error: ErrUnknownStrategy (wrapped) if s is not registered
	DescribeStrategy(s Strategy) (Descriptor, error)

	// Strategies returns the registered strategies in registry order.
	Strategies() []Strategy

	// Passes returns the pass of every strategy that uses a discrete pass, in registry order.
	Passes() []postprocess.Pass

	// Len returns the number of registered strategies.
	Len() int
}

var _ Registry = &registry{}

// NewRegistry builds the descriptor of every strategy. All strategies that use a discrete pass
// (TRAA, FXAA, SMAA) must be given their pre-built pass with WithPass; construction fails otherwise.
//
// Parameters:
//   - options: functional options supplying passes, labels and the MSAA level
//
// Returns:
//   - Registry: the immutable registry
//   - error: an error describing every missing or invalid entry
func NewRegistry(options ...RegistryBuilderOption) (Registry, error) {
	r := &registry{
		entries:       keylist.New[Strategy, Descriptor](),
		pendingPasses: make(map[Strategy]postprocess.Pass),
		pendingLabels: make(map[Strategy]string),
		multisampling: DefaultMultisampling,
	}
	for _, opt := range options {
		opt(r)
	}

	errs := r.optionFailures
	if r.multisampling <= 0 {
		errs = append(errs, fmt.Errorf("antialias: MSAA multisampling level must be positive, got %d", r.multisampling))
	}

	for _, s := range Strategies() {
		d, err := r.describe(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.entries.Add(s, d); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	r.pendingPasses = nil
	r.pendingLabels = nil
	return r, nil
}

// describe builds the descriptor for s from the pending builder config.
func (r *registry) describe(s Strategy) (Descriptor, error) {
	d := Descriptor{Strategy: s, Label: s.Label()}
	if label, ok := r.pendingLabels[s]; ok && label != "" {
		d.Label = label
	}

	switch s {
	case TRAA, FXAA, SMAA:
		p := r.pendingPasses[s]
		if p == nil {
			return Descriptor{}, fmt.Errorf("antialias: strategy %s requires a pre-built pass", s)
		}
		d.Pass = p
	case MSAA:
		d.Multisampling = r.multisampling
	case NativeAA:
		d.DirectRender = true
	case Disabled:
	default:
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
	}
	return d, nil
}

func (r *registry) Describe(name string) (Descriptor, error) {
	s, err := ParseStrategy(name)
	if err == nil {
		return r.DescribeStrategy(s)
	}

	// labels set with WithLabel
	key := strings.TrimSpace(name)
	for _, d := range r.entries.Values {
		if strings.EqualFold(d.Label, key) {
			return d, nil
		}
	}
	return Descriptor{}, err
}

func (r *registry) DescribeStrategy(s Strategy) (Descriptor, error) {
	d, ok := r.entries.AtTry(s)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
	}
	return d, nil
}

func (r *registry) Strategies() []Strategy {
	out := make([]Strategy, len(r.entries.Keys))
	copy(out, r.entries.Keys)
	return out
}

func (r *registry) Passes() []postprocess.Pass {
	passes := make([]postprocess.Pass, 0, 3)
	for _, d := range r.entries.Values {
		if d.UsesPass() {
			passes = append(passes, d.Pass)
		}
	}
	return passes
}

func (r *registry) Len() int {
	return r.entries.Len()
}
