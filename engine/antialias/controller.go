package antialias

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-aa/common"
	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
)

// controller is the implementation of the Controller interface.
// It runs on the frame thread only; every transition completes before the next frame renders.
type controller struct {
	composer postprocess.Composer
	registry Registry

	order           []Strategy
	defaultStrategy Strategy

	current     Strategy
	currentDesc Descriptor

	observers []Observer

	width, height int
	sized         bool
}

// Controller owns the single active anti-aliasing strategy and keeps the composer's pass list and
// multisampling level exactly in line with it.
type Controller interface {
	// Current returns the active strategy.
	Current() Strategy

	// Descriptor returns the descriptor of the active strategy.
	Descriptor() Descriptor

	// Default returns the strategy restored by ToggleDefault.
	Default() Strategy

	// Order returns a copy of the navigation order used by Cycle.
	Order() []Strategy

	// Registry returns the registry the controller reads descriptors from.
	Registry() Registry

	// SetStrategy resolves name through the registry (canonical name, alias or registry label)
	// and transitions to it.
	// On failure nothing changes: no composer mutation and no observer notification.
	//
	// Parameters:
	//   - name: the strategy name, see ParseStrategy
	//
	// Returns:
	//   - error: ErrUnknownStrategy (wrapped) if the name does not resolve
	SetStrategy(name string) error

	// Set transitions to the given strategy. The composer's multisampling is reset to 0, every
	// discrete pass is removed, then the new strategy's pass or multisampling level is installed.
	// Observers are refreshed afterwards. Setting the active strategy again yields the same state.
	//
	// Parameters:
	//   - s: the strategy to activate
	//
	// Returns:
	//   - error: ErrUnknownStrategy (wrapped) if s is not registered
	Set(s Strategy) error

	// Cycle moves one step through the navigation order with wraparound and activates the
	// strategy at the new position.
	//
	// Parameters:
	//   - dir: Forward or Backward
	//
	// Returns:
	//   - error: ErrInvalidState (wrapped) if the current strategy is not in the order
	Cycle(dir Direction) error

	// ToggleDefault switches to Disabled when the default strategy is active and to the default otherwise.
	//
	// Returns:
	//   - error: an error if the transition fails
	ToggleDefault() error

	// SetSize forwards a viewport resize to the active pass when it implements postprocess.Resizable.
	// The size is remembered and applied to resizable passes as they are installed.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	SetSize(width, height int)

	// AddObserver registers an observer refreshed after every successful transition.
	//
	// Parameters:
	//   - o: the observer, nil is ignored
	AddObserver(o Observer)
}

var _ Controller = &controller{}

// NewController creates a controller over an existing composer and registry, then activates the
// default strategy. Build it only once every strategy pass exists and the assets gating
// activation are loaded.
//
// Parameters:
//   - comp: the composer to drive (shared, not owned)
//   - reg: the strategy registry
//   - options: functional options for default strategy, order and observers
//
// Returns:
//   - Controller: the controller with the default strategy active
//   - error: an error if the configuration is invalid
func NewController(comp postprocess.Composer, reg Registry, options ...ControllerBuilderOption) (Controller, error) {
	if comp == nil {
		return nil, errors.New("antialias: NewController requires a non-nil Composer")
	}
	if reg == nil {
		return nil, errors.New("antialias: NewController requires a non-nil Registry")
	}

	c := &controller{
		composer:        comp,
		registry:        reg,
		order:           reg.Strategies(),
		defaultStrategy: TRAA,
	}
	for _, opt := range options {
		opt(c)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := c.Set(c.defaultStrategy); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks that the navigation order is a permutation of the registry's strategies and
// that the default strategy is registered.
func (c *controller) validate() error {
	if len(c.order) == 0 {
		return fmt.Errorf("%w: empty navigation order", ErrInvalidState)
	}
	seen := make(map[Strategy]bool, len(c.order))
	for _, s := range c.order {
		if _, err := c.registry.DescribeStrategy(s); err != nil {
			return err
		}
		if seen[s] {
			return fmt.Errorf("%w: strategy %s appears twice in the navigation order", ErrInvalidState, s)
		}
		seen[s] = true
	}
	// the order covers every registered strategy
	for _, s := range c.registry.Strategies() {
		if !seen[s] {
			return fmt.Errorf("%w: strategy %s is missing from the navigation order", ErrInvalidState, s)
		}
	}
	if c.defaultStrategy == Disabled {
		return fmt.Errorf("%w: the default strategy cannot be %s", ErrInvalidState, Disabled)
	}
	if _, err := c.registry.DescribeStrategy(c.defaultStrategy); err != nil {
		return err
	}
	return nil
}

func (c *controller) Current() Strategy {
	return c.current
}

func (c *controller) Descriptor() Descriptor {
	return c.currentDesc
}

func (c *controller) Default() Strategy {
	return c.defaultStrategy
}

func (c *controller) Order() []Strategy {
	return slices.Clone(c.order)
}

func (c *controller) Registry() Registry {
	return c.registry
}

func (c *controller) SetStrategy(name string) error {
	d, err := c.registry.Describe(name)
	if err != nil {
		return err
	}
	c.transition(d)
	return nil
}

func (c *controller) Set(s Strategy) error {
	d, err := c.registry.DescribeStrategy(s)
	if err != nil {
		return err
	}
	c.transition(d)
	return nil
}

// transition applies d to the composer, records it as current and refreshes observers.
func (c *controller) transition(d Descriptor) {
	prev := c.current

	c.composer.SetMultisampling(0)
	for _, p := range c.registry.Passes() {
		c.composer.RemovePass(p)
	}

	switch {
	case d.UsesPass():
		if r, ok := d.Pass.(postprocess.Resizable); ok && c.sized {
			r.SetSize(c.width, c.height)
		}
		c.composer.AddPass(d.Pass)
	case d.UsesMultisampling():
		c.composer.SetMultisampling(d.Multisampling)
	}

	c.current = d.Strategy
	c.currentDesc = d

	common.Logger().Info("anti-aliasing method changed", "from", prev, "to", d.Strategy, "label", d.Label)

	for _, o := range c.observers {
		o.Refresh()
	}
}

func (c *controller) Cycle(dir Direction) error {
	var step int
	switch dir {
	case Forward:
		step = 1
	case Backward:
		step = -1
	default:
		return fmt.Errorf("antialias: unknown cycle direction %s", dir)
	}

	idx := slices.Index(c.order, c.current)
	if idx < 0 {
		return fmt.Errorf("%w: current strategy %s is not in the navigation order", ErrInvalidState, c.current)
	}
	return c.Set(c.order[common.WrapIndex(idx+step, len(c.order))])
}

func (c *controller) ToggleDefault() error {
	if c.current == c.defaultStrategy {
		return c.Set(Disabled)
	}
	return c.Set(c.defaultStrategy)
}

func (c *controller) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.sized = true

	if !c.currentDesc.UsesPass() {
		return
	}
	if r, ok := c.currentDesc.Pass.(postprocess.Resizable); ok {
		r.SetSize(width, height)
	}
}

func (c *controller) AddObserver(o Observer) {
	if o == nil {
		return
	}
	c.observers = append(c.observers, o)
}
