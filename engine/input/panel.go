package input

import (
	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
)

// Option is one entry of the panel's method list.
type Option struct {
	Label    string
	Strategy antialias.Strategy
}

// panel is the implementation of the Panel interface.
type panel struct {
	controller antialias.Controller
	title      string
	options    []Option
	value      string
	hooks      []func(label string)
}

// Panel is the widget model for choosing the anti-aliasing method from a list.
// It forwards selections to the controller and mirrors the controller's state after every
// transition; the widget drawing itself is left to whatever binds an OnRefresh hook.
type Panel interface {
	antialias.Observer

	// Title returns the panel heading.
	Title() string

	// Options returns the selectable entries in registry order.
	Options() []Option

	// Value returns the label currently displayed as selected.
	Value() string

	// Select requests the method with the given label. Strategy names are accepted too.
	//
	// Parameters:
	//   - label: a label from Options, or a strategy name
	//
	// Returns:
	//   - error: the controller error when the request is rejected
	Select(label string) error

	// OnRefresh registers a hook called with the displayed label after every refresh.
	//
	// Parameters:
	//   - fn: the hook
	OnRefresh(fn func(label string))
}

var _ Panel = &panel{}

// NewPanel creates a panel bound to the controller and registers it as an observer.
//
// Parameters:
//   - c: the controller (must not be nil)
//   - options: functional options
//
// Returns:
//   - Panel: the panel model, already showing the current method
func NewPanel(c antialias.Controller, options ...PanelBuilderOption) Panel {
	if c == nil {
		panic("input: NewPanel requires a non-nil Controller")
	}
	p := &panel{
		controller: c,
		title:      "Anti-aliasing",
	}
	for _, opt := range options {
		opt(p)
	}

	reg := c.Registry()
	for _, s := range reg.Strategies() {
		d, err := reg.DescribeStrategy(s)
		if err != nil {
			continue
		}
		p.options = append(p.options, Option{Label: d.Label, Strategy: s})
	}

	c.AddObserver(p)
	p.Refresh()
	return p
}

func (p *panel) Title() string {
	return p.title
}

func (p *panel) Options() []Option {
	out := make([]Option, len(p.options))
	copy(out, p.options)
	return out
}

func (p *panel) Value() string {
	return p.value
}

func (p *panel) Select(label string) error {
	for _, o := range p.options {
		if o.Label == label {
			return p.controller.Set(o.Strategy)
		}
	}
	return p.controller.SetStrategy(label)
}

func (p *panel) OnRefresh(fn func(label string)) {
	if fn != nil {
		p.hooks = append(p.hooks, fn)
	}
}

// Refresh re-reads the controller's current strategy.
func (p *panel) Refresh() {
	p.value = p.controller.Descriptor().Label
	for _, fn := range p.hooks {
		fn(p.value)
	}
}
