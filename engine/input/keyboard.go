package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-aa/common"
	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
)

// keyboard is the implementation of the Keyboard interface.
type keyboard struct {
	controller antialias.Controller
	bindings   Bindings
}

// Keyboard translates key presses into anti-aliasing controller calls.
// It only forwards events; the composer is never touched directly.
type Keyboard interface {
	// HandleKeyDown dispatches a key press through the binding table.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true if the key is bound
	//   - error: the controller error, if the bound call failed
	HandleKeyDown(keyCode uint32) (bool, error)

	// Callback returns a window key-down callback that dispatches through HandleKeyDown and logs
	// failures instead of returning them, so a bad request never interrupts the frame loop.
	//
	// Returns:
	//   - func(uint32): the callback
	Callback() func(keyCode uint32)

	// Bindings returns a copy of the active binding table.
	Bindings() Bindings

	// SetBindings replaces the binding table, e.g. after a configuration reload.
	//
	// Parameters:
	//   - b: the new table
	SetBindings(b Bindings)
}

var _ Keyboard = &keyboard{}

// NewKeyboard creates a keyboard adapter forwarding to the given controller.
// Uses DefaultBindings unless WithBindings is supplied.
//
// Parameters:
//   - c: the controller to forward to (must not be nil)
//   - options: functional options
//
// Returns:
//   - Keyboard: the adapter
func NewKeyboard(c antialias.Controller, options ...KeyboardBuilderOption) Keyboard {
	if c == nil {
		panic("input: NewKeyboard requires a non-nil Controller")
	}
	k := &keyboard{
		controller: c,
		bindings:   DefaultBindings(),
	}
	for _, opt := range options {
		opt(k)
	}
	return k
}

func (k *keyboard) HandleKeyDown(keyCode uint32) (bool, error) {
	b, ok := k.bindings[keyCode]
	if !ok || b.Action == ActionNone {
		return false, nil
	}

	switch b.Action {
	case ActionNext:
		return true, k.controller.Cycle(antialias.Forward)
	case ActionPrevious:
		return true, k.controller.Cycle(antialias.Backward)
	case ActionToggle:
		return true, k.controller.ToggleDefault()
	case ActionSelect:
		return true, k.controller.Set(b.Strategy)
	default:
		return true, fmt.Errorf("input: unsupported action %s", b.Action)
	}
}

func (k *keyboard) Callback() func(keyCode uint32) {
	return func(keyCode uint32) {
		if _, err := k.HandleKeyDown(keyCode); err != nil {
			common.Logger().Warn("anti-aliasing key ignored", "key", keyCode, "error", err)
		}
	}
}

func (k *keyboard) Bindings() Bindings {
	return k.bindings.Clone()
}

func (k *keyboard) SetBindings(b Bindings) {
	k.bindings = b.Clone()
}
