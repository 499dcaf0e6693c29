package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-aa/common"
	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
)

// Action is an abstract trigger of the anti-aliasing input surface.
type Action int

const (
	// ActionNone ignores the key.
	ActionNone Action = iota

	// ActionNext cycles forward through the navigation order.
	ActionNext

	// ActionPrevious cycles backward through the navigation order.
	ActionPrevious

	// ActionToggle switches between the default strategy and Disabled.
	ActionToggle

	// ActionSelect activates the strategy named by the binding.
	ActionSelect
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionNext:
		return "next"
	case ActionPrevious:
		return "previous"
	case ActionToggle:
		return "toggle"
	case ActionSelect:
		return "select"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Binding is the trigger a key is mapped to. Strategy is only meaningful for ActionSelect.
type Binding struct {
	Action   Action
	Strategy antialias.Strategy
}

// Bindings maps virtual key codes to triggers. The mapping is configuration; the adapter
// that consumes it holds no anti-aliasing state.
type Bindings map[uint32]Binding

// DefaultBindings returns the stock layout: 1-6 select the strategies in registry order,
// Space, Enter and keypad Enter toggle, Left and Right cycle.
//
// Returns:
//   - Bindings: a fresh binding table
func DefaultBindings() Bindings {
	b := Bindings{
		common.KeySpace:   {Action: ActionToggle},
		common.KeyEnter:   {Action: ActionToggle},
		common.KeyKPEnter: {Action: ActionToggle},
		common.KeyLeft:    {Action: ActionPrevious},
		common.KeyRight:   {Action: ActionNext},
	}
	digits := []uint32{common.Key1, common.Key2, common.Key3, common.Key4, common.Key5, common.Key6}
	for i, s := range antialias.Strategies() {
		if i >= len(digits) {
			break
		}
		b[digits[i]] = Binding{Action: ActionSelect, Strategy: s}
	}
	return b
}

// Bind maps every named key to the binding, replacing earlier mappings of the same key.
//
// Parameters:
//   - binding: the trigger to map
//   - keyNames: key names understood by common.KeyByName
//
// Returns:
//   - error: an error naming the first unknown key; earlier keys stay bound
func (b Bindings) Bind(binding Binding, keyNames ...string) error {
	for _, name := range keyNames {
		code, ok := common.KeyByName(name)
		if !ok {
			return fmt.Errorf("input: unknown key %q for %s binding", name, binding.Action)
		}
		b[code] = binding
	}
	return nil
}

// Clone returns an independent copy of the table.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
