package input

// KeyboardBuilderOption is a functional option applied to a keyboard adapter during construction via NewKeyboard.
type KeyboardBuilderOption func(*keyboard)

// WithBindings replaces the default binding table.
//
// Parameters:
//   - b: the binding table to use
//
// Returns:
//   - KeyboardBuilderOption: option function to apply
func WithBindings(b Bindings) KeyboardBuilderOption {
	return func(k *keyboard) {
		k.bindings = b.Clone()
	}
}
