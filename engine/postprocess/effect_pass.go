package postprocess

import "fmt"

// effectPass runs a fixed list of effects in order. With no effects it acts as the output pass.
type effectPass struct {
	name    string
	effects []Effect
}

var (
	_ Pass      = &effectPass{}
	_ Resizable = &effectPass{}
)

// NewEffectPass creates a pass that applies the given effects in order.
// Effects are expected to be fully constructed already; the pass never rebuilds them.
//
// Parameters:
//   - name: identifier used in logs
//   - effects: the effects to apply
//
// Returns:
//   - Pass: the effect pass
func NewEffectPass(name string, effects ...Effect) Pass {
	return &effectPass{name: name, effects: effects}
}

func (p *effectPass) Name() string {
	return p.name
}

func (p *effectPass) Render(f *Frame) error {
	for _, e := range p.effects {
		if err := e.Apply(f); err != nil {
			return fmt.Errorf("effect %q: %w", e.Name(), err)
		}
	}
	return nil
}

// SetSize forwards the viewport size to every effect that implements Resizable.
func (p *effectPass) SetSize(width, height int) {
	for _, e := range p.effects {
		if r, ok := e.(Resizable); ok {
			r.SetSize(width, height)
		}
	}
}
