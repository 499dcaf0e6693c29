package input

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-aa/common"
	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPass struct {
	name string
}

func (p *stubPass) Name() string                      { return p.name }
func (p *stubPass) Render(_ *postprocess.Frame) error { return nil }

func newController(t *testing.T) (antialias.Controller, postprocess.Composer) {
	t.Helper()

	comp := postprocess.NewComposer()
	reg, err := antialias.NewRegistry(
		antialias.WithPass(antialias.TRAA, &stubPass{name: "traa"}),
		antialias.WithPass(antialias.FXAA, &stubPass{name: "fxaa"}),
		antialias.WithPass(antialias.SMAA, &stubPass{name: "smaa"}),
	)
	require.NoError(t, err)
	ctrl, err := antialias.NewController(comp, reg)
	require.NoError(t, err)
	return ctrl, comp
}

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()

	digits := []uint32{common.Key1, common.Key2, common.Key3, common.Key4, common.Key5, common.Key6}
	for i, s := range antialias.Strategies() {
		assert.Equal(t, Binding{Action: ActionSelect, Strategy: s}, b[digits[i]])
	}
	for _, k := range []uint32{common.KeySpace, common.KeyEnter, common.KeyKPEnter} {
		assert.Equal(t, ActionToggle, b[k].Action)
	}
	assert.Equal(t, ActionPrevious, b[common.KeyLeft].Action)
	assert.Equal(t, ActionNext, b[common.KeyRight].Action)
	assert.Len(t, b, 11)
}

func TestBindingsBind(t *testing.T) {
	b := Bindings{}
	require.NoError(t, b.Bind(Binding{Action: ActionNext}, "n", "Tab"))
	assert.Equal(t, ActionNext, b[common.KeyN].Action)
	assert.Equal(t, ActionNext, b[common.KeyTab].Action)

	err := b.Bind(Binding{Action: ActionToggle}, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestKeyboardDispatch(t *testing.T) {
	ctrl, comp := newController(t)
	kb := NewKeyboard(ctrl)

	cases := []struct {
		key  uint32
		want antialias.Strategy
	}{
		{common.Key4, antialias.FXAA},
		{common.Key3, antialias.MSAA},
		{common.KeyRight, antialias.FXAA},
		{common.KeyLeft, antialias.MSAA},
		{common.Key1, antialias.TRAA},
		{common.KeySpace, antialias.Disabled},
		{common.KeyEnter, antialias.TRAA},
		{common.KeyLeft, antialias.Disabled},
		{common.KeyRight, antialias.TRAA},
		{common.Key2, antialias.NativeAA},
	}
	for _, tc := range cases {
		handled, err := kb.HandleKeyDown(tc.key)
		require.NoError(t, err)
		assert.True(t, handled)
		assert.Equal(t, tc.want, ctrl.Current(), "after key %d", tc.key)
	}

	require.NoError(t, ctrl.Set(antialias.MSAA))
	assert.Equal(t, 8, comp.Multisampling())
}

func TestKeyboardUnboundKey(t *testing.T) {
	ctrl, comp := newController(t)
	kb := NewKeyboard(ctrl)
	before := comp.Passes()

	handled, err := kb.HandleKeyDown(common.KeyP)
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Equal(t, antialias.TRAA, ctrl.Current())
	assert.Equal(t, before, comp.Passes())
}

func TestKeyboardSelectUnregistered(t *testing.T) {
	ctrl, _ := newController(t)
	kb := NewKeyboard(ctrl, WithBindings(Bindings{
		common.KeyP: {Action: ActionSelect, Strategy: antialias.Strategy(42)},
	}))

	handled, err := kb.HandleKeyDown(common.KeyP)
	assert.True(t, handled)
	assert.True(t, errors.Is(err, antialias.ErrUnknownStrategy))
	assert.Equal(t, antialias.TRAA, ctrl.Current())

	// the callback swallows the failure
	assert.NotPanics(t, func() { kb.Callback()(common.KeyP) })
	assert.Equal(t, antialias.TRAA, ctrl.Current())
}

func TestKeyboardSetBindings(t *testing.T) {
	ctrl, _ := newController(t)
	kb := NewKeyboard(ctrl)

	b := Bindings{common.KeyN: {Action: ActionNext}}
	kb.SetBindings(b)
	b[common.KeyP] = Binding{Action: ActionToggle}

	assert.Len(t, kb.Bindings(), 1)

	handled, err := kb.HandleKeyDown(common.KeyRight)
	require.NoError(t, err)
	assert.False(t, handled)

	kb.Callback()(common.KeyN)
	assert.Equal(t, antialias.NativeAA, ctrl.Current())
}

func TestPanel(t *testing.T) {
	ctrl, comp := newController(t)
	var seen []string
	p := NewPanel(ctrl, WithTitle("AA"), WithRefreshHook(func(label string) { seen = append(seen, label) }))

	assert.Equal(t, "AA", p.Title())
	assert.Equal(t, "TRAA", p.Value())

	opts := p.Options()
	require.Len(t, opts, 6)
	assert.Equal(t, Option{Label: "Native AA", Strategy: antialias.NativeAA}, opts[1])
	assert.Equal(t, Option{Label: "Disabled", Strategy: antialias.Disabled}, opts[5])

	require.NoError(t, p.Select("Native AA"))
	assert.Equal(t, antialias.NativeAA, ctrl.Current())
	assert.Equal(t, "Native AA", p.Value())

	require.NoError(t, p.Select("msaa"))
	assert.Equal(t, antialias.MSAA, ctrl.Current())
	assert.Equal(t, 8, comp.Multisampling())

	err := p.Select("Bogus")
	assert.True(t, errors.Is(err, antialias.ErrUnknownStrategy))
	assert.Equal(t, "MSAA", p.Value())

	assert.Equal(t, []string{"TRAA", "Native AA", "MSAA"}, seen)
}

func TestPanelFollowsKeyboard(t *testing.T) {
	ctrl, _ := newController(t)
	p := NewPanel(ctrl)
	var last string
	p.OnRefresh(func(label string) { last = label })

	kb := NewKeyboard(ctrl)
	kb.Callback()(common.Key5)
	assert.Equal(t, "SMAA", p.Value())
	assert.Equal(t, "SMAA", last)

	kb.Callback()(common.KeySpace)
	assert.Equal(t, "TRAA", p.Value())
}
