package postprocess

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPass struct {
	name    string
	renders int
	err     error
	frames  []Frame
}

func (p *recordingPass) Name() string { return p.name }

func (p *recordingPass) Render(f *Frame) error {
	p.renders++
	p.frames = append(p.frames, *f)
	return p.err
}

type recordingTarget struct {
	calls       []string
	sampleCount uint32
	beginErr    error
}

func (t *recordingTarget) SetSampleCount(count uint32) {
	t.sampleCount = count
	t.calls = append(t.calls, "samples")
}

func (t *recordingTarget) BeginFrame() error {
	t.calls = append(t.calls, "begin")
	return t.beginErr
}

func (t *recordingTarget) EndFrame() { t.calls = append(t.calls, "end") }
func (t *recordingTarget) Present()  { t.calls = append(t.calls, "present") }

type sizedEffect struct {
	applied       int
	width, height int
}

func (e *sizedEffect) Name() string         { return "sized" }
func (e *sizedEffect) Apply(_ *Frame) error { e.applied++; return nil }
func (e *sizedEffect) SetSize(w, h int)     { e.width, e.height = w, h }

type plainEffect struct{ err error }

func (e *plainEffect) Name() string         { return "plain" }
func (e *plainEffect) Apply(_ *Frame) error { return e.err }

func TestComposerPassList(t *testing.T) {
	a := &recordingPass{name: "a"}
	b := &recordingPass{name: "b"}
	c := &recordingPass{name: "c"}

	comp := NewComposer(WithPasses(a, b))
	assert.Equal(t, []Pass{a, b}, comp.Passes())

	comp.AddPass(a)
	comp.AddPass(nil)
	assert.Len(t, comp.Passes(), 2, "adding an installed pass or nil is a no-op")

	comp.InsertPass(c, 1)
	assert.Equal(t, []Pass{a, c, b}, comp.Passes())

	assert.True(t, comp.RemovePass(c))
	assert.False(t, comp.RemovePass(c), "removing an absent pass is a no-op")
	assert.False(t, comp.HasPass(c))
	assert.True(t, comp.HasPass(b))

	comp.InsertPass(c, 99)
	assert.Equal(t, []Pass{a, b, c}, comp.Passes())
	comp.InsertPass(&recordingPass{name: "d"}, -5)
	assert.Equal(t, "d", comp.Passes()[0].Name())
}

func TestComposerPassesIsCopy(t *testing.T) {
	a := &recordingPass{name: "a"}
	comp := NewComposer(WithPasses(a))
	passes := comp.Passes()
	passes[0] = nil
	assert.True(t, comp.HasPass(a))
}

func TestComposerMultisampling(t *testing.T) {
	comp := NewComposer(WithMultisampling(4))
	assert.Equal(t, 4, comp.Multisampling())

	comp.SetMultisampling(-3)
	assert.Equal(t, 0, comp.Multisampling())

	comp.SetMultisampling(8)
	assert.Equal(t, 8, comp.Multisampling())
}

func TestComposerRenderWithTarget(t *testing.T) {
	target := &recordingTarget{}
	a := &recordingPass{name: "a"}
	comp := NewComposer(WithTarget(target), WithPasses(a), WithSize(640, 480), WithMultisampling(8))

	require.NoError(t, comp.Render(0.016))
	require.NoError(t, comp.Render(0.016))

	assert.Equal(t, uint32(8), target.sampleCount)
	assert.Equal(t, []string{"samples", "begin", "end", "present", "samples", "begin", "end", "present"}, target.calls)
	require.Len(t, a.frames, 2)
	assert.Equal(t, uint64(0), a.frames[0].Index)
	assert.Equal(t, uint64(1), a.frames[1].Index)
	assert.Equal(t, 640, a.frames[1].Width)
	assert.Equal(t, 480, a.frames[1].Height)
	assert.Equal(t, 8, a.frames[1].Multisampling)
}

func TestComposerRenderBeginFailure(t *testing.T) {
	target := &recordingTarget{beginErr: errors.New("surface lost")}
	a := &recordingPass{name: "a"}
	comp := NewComposer(WithTarget(target), WithPasses(a))

	err := comp.Render(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, target.beginErr)
	assert.Zero(t, a.renders)
	assert.Equal(t, []string{"samples", "begin"}, target.calls)
}

func TestComposerRenderJoinsPassErrors(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingPass{name: "a", err: boom}
	b := &recordingPass{name: "b"}
	target := &recordingTarget{}
	comp := NewComposer(WithTarget(target), WithPasses(a, b))

	err := comp.Render(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `pass "a"`)
	assert.Equal(t, 1, b.renders, "later passes still run")
	assert.Equal(t, "present", target.calls[len(target.calls)-1])
}

func TestSampleCount(t *testing.T) {
	assert.Equal(t, uint32(1), SampleCount(-1))
	assert.Equal(t, uint32(1), SampleCount(0))
	assert.Equal(t, uint32(1), SampleCount(1))
	assert.Equal(t, uint32(8), SampleCount(8))
}

func TestEffectPass(t *testing.T) {
	sized := &sizedEffect{}
	plain := &plainEffect{}
	p := NewEffectPass("fxaa", sized, plain)

	require.NoError(t, p.Render(&Frame{}))
	assert.Equal(t, 1, sized.applied)

	r, ok := p.(Resizable)
	require.True(t, ok)
	r.SetSize(1920, 1080)
	assert.Equal(t, 1920, sized.width)
	assert.Equal(t, 1080, sized.height)

	plain.err = errors.New("shader missing")
	err := p.Render(&Frame{})
	assert.ErrorIs(t, err, plain.err)
	assert.Contains(t, err.Error(), `effect "plain"`)
}

func TestRenderPass(t *testing.T) {
	var drawn int
	p := NewRenderPass("scene", func(f *Frame) error {
		drawn++
		return nil
	})
	require.NoError(t, p.Render(&Frame{}))
	assert.Equal(t, 1, drawn)
	assert.Equal(t, "scene", p.Name())

	require.NoError(t, NewRenderPass("empty", nil).Render(&Frame{}))
}

func TestPrebuild(t *testing.T) {
	var calls atomic.Int32
	factory := func(name string) PassFactory {
		return func() (Pass, error) {
			calls.Add(1)
			return &recordingPass{name: name}, nil
		}
	}

	built, err := Prebuild(map[string]PassFactory{
		"traa": factory("traa"),
		"fxaa": factory("fxaa"),
		"smaa": factory("smaa"),
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	require.Len(t, built, 3)
	assert.Equal(t, "smaa", built["smaa"].Name())
}

func TestPrebuildErrors(t *testing.T) {
	boom := errors.New("compile failed")
	_, err := Prebuild(map[string]PassFactory{
		"ok":   func() (Pass, error) { return &recordingPass{name: "ok"}, nil },
		"bad":  func() (Pass, error) { return nil, boom },
		"null": func() (Pass, error) { return nil, nil },
	}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Contains(t, err.Error(), `"null"`)
}

func TestPrebuildEmpty(t *testing.T) {
	built, err := Prebuild(nil, 4)
	require.NoError(t, err)
	assert.Empty(t, built)
}
