package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	onUpdate      func()
	onResize      func(width, height int)
	running       bool
	closed        int
	title         string
	width, height int
}

func (w *fakeWindow) SetUpdateCallback(callback func())                  { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) SetKeyDownCallback(func(keyCode uint32))            {}
func (w *fakeWindow) SetTitle(title string)                              { w.title = title }
func (w *fakeWindow) Title() string                                      { return w.title }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor         { return nil }
func (w *fakeWindow) IsRunning() bool                                    { return w.running }
func (w *fakeWindow) Width() int                                         { return w.width }
func (w *fakeWindow) Height() int                                        { return w.height }

func (w *fakeWindow) Close() error {
	w.closed++
	w.running = false
	return nil
}

// ProcessMessages runs three iterations, like a window closed by the user after three frames.
func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < 3 && w.running; i++ {
		w.onUpdate()
	}
}

type fakeRenderer struct {
	calls   []string
	samples []uint32
	native  uint32
	sizes   [][2]int
}

func (r *fakeRenderer) SetSampleCount(count uint32) { r.samples = append(r.samples, count) }
func (r *fakeRenderer) EndFrame()                   { r.calls = append(r.calls, "end") }
func (r *fakeRenderer) Present()                    { r.calls = append(r.calls, "present") }
func (r *fakeRenderer) NativeSampleCount() uint32   { return r.native }
func (r *fakeRenderer) Resize(width, height int)    { r.sizes = append(r.sizes, [2]int{width, height}) }

func (r *fakeRenderer) BeginFrame() error {
	r.calls = append(r.calls, "begin")
	return nil
}

type countingPass struct {
	name    string
	renders int
	sizes   [][2]int
}

func (p *countingPass) Name() string     { return p.name }
func (p *countingPass) SetSize(w, h int) { p.sizes = append(p.sizes, [2]int{w, h}) }

func (p *countingPass) Render(_ *postprocess.Frame) error {
	p.renders++
	return nil
}

type fixture struct {
	engine     *engine
	window     *fakeWindow
	renderer   *fakeRenderer
	composer   postprocess.Composer
	controller antialias.Controller
	base       *countingPass
	traa       *countingPass
	direct     []*postprocess.Frame
	clock      time.Time
}

func newFixture(t *testing.T, options ...EngineBuilderOption) *fixture {
	t.Helper()

	f := &fixture{
		window:   &fakeWindow{running: true, width: 640, height: 480},
		renderer: &fakeRenderer{native: 4},
		base:     &countingPass{name: "render"},
		traa:     &countingPass{name: "traa"},
		clock:    time.Unix(0, 0),
	}
	f.composer = postprocess.NewComposer(
		postprocess.WithPasses(f.base),
		postprocess.WithTarget(f.renderer),
		postprocess.WithSize(640, 480),
	)
	reg, err := antialias.NewRegistry(
		antialias.WithPass(antialias.TRAA, f.traa),
		antialias.WithPass(antialias.FXAA, &countingPass{name: "fxaa"}),
		antialias.WithPass(antialias.SMAA, &countingPass{name: "smaa"}),
	)
	require.NoError(t, err)
	f.controller, err = antialias.NewController(f.composer, reg)
	require.NoError(t, err)

	options = append([]EngineBuilderOption{
		WithWindow(f.window),
		WithRenderer(f.renderer),
		WithComposer(f.composer),
		WithController(f.controller),
		WithDirectDraw(func(fr *postprocess.Frame) error {
			f.direct = append(f.direct, fr)
			return nil
		}),
	}, options...)
	f.engine = NewEngine(options...).(*engine)
	f.engine.now = func() time.Time { return f.clock }
	f.engine.lastFrame = f.clock
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func TestEngineRendersThroughComposer(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.engine.Step())
	assert.Equal(t, 1, f.base.renders)
	assert.Equal(t, 1, f.traa.renders)
	assert.Equal(t, []uint32{1}, f.renderer.samples)
	assert.Equal(t, []string{"begin", "end", "present"}, f.renderer.calls)
	assert.Empty(t, f.direct)
}

func TestEngineMSAAFrame(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.Set(antialias.MSAA))

	require.NoError(t, f.engine.Step())
	assert.Equal(t, []uint32{8}, f.renderer.samples)
	assert.Equal(t, 1, f.base.renders)
	assert.Equal(t, 0, f.traa.renders)
}

func TestEngineDirectRender(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.Set(antialias.NativeAA))

	require.NoError(t, f.engine.Step())
	assert.Equal(t, 0, f.base.renders)
	assert.Equal(t, []uint32{4}, f.renderer.samples)
	assert.Equal(t, []string{"begin", "end", "present"}, f.renderer.calls)
	require.Len(t, f.direct, 1)
	assert.Equal(t, 640, f.direct[0].Width)
	assert.Equal(t, 480, f.direct[0].Height)
	assert.Equal(t, 4, f.direct[0].Multisampling)

	// switching away returns to the composer on the next frame
	require.NoError(t, f.controller.Set(antialias.FXAA))
	require.NoError(t, f.engine.Step())
	assert.Equal(t, 1, f.base.renders)
	assert.Len(t, f.direct, 1)
}

func TestEngineDirectDrawError(t *testing.T) {
	boom := errors.New("boom")
	f := newFixture(t, WithDirectDraw(func(*postprocess.Frame) error { return boom }))
	require.NoError(t, f.controller.Set(antialias.NativeAA))

	err := f.engine.Step()
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, []string{"begin", "end", "present"}, f.renderer.calls)
}

func TestEnginePostRunsBeforeFrame(t *testing.T) {
	f := newFixture(t)

	done := make(chan struct{})
	go func() {
		f.engine.Post(func() {
			assert.NoError(t, f.controller.Set(antialias.SMAA))
		})
		close(done)
	}()
	<-done

	assert.Equal(t, antialias.TRAA, f.controller.Current())
	require.NoError(t, f.engine.Step())
	assert.Equal(t, antialias.SMAA, f.controller.Current())
	assert.Equal(t, 0, f.traa.renders)

	f.engine.Post(nil)
	require.NoError(t, f.engine.Step())
}

func TestEngineTicksAtFixedRate(t *testing.T) {
	f := newFixture(t, WithTickRate(10))
	var ticks []float32
	f.engine.SetTickCallback(func(dt float32) { ticks = append(ticks, dt) })

	f.advance(250 * time.Millisecond)
	require.NoError(t, f.engine.Step())
	assert.Len(t, ticks, 2)

	f.advance(50 * time.Millisecond)
	require.NoError(t, f.engine.Step())
	assert.Len(t, ticks, 3)
	assert.InDelta(t, 0.1, ticks[0], 1e-6)
}

func TestEngineResizeForwarding(t *testing.T) {
	f := newFixture(t)

	f.window.onResize(1024, 768)
	assert.Equal(t, [][2]int{{1024, 768}}, f.renderer.sizes)
	w, h := f.composer.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, [][2]int{{1024, 768}}, f.base.sizes)
	assert.Equal(t, [][2]int{{1024, 768}}, f.traa.sizes)

	f.engine.Resize(0, 0)
	assert.Len(t, f.renderer.sizes, 1)
}

func TestEngineRunAndQuit(t *testing.T) {
	f := newFixture(t)
	frames := 0
	f.engine.SetRenderCallback(func(float32) {
		frames++
		if frames == 2 {
			f.engine.Quit()
		}
	})

	f.engine.Run()
	assert.Equal(t, 2, frames)
	assert.Equal(t, 1, f.window.closed)

	select {
	case <-f.engine.Done():
	default:
		t.Fatal("engine not marked done")
	}
	f.engine.Quit()
}

func TestEngineRecoversFromPanic(t *testing.T) {
	f := newFixture(t)
	f.engine.SetRenderCallback(func(float32) { panic("bad frame") })

	assert.NotPanics(t, f.window.onUpdate)
	select {
	case <-f.engine.Done():
	default:
		t.Fatal("panic did not signal quit")
	}
}

func TestEngineProfilerLabel(t *testing.T) {
	f := newFixture(t, WithProfiling(true))
	require.NoError(t, f.engine.Step())
	f.engine.DisableProfiler()
	require.NoError(t, f.engine.Step())
	f.engine.EnableProfiler()
	assert.True(t, f.engine.profilingEnabled)
}
