package engine

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-aa/common"
	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
	"github.com/Carmen-Shannon/oxy-aa/engine/profiler"
	"github.com/Carmen-Shannon/oxy-aa/engine/window"
)

// FrameRenderer is the part of the renderer the frame loop drives directly.
// renderer.Renderer satisfies it.
type FrameRenderer interface {
	postprocess.Target

	// Resize reconfigures the surface for a new framebuffer size.
	Resize(width, height int)

	// NativeSampleCount returns the sample count used when the composer is bypassed.
	NativeSampleCount() uint32
}

// engine implements the Engine interface.
// Everything it calls runs on the window's thread, one frame per message loop iteration.
type engine struct {
	running bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window     window.Window
	renderer   FrameRenderer
	composer   postprocess.Composer
	controller antialias.Controller
	directDraw postprocess.DrawFunc

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate  time.Duration
	tickAccumulator time.Duration
	tickCallback    func(deltaTime float32)
	renderCallback  func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	postMu sync.Mutex
	posted []func()

	now        func() time.Time
	lastFrame  time.Time
	frameIndex uint64
}

// Engine is the main entry point for the engine.
// It runs the frame loop inside the window's message loop: posted tasks, fixed-rate ticks,
// then a frame rendered either through the composer or, for strategies that bypass it,
// directly through the renderer's native multisampling.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Post queues fn to run on the frame thread before the next frame.
	// Safe to call from any goroutine; this is how background work reaches the composer.
	//
	// Parameters:
	//   - fn: the task to run
	Post(fn func())

	// Resize forwards a framebuffer size to the renderer, the composer and its resizable passes,
	// and the anti-aliasing controller.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Step runs one frame: posted tasks, due ticks, render, render callback and profiler.
	//
	// Returns:
	//   - error: the render error of this frame, if any
	Step() error

	// Run starts the main engine loop (blocks until the window closes or Quit is called).
	Run()

	// Quit signals the engine to stop. The window is closed at the next frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel that is closed once the engine has been told to quit.
	Done() <-chan struct{}
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, composer, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:      make(chan struct{}),
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		now:              time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.Resize)
		e.window.SetUpdateCallback(e.frame)
	}
	e.lastFrame = e.now()

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run requires a window")
	}
	e.running = true
	e.lastFrame = e.now()
	e.window.ProcessMessages()
	e.signalQuit()
}

// Quit signals the engine to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.postMu.Lock()
	e.posted = append(e.posted, fn)
	e.postMu.Unlock()
}

func (e *engine) drainPosted() {
	e.postMu.Lock()
	tasks := e.posted
	e.posted = nil
	e.postMu.Unlock()

	for _, fn := range tasks {
		fn()
	}
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if e.composer != nil {
		e.composer.SetSize(width, height)

		// the controller sizes the anti-aliasing passes itself, including inactive ones on activation
		var owned []postprocess.Pass
		if e.controller != nil {
			owned = e.controller.Registry().Passes()
		}
		for _, p := range e.composer.Passes() {
			if r, ok := p.(postprocess.Resizable); ok && !slices.Contains(owned, p) {
				r.SetSize(width, height)
			}
		}
	}
	if e.controller != nil {
		e.controller.SetSize(width, height)
	}
}

// frame is the window update callback. It closes the window once quit was signalled and
// recovers from panics inside a frame, logging them and signalling quit.
func (e *engine) frame() {
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("frame recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	select {
	case <-e.quitChannel:
		if e.window != nil && e.window.IsRunning() {
			if err := e.window.Close(); err != nil {
				common.Logger().Warn("window close failed", "error", err)
			}
		}
		return
	default:
	}

	start := e.now()
	if err := e.Step(); err != nil {
		common.Logger().Warn("frame render failed", "frame", e.frameIndex, "error", err)
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) Step() error {
	now := e.now()
	elapsed := now.Sub(e.lastFrame)
	e.lastFrame = now
	dt := float32(elapsed.Seconds())

	e.drainPosted()

	if e.tickCallback != nil && e.engineTickRate > 0 {
		e.tickAccumulator += elapsed
		for e.tickAccumulator >= e.engineTickRate {
			e.tickAccumulator -= e.engineTickRate
			e.tickCallback(float32(e.engineTickRate.Seconds()))
		}
	}

	err := e.render(dt)
	e.frameIndex++

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		label := ""
		if e.controller != nil {
			label = e.controller.Descriptor().Label
		}
		e.profiler.Tick(label)
	}
	return err
}

// render draws one frame. Strategies flagged DirectRender skip the composer.
func (e *engine) render(dt float32) error {
	if e.controller != nil && e.controller.Descriptor().DirectRender && e.renderer != nil {
		return e.renderDirect(dt)
	}
	if e.composer != nil {
		return e.composer.Render(dt)
	}
	return nil
}

func (e *engine) renderDirect(dt float32) error {
	samples := e.renderer.NativeSampleCount()
	e.renderer.SetSampleCount(samples)
	if err := e.renderer.BeginFrame(); err != nil {
		return fmt.Errorf("engine: begin direct frame: %w", err)
	}
	defer func() {
		e.renderer.EndFrame()
		e.renderer.Present()
	}()

	f := &postprocess.Frame{
		Index:         e.frameIndex,
		DeltaTime:     dt,
		Multisampling: int(samples),
	}
	if e.composer != nil {
		f.Width, f.Height = e.composer.Size()
	} else if e.window != nil {
		f.Width, f.Height = e.window.Width(), e.window.Height()
	}

	if e.directDraw != nil {
		if err := e.directDraw(f); err != nil {
			return fmt.Errorf("engine: direct draw: %w", err)
		}
	}
	return nil
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
