package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
	"github.com/Carmen-Shannon/oxy-aa/engine/profiler"
	"github.com/Carmen-Shannon/oxy-aa/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, e.g. to change its interval.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer used for direct frames and resize.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r FrameRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithComposer sets the post-processing composer that renders each frame.
//
// Parameters:
//   - c: the composer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithComposer(c postprocess.Composer) EngineBuilderOption {
	return func(e *engine) {
		e.composer = c
	}
}

// WithController sets the anti-aliasing controller that decides each frame's render path.
//
// Parameters:
//   - c: the controller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(c antialias.Controller) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}

// WithDirectDraw sets the draw function used when the active strategy bypasses the composer.
//
// Parameters:
//   - draw: the scene draw function
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDirectDraw(draw postprocess.DrawFunc) EngineBuilderOption {
	return func(e *engine) {
		e.directDraw = draw
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
