package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
	"github.com/Carmen-Shannon/oxy-aa/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	// effects holds the WGSL source of every registered effect pipeline, keyed by effect key
	effects map[string]string

	backendType RendererBackendType
	backend     RendererBackend

	width, height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	nativeSamples        MSAASampleCount
	clearColor           *[4]float64
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the surface, its multisample and depth targets, and a cache of fullscreen
// effect pipelines. Its sample count can change between frames: the anti-aliasing composer drives
// it through postprocess.Target, and a direct render selects the native count.
type Renderer interface {
	postprocess.Target

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the current surface size in pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect at the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync, Uncapped or Mailbox)
	SetPresentMode(mode PresentMode)

	// SampleCount returns the sample count frames are currently rendered with.
	//
	// Returns:
	//   - uint32: the sample count, 1 when multisampling is off
	SampleCount() uint32

	// NativeSampleCount returns the renderer's own multisample count configured with WithMSAA.
	//
	// Returns:
	//   - uint32: the native sample count
	NativeSampleCount() uint32

	// SetClearColor sets the color every frame is cleared to.
	//
	// Parameters:
	//   - r, g, b, a: components in [0, 1]
	SetClearColor(r, g, b, a float64)

	// RegisterEffect compiles an effect pipeline from WGSL source and caches it by key.
	// The shader must provide vs_main and fs_main; it is drawn as three vertices with no vertex
	// buffers, so vs_main derives positions from the vertex index.
	// Keys that are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - key: the unique identifier for the effect
	//   - source: the WGSL source
	//
	// Returns:
	//   - error: an error if shader or pipeline creation fails
	RegisterEffect(key, source string) error

	// HasEffect reports whether an effect pipeline is registered under key.
	HasEffect(key string) bool

	// DrawEffect draws a registered effect over a width x height viewport within the current frame.
	// Must be called between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - key: the effect key
	//   - width: the viewport width in pixels
	//   - height: the viewport height in pixels
	//
	// Returns:
	//   - error: an error if the effect is not registered or no frame is in progress
	DrawEffect(key string, width, height int) error

	// Release frees all GPU resources held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the given window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window whose surface is rendered to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	r.applyPending()
	r.Resize(window.Width(), window.Height())
	return r
}

// newRenderer applies options to a renderer without a backend.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		effects:       make(map[string]string),
		backendType:   backendType,
		nativeSamples: MSAA4x,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	if r.nativeSamples == 0 {
		r.nativeSamples = MSAAOff
	}
	return r
}

func (r *renderer) applyPending() {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.clearColor != nil {
		c := *r.clearColor
		r.backend.SetClearColor(c[0], c[1], c[2], c[3])
	}
	r.backend.SetSampleCount(uint32(r.nativeSamples))
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SampleCount() uint32 {
	return r.backend.SampleCount()
}

func (r *renderer) SetSampleCount(count uint32) {
	if count == 0 {
		count = uint32(MSAAOff)
	}
	r.backend.SetSampleCount(count)
}

func (r *renderer) NativeSampleCount() uint32 {
	return uint32(r.nativeSamples)
}

func (r *renderer) SetClearColor(red, green, blue, alpha float64) {
	r.backend.SetClearColor(red, green, blue, alpha)
}

func (r *renderer) RegisterEffect(key, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.effects[key]; exists {
		return nil
	}
	if err := r.backend.RegisterEffect(key, source); err != nil {
		return fmt.Errorf("register effect %q: %w", key, err)
	}
	r.effects[key] = source
	return nil
}

func (r *renderer) HasEffect(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.effects[key]
	return exists
}

func (r *renderer) DrawEffect(key string, width, height int) error {
	r.mu.Lock()
	_, exists := r.effects[key]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("effect pipeline %q not found in cache", key)
	}
	return r.backend.DrawEffect(key, width, height)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.backend.Release()
}
