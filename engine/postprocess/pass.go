package postprocess

// Frame carries the per-frame state handed to every pass by the Composer.
type Frame struct {
	// Index is the number of frames rendered by the composer before this one.
	Index uint64

	// DeltaTime is the elapsed time since the previous frame in seconds.
	DeltaTime float32

	// Width and Height are the composer's viewport size in pixels.
	Width, Height int

	// Multisampling is the composer's multisampling level for this frame (0 = off).
	Multisampling int
}

// Pass is a unit of per-frame image processing pluggable into a Composer.
// Pass values are compared by identity, so the same instance must be used to add and remove it.
type Pass interface {
	// Name returns a human-readable identifier used in logs and errors.
	Name() string

	// Render performs the pass for the given frame.
	//
	// Parameters:
	//   - f: the frame being rendered
	//
	// Returns:
	//   - error: an error if the pass could not be applied
	Render(f *Frame) error
}

// Resizable is implemented by passes and effects whose resources depend on the viewport size,
// such as temporal reprojection history buffers.
type Resizable interface {
	// SetSize resizes viewport-dependent resources.
	//
	// Parameters:
	//   - width: the new viewport width in pixels
	//   - height: the new viewport height in pixels
	SetSize(width, height int)
}

// Effect is a single image operation run by an effect pass. The image math lives with the
// effect implementation; the composer only sequences it.
type Effect interface {
	// Name returns the effect identifier.
	Name() string

	// Apply runs the effect for the given frame.
	//
	// Parameters:
	//   - f: the frame being rendered
	//
	// Returns:
	//   - error: an error if the effect could not be applied
	Apply(f *Frame) error
}

// Target is the frame sink driven by a Composer, typically the renderer.
type Target interface {
	// SetSampleCount sets the multisample count used for the next frame (1 = off).
	SetSampleCount(count uint32)

	// BeginFrame acquires the output surface and begins recording the frame.
	BeginFrame() error

	// EndFrame finishes and submits the recorded frame.
	EndFrame()

	// Present displays the submitted frame.
	Present()
}
