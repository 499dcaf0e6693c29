package postprocess

// ComposerBuilderOption is a functional option applied to a composer during construction via NewComposer.
type ComposerBuilderOption func(*composer)

// WithPasses appends base passes in order, typically the scene render pass and the output pass.
//
// Parameters:
//   - passes: the passes to install
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithPasses(passes ...Pass) ComposerBuilderOption {
	return func(c *composer) {
		for _, p := range passes {
			c.AddPass(p)
		}
	}
}

// WithTarget attaches the frame sink that Render begins, ends and presents.
//
// Parameters:
//   - t: the render target, usually the renderer
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithTarget(t Target) ComposerBuilderOption {
	return func(c *composer) {
		c.target = t
	}
}

// WithSize sets the initial viewport size.
//
// Parameters:
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithSize(width, height int) ComposerBuilderOption {
	return func(c *composer) {
		c.width = width
		c.height = height
	}
}

// WithMultisampling sets the initial multisampling level.
//
// Parameters:
//   - level: number of samples, 0 = off
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithMultisampling(level int) ComposerBuilderOption {
	return func(c *composer) {
		c.multisampling = max(level, 0)
	}
}
