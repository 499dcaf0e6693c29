package postprocess

// DrawFunc draws the scene for a frame. Scene construction lives outside the composer.
type DrawFunc func(f *Frame) error

// renderPass is the base pass that draws the scene into the frame before any effect runs.
type renderPass struct {
	name string
	draw DrawFunc
}

var _ Pass = &renderPass{}

// NewRenderPass creates the base scene pass. A nil draw function renders nothing, leaving the cleared frame.
//
// Parameters:
//   - name: identifier used in logs
//   - draw: the scene draw callback
//
// Returns:
//   - Pass: the render pass
func NewRenderPass(name string, draw DrawFunc) Pass {
	return &renderPass{name: name, draw: draw}
}

func (p *renderPass) Name() string {
	return p.name
}

func (p *renderPass) Render(f *Frame) error {
	if p.draw == nil {
		return nil
	}
	return p.draw(f)
}
