package postprocess

import (
	"errors"
	"fmt"
	"slices"
)

// composer is the implementation of the Composer interface.
// It is owned by the frame thread and is not safe for concurrent use.
type composer struct {
	passes []Pass

	multisampling int
	width, height int

	target     Target
	frameIndex uint64
}

// Composer is an ordered sequence of render passes applied once per frame, plus a
// pipeline-wide multisampling level that is handled outside the pass mechanism.
type Composer interface {
	// AddPass appends a pass to the end of the pass list.
	// Adding nil or a pass that is already installed is a no-op.
	//
	// Parameters:
	//   - p: the pass to append
	AddPass(p Pass)

	// InsertPass inserts a pass at the given position, clamped to the list bounds.
	// Inserting nil or a pass that is already installed is a no-op.
	//
	// Parameters:
	//   - p: the pass to insert
	//   - index: the target position
	InsertPass(p Pass, index int)

	// RemovePass removes a pass from the pass list. Removing a pass that is not installed is a no-op.
	//
	// Parameters:
	//   - p: the pass to remove
	//
	// Returns:
	//   - bool: true if the pass was installed and has been removed
	RemovePass(p Pass) bool

	// HasPass reports whether the pass is currently installed.
	//
	// Parameters:
	//   - p: the pass to look for
	//
	// Returns:
	//   - bool: true if installed
	HasPass(p Pass) bool

	// Passes returns a copy of the installed passes in render order.
	//
	// Returns:
	//   - []Pass: the installed passes
	Passes() []Pass

	// Multisampling returns the pipeline multisampling level (0 = off).
	Multisampling() int

	// SetMultisampling sets the pipeline multisampling level. Negative values are treated as 0.
	//
	// Parameters:
	//   - level: the number of samples, 0 disables multisampling
	SetMultisampling(level int)

	// SetSize records the viewport size handed to passes through the Frame.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	SetSize(width, height int)

	// Size returns the viewport size recorded with SetSize.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Render runs every installed pass in order for one frame. When a Target is attached the frame is
	// bracketed by BeginFrame and EndFrame/Present, using the multisampling level as the sample count.
	// A failing pass does not stop later passes; all pass errors are joined into the result.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the previous frame in seconds
	//
	// Returns:
	//   - error: an error if the frame could not begin or any pass failed
	Render(deltaTime float32) error
}

var _ Composer = &composer{}

// NewComposer creates an empty Composer. Base passes are typically supplied with WithPasses.
//
// Parameters:
//   - options: functional options to configure the composer
//
// Returns:
//   - Composer: the newly created composer
func NewComposer(options ...ComposerBuilderOption) Composer {
	c := &composer{
		passes: make([]Pass, 0, 4),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *composer) AddPass(p Pass) {
	if p == nil || c.HasPass(p) {
		return
	}
	c.passes = append(c.passes, p)
}

func (c *composer) InsertPass(p Pass, index int) {
	if p == nil || c.HasPass(p) {
		return
	}
	index = min(max(index, 0), len(c.passes))
	c.passes = slices.Insert(c.passes, index, p)
}

func (c *composer) RemovePass(p Pass) bool {
	idx := slices.Index(c.passes, p)
	if idx < 0 {
		return false
	}
	c.passes = slices.Delete(c.passes, idx, idx+1)
	return true
}

func (c *composer) HasPass(p Pass) bool {
	if p == nil {
		return false
	}
	return slices.Contains(c.passes, p)
}

func (c *composer) Passes() []Pass {
	return slices.Clone(c.passes)
}

func (c *composer) Multisampling() int {
	return c.multisampling
}

func (c *composer) SetMultisampling(level int) {
	c.multisampling = max(level, 0)
}

func (c *composer) SetSize(width, height int) {
	c.width = width
	c.height = height
}

func (c *composer) Size() (int, int) {
	return c.width, c.height
}

func (c *composer) Render(deltaTime float32) error {
	frame := &Frame{
		Index:         c.frameIndex,
		DeltaTime:     deltaTime,
		Width:         c.width,
		Height:        c.height,
		Multisampling: c.multisampling,
	}
	c.frameIndex++

	if c.target != nil {
		c.target.SetSampleCount(SampleCount(c.multisampling))
		if err := c.target.BeginFrame(); err != nil {
			return fmt.Errorf("composer: begin frame: %w", err)
		}
		defer func() {
			c.target.EndFrame()
			c.target.Present()
		}()
	}

	var errs []error
	for _, p := range c.passes {
		if err := p.Render(frame); err != nil {
			errs = append(errs, fmt.Errorf("composer: pass %q: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// SampleCount converts a multisampling level into a GPU sample count, where any level below 2 means 1 (off).
//
// Parameters:
//   - level: the multisampling level
//
// Returns:
//   - uint32: the sample count
func SampleCount(level int) uint32 {
	if level < 2 {
		return 1
	}
	return uint32(level)
}
