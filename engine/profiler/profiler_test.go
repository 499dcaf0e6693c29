package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestProfilerReportsPerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithInterval(time.Second), WithClock(clock.now))

	assert.False(t, p.Tick("TRAA"))
	reported := 0
	for range 50 {
		clock.advance(20 * time.Millisecond)
		if p.Tick("TRAA") {
			reported++
		}
	}
	assert.Equal(t, 1, reported)

	s := p.Last()
	assert.Equal(t, "TRAA", s.Method)
	assert.Equal(t, 50, s.Frames)
	assert.InDelta(t, 50.0, s.FPS, 0.01)
	assert.Equal(t, 20*time.Millisecond, s.FrameTime)
	assert.False(t, s.MethodSwitch)
}

func TestProfilerRestartsOnMethodSwitch(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithInterval(time.Second), WithClock(clock.now))

	p.Tick("TRAA")
	clock.advance(900 * time.Millisecond)
	assert.False(t, p.Tick("TRAA"))

	clock.advance(200 * time.Millisecond)
	assert.False(t, p.Tick("FXAA"))

	clock.advance(500 * time.Millisecond)
	assert.False(t, p.Tick("FXAA"))
	clock.advance(500 * time.Millisecond)
	assert.True(t, p.Tick("FXAA"))

	s := p.Last()
	assert.Equal(t, "FXAA", s.Method)
	assert.Equal(t, 2, s.Frames)
	assert.True(t, s.MethodSwitch)
}

func TestProfilerDefaults(t *testing.T) {
	p := NewProfiler(WithInterval(-1), WithClock(nil))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.now)
	assert.Equal(t, Stats{}, p.Last())
}
