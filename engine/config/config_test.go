package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-aa/common"
	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
	"github.com/Carmen-Shannon/oxy-aa/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, DefaultTitle, c.Window.Title)
	assert.Equal(t, DefaultWidth, c.Window.Width)
	assert.Equal(t, DefaultHeight, c.Window.Height)
	assert.Equal(t, DefaultMinWidth, c.Window.MinWidth)
	assert.Equal(t, DefaultMinHeight, c.Window.MinHeight)
	assert.Equal(t, DefaultMaxWidth, c.Window.MaxWidth)
	assert.Equal(t, DefaultMaxHeight, c.Window.MaxHeight)
	assert.False(t, c.Window.KeyRepeat)
	assert.True(t, c.Window.EscapeCloses())
	assert.Equal(t, antialias.TRAA, c.AntiAlias.Default)
	assert.Equal(t, 8, c.AntiAlias.MSAASamples)
	assert.Equal(t, 4, c.AntiAlias.NativeSamples)
	assert.Equal(t, "fifo", c.Renderer.PresentMode)
	assert.Equal(t, time.Second, c.Profiling.Interval)

	b, err := c.Keys.Bindings()
	require.NoError(t, err)
	assert.Equal(t, input.DefaultBindings(), b)
}

func TestParse(t *testing.T) {
	doc := []byte(`
window:
  title: AA demo
  width: 800
antialias:
  default: smaa
  msaa_samples: 4
  labels:
    nativeaa: three.js AA
renderer:
  present_mode: Immediate
profiling:
  enabled: true
  interval: 250ms
effects:
  fxaa: shaders/custom_fxaa.wgsl
`)
	c, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, "AA demo", c.Window.Title)
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, DefaultHeight, c.Window.Height)
	assert.Equal(t, antialias.SMAA, c.AntiAlias.Default)
	assert.Equal(t, 4, c.AntiAlias.MSAASamples)
	assert.Equal(t, "immediate", c.Renderer.PresentMode)
	assert.True(t, c.Profiling.Enabled)
	assert.Equal(t, 250*time.Millisecond, c.Profiling.Interval)
	assert.Equal(t, "shaders/custom_fxaa.wgsl", c.Effects.FXAA)
	assert.Empty(t, c.Effects.TRAA)
	assert.Equal(t, map[antialias.Strategy]string{antialias.NativeAA: "three.js AA"}, c.StrategyLabels())
}

func TestParseWindow(t *testing.T) {
	c, err := Parse([]byte(`
window:
  width: 1024
  height: 600
  min_width: 640
  min_height: 480
  max_width: 1920
  max_height: 1080
  key_repeat: true
  close_on_escape: false
`))
	require.NoError(t, err)
	assert.Equal(t, 640, c.Window.MinWidth)
	assert.Equal(t, 480, c.Window.MinHeight)
	assert.Equal(t, 1920, c.Window.MaxWidth)
	assert.Equal(t, 1080, c.Window.MaxHeight)
	assert.True(t, c.Window.KeyRepeat)
	assert.False(t, c.Window.EscapeCloses())

	c, err = Parse([]byte("window:\n  width: 2560\n  height: 100\n"))
	require.NoError(t, err)
	assert.Equal(t, 2560, c.Window.MaxWidth, "default limits widen to fit the initial size")
	assert.Equal(t, 100, c.Window.MinHeight)
	assert.True(t, c.Window.EscapeCloses())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown strategy", "antialias:\n  default: supersampling\n", "unknown strategy"},
		{"disabled default", "antialias:\n  default: disabled\n", "must be an active method"},
		{"odd msaa", "antialias:\n  msaa_samples: 3\n", "msaa_samples 3"},
		{"negative size", "window:\n  width: -1\n", "window size"},
		{"outside limits", "window:\n  width: 500\n  min_width: 640\n", "must lie within"},
		{"max below size", "window:\n  max_height: 600\n", "must lie within"},
		{"present mode", "renderer:\n  present_mode: vsync\n", `"vsync"`},
		{"label name", "antialias:\n  labels:\n    bogus: x\n", "bogus"},
		{"unknown key", "keys:\n  next: [F13]\n", `"F13"`},
		{"duplicate key", "keys:\n  next: [Tab]\n  previous: [Tab]\n", "already bound"},
		{"bad yaml", "window: [", "unmarshal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseReportsEveryProblem(t *testing.T) {
	_, err := Parse([]byte("window:\n  height: -5\nrenderer:\n  present_mode: vsync\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "present_mode")
}

func TestKeyBindings(t *testing.T) {
	k := KeyConfig{
		Next:   []string{"n", "Tab"},
		Toggle: []string{"t"},
		Select: map[string][]string{"msaa": {"m"}},
	}
	b, err := k.Bindings()
	require.NoError(t, err)

	assert.Equal(t, input.Binding{Action: input.ActionNext}, b[common.KeyN])
	assert.Equal(t, input.Binding{Action: input.ActionNext}, b[common.KeyTab])
	assert.Equal(t, input.Binding{Action: input.ActionToggle}, b[common.KeyT])
	assert.Equal(t, input.Binding{Action: input.ActionSelect, Strategy: antialias.MSAA}, b[common.KeyM])

	// replaced triggers drop their stock keys
	_, ok := b[common.KeyRight]
	assert.False(t, ok)
	_, ok = b[common.KeySpace]
	assert.False(t, ok)
	_, ok = b[common.Key3]
	assert.False(t, ok)

	// untouched triggers keep theirs
	assert.Equal(t, input.Binding{Action: input.ActionPrevious}, b[common.KeyLeft])
	assert.Equal(t, input.Binding{Action: input.ActionSelect, Strategy: antialias.FXAA}, b[common.Key4])
}

func TestKeyBindingsUnknownStrategy(t *testing.T) {
	_, err := KeyConfig{Select: map[string][]string{"ssaa": {"s"}}}.Bindings()
	require.Error(t, err)
	assert.True(t, errors.Is(err, antialias.ErrUnknownStrategy))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("antialias:\n  default: fxaa\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, antialias.FXAA, c.AntiAlias.Default)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("antialias:\n  default: traa\n"), 0o644))

	w, err := Watch(path, 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("antialias:\n  default: smaa\n"), 0o644))

	select {
	case c := <-w.Events:
		require.NotNil(t, c)
		assert.Equal(t, antialias.SMAA, c.AntiAlias.Default)
	case err := <-w.Errors:
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}

	require.NoError(t, os.WriteFile(path, []byte("antialias:\n  default: nope\n"), 0o644))
	select {
	case err := <-w.Errors:
		assert.Contains(t, err.Error(), "unknown strategy")
	case c := <-w.Events:
		t.Fatalf("unexpected reload: %+v", c)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload error")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	_, open := <-w.Events
	assert.False(t, open)
}
