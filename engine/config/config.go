// Package config loads the demo's YAML configuration and watches it for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-aa/common"
	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
	"github.com/Carmen-Shannon/oxy-aa/engine/input"
	"gopkg.in/yaml.v3"
)

// Defaults applied to zero-valued fields.
const (
	DefaultTitle         = "oxy anti-aliasing"
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultMinWidth      = 600
	DefaultMinHeight     = 200
	DefaultMaxWidth      = 1600
	DefaultMaxHeight     = 1200
	DefaultNativeSamples = 4
	DefaultPresentMode   = "fifo"
	DefaultInterval      = time.Second
)

// Config is the demo configuration. Zero-valued fields take the package defaults.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	AntiAlias AntiAliasConfig `yaml:"antialias"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Profiling ProfilingConfig `yaml:"profiling"`
	Keys      KeyConfig       `yaml:"keys"`
	Effects   EffectConfig    `yaml:"effects"`
}

// WindowConfig sizes the window and sets its keyboard behaviour.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// Size limits applied while the user resizes the window.
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`

	// KeyRepeat delivers held-key repeats to the key bindings. Off by default.
	KeyRepeat bool `yaml:"key_repeat"`

	// CloseOnEscape closes the window on Escape. Nil means true.
	CloseOnEscape *bool `yaml:"close_on_escape"`
}

// EscapeCloses reports whether Escape closes the window.
func (w WindowConfig) EscapeCloses() bool {
	return w.CloseOnEscape == nil || *w.CloseOnEscape
}

// AntiAliasConfig selects the startup method and the sample counts of the multisampled paths.
type AntiAliasConfig struct {
	// Default is the strategy applied at startup and targeted by the toggle key.
	Default antialias.Strategy `yaml:"default"`

	// MSAASamples is the composer multisampling level used by the MSAA strategy.
	MSAASamples int `yaml:"msaa_samples"`

	// NativeSamples is the renderer's own sample count, used by the NativeAA direct render.
	NativeSamples int `yaml:"native_samples"`

	// Labels overrides display labels, keyed by strategy name.
	Labels map[string]string `yaml:"labels"`
}

// RendererConfig configures the GPU surface.
type RendererConfig struct {
	// PresentMode is one of fifo, immediate or mailbox.
	PresentMode   string `yaml:"present_mode"`
	ForceSoftware bool   `yaml:"force_software"`
}

// ProfilingConfig enables the per-method frame statistics log.
type ProfilingConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// KeyConfig names the keys bound to each trigger. Empty lists keep the stock layout.
type KeyConfig struct {
	Next     []string            `yaml:"next"`
	Previous []string            `yaml:"previous"`
	Toggle   []string            `yaml:"toggle"`
	Select   map[string][]string `yaml:"select"`
}

// EffectConfig holds the WGSL shader paths of the discrete-pass strategies.
// An empty path selects the built-in shader.
type EffectConfig struct {
	TRAA string `yaml:"traa"`
	FXAA string `yaml:"fxaa"`
	SMAA string `yaml:"smaa"`
}

// Default returns the stock configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads and parses a configuration file.
//
// Parameters:
//   - path: the YAML file to read
//
// Returns:
//   - *Config: the validated configuration with defaults applied
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML, applies defaults and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Config: the validated configuration
//   - error: a decode or validation error
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	c.Window.Title = common.Coalesce(c.Window.Title, DefaultTitle)
	c.Window.Width = common.Coalesce(c.Window.Width, DefaultWidth)
	c.Window.Height = common.Coalesce(c.Window.Height, DefaultHeight)
	c.Window.MinWidth = common.Coalesce(c.Window.MinWidth, min(DefaultMinWidth, c.Window.Width))
	c.Window.MinHeight = common.Coalesce(c.Window.MinHeight, min(DefaultMinHeight, c.Window.Height))
	c.Window.MaxWidth = common.Coalesce(c.Window.MaxWidth, max(DefaultMaxWidth, c.Window.Width))
	c.Window.MaxHeight = common.Coalesce(c.Window.MaxHeight, max(DefaultMaxHeight, c.Window.Height))

	c.AntiAlias.MSAASamples = common.Coalesce(c.AntiAlias.MSAASamples, antialias.DefaultMultisampling)
	c.AntiAlias.NativeSamples = common.Coalesce(c.AntiAlias.NativeSamples, DefaultNativeSamples)

	c.Renderer.PresentMode = strings.ToLower(common.Coalesce(c.Renderer.PresentMode, DefaultPresentMode))
	c.Profiling.Interval = common.Coalesce(c.Profiling.Interval, DefaultInterval)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.MinWidth > c.Window.Width || c.Window.Width > c.Window.MaxWidth ||
		c.Window.MinHeight > c.Window.Height || c.Window.Height > c.Window.MaxHeight {
		errs = append(errs, fmt.Errorf("config: window size %dx%d must lie within %dx%d and %dx%d",
			c.Window.Width, c.Window.Height, c.Window.MinWidth, c.Window.MinHeight, c.Window.MaxWidth, c.Window.MaxHeight))
	}
	if !c.AntiAlias.Default.Valid() || c.AntiAlias.Default == antialias.Disabled {
		errs = append(errs, fmt.Errorf("config: default strategy %s must be an active method", c.AntiAlias.Default))
	}
	if c.AntiAlias.MSAASamples < 2 || !isPowerOfTwo(c.AntiAlias.MSAASamples) {
		errs = append(errs, fmt.Errorf("config: msaa_samples %d must be a power of two of at least 2", c.AntiAlias.MSAASamples))
	}
	if !isPowerOfTwo(c.AntiAlias.NativeSamples) {
		errs = append(errs, fmt.Errorf("config: native_samples %d must be a power of two", c.AntiAlias.NativeSamples))
	}
	for name := range c.AntiAlias.Labels {
		if _, err := antialias.ParseStrategy(name); err != nil {
			errs = append(errs, fmt.Errorf("config: labels: %w", err))
		}
	}
	if !slices.Contains([]string{"fifo", "immediate", "mailbox"}, c.Renderer.PresentMode) {
		errs = append(errs, fmt.Errorf("config: unknown present_mode %q", c.Renderer.PresentMode))
	}
	if c.Profiling.Interval < 0 {
		errs = append(errs, fmt.Errorf("config: profiling interval %s must not be negative", c.Profiling.Interval))
	}
	if _, err := c.Keys.Bindings(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// StrategyLabels resolves the label overrides to typed strategies. Unknown names are skipped.
func (c *Config) StrategyLabels() map[antialias.Strategy]string {
	out := make(map[antialias.Strategy]string, len(c.AntiAlias.Labels))
	for name, label := range c.AntiAlias.Labels {
		if s, err := antialias.ParseStrategy(name); err == nil {
			out[s] = label
		}
	}
	return out
}

// Bindings resolves the key names to a binding table. Triggers left empty keep their stock keys.
// A key named by two triggers is an error.
//
// Returns:
//   - input.Bindings: the resolved table
//   - error: an error naming an unknown key, an unknown strategy or a duplicate key
func (k KeyConfig) Bindings() (input.Bindings, error) {
	stock := input.DefaultBindings()
	out := input.Bindings{}
	owner := map[uint32]string{}

	bind := func(b input.Binding, trigger string, names []string) error {
		for _, name := range names {
			code, ok := common.KeyByName(name)
			if !ok {
				return fmt.Errorf("config: keys.%s: unknown key %q", trigger, name)
			}
			if prev, taken := owner[code]; taken && prev != trigger {
				return fmt.Errorf("config: keys.%s: key %q already bound to %s", trigger, name, prev)
			}
			owner[code] = trigger
			out[code] = b
		}
		return nil
	}
	// keep the stock keys of an unconfigured trigger
	keep := func(match func(input.Binding) bool, trigger string) {
		for code, b := range stock {
			if match(b) {
				if _, taken := owner[code]; !taken {
					owner[code] = trigger
					out[code] = b
				}
			}
		}
	}

	triggers := []struct {
		name   string
		action input.Action
		keys   []string
	}{
		{"next", input.ActionNext, k.Next},
		{"previous", input.ActionPrevious, k.Previous},
		{"toggle", input.ActionToggle, k.Toggle},
	}
	for _, tr := range triggers {
		if err := bind(input.Binding{Action: tr.action}, tr.name, tr.keys); err != nil {
			return nil, err
		}
	}

	selected := map[antialias.Strategy]bool{}
	names := make([]string, 0, len(k.Select))
	for name := range k.Select {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		s, err := antialias.ParseStrategy(name)
		if err != nil {
			return nil, fmt.Errorf("config: keys.select: %w", err)
		}
		selected[s] = true
		if err := bind(input.Binding{Action: input.ActionSelect, Strategy: s}, "select."+s.String(), k.Select[name]); err != nil {
			return nil, err
		}
	}

	for _, tr := range triggers {
		if len(tr.keys) == 0 {
			action := tr.action
			keep(func(b input.Binding) bool { return b.Action == action }, tr.name)
		}
	}
	for _, s := range antialias.Strategies() {
		if !selected[s] {
			keep(func(b input.Binding) bool { return b.Action == input.ActionSelect && b.Strategy == s }, "select."+s.String())
		}
	}
	return out, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Path returns the configured shader path of a discrete-pass strategy, or "" for the built-in shader.
func (e EffectConfig) Path(s antialias.Strategy) string {
	switch s {
	case antialias.TRAA:
		return e.TRAA
	case antialias.FXAA:
		return e.FXAA
	case antialias.SMAA:
		return e.SMAA
	default:
		return ""
	}
}
