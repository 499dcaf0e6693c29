// Command aa-demo renders a small scene and switches between anti-aliasing methods at runtime.
//
// Keys: 1-6 select TRAA, Native AA, MSAA, FXAA, SMAA and Disabled; Space or Enter toggles
// between the default method and Disabled; Left and Right cycle; Esc quits. Frame statistics
// are logged per method when profiling is enabled.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-aa/common"
	"github.com/Carmen-Shannon/oxy-aa/engine"
	"github.com/Carmen-Shannon/oxy-aa/engine/antialias"
	"github.com/Carmen-Shannon/oxy-aa/engine/config"
	"github.com/Carmen-Shannon/oxy-aa/engine/input"
	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
	"github.com/Carmen-Shannon/oxy-aa/engine/profiler"
	"github.com/Carmen-Shannon/oxy-aa/engine/renderer"
	"github.com/Carmen-Shannon/oxy-aa/engine/window"
)

var (
	//go:embed shaders/scene.wgsl
	sceneShader string

	//go:embed shaders/passthrough.wgsl
	passthroughShader string
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file (watched for key binding changes)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	common.SetLogger(logger)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("load configuration", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := run(cfg, *configPath, logger); err != nil {
		logger.Error("aa-demo", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, logger *slog.Logger) error {
	// ── Window + Renderer ───────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithMinWidth(cfg.Window.MinWidth),
		window.WithMinHeight(cfg.Window.MinHeight),
		window.WithMaxWidth(cfg.Window.MaxWidth),
		window.WithMaxHeight(cfg.Window.MaxHeight),
		window.WithKeyRepeat(cfg.Window.KeyRepeat),
		window.WithCloseOnEscape(cfg.Window.EscapeCloses()),
	)

	presentMode, _ := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.AntiAlias.NativeSamples)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	)
	defer r.Release()

	if err := r.RegisterEffect("scene", sceneShader); err != nil {
		return err
	}
	drawScene := func(f *postprocess.Frame) error {
		return r.DrawEffect("scene", f.Width, f.Height)
	}

	// ── Anti-aliasing passes, built once up front ───────────────────
	factories := make(map[string]postprocess.PassFactory)
	for _, s := range []antialias.Strategy{antialias.TRAA, antialias.FXAA, antialias.SMAA} {
		factories[s.String()] = effectPassFactory(r, s, cfg.Effects.Path(s))
	}
	passes, err := postprocess.Prebuild(factories, len(factories))
	if err != nil {
		return err
	}

	comp := postprocess.NewComposer(
		postprocess.WithTarget(r),
		postprocess.WithSize(win.Width(), win.Height()),
		postprocess.WithPasses(
			postprocess.NewRenderPass("render", drawScene),
			// resolve to the swapchain happens at EndFrame; the output pass closes the base chain
			postprocess.NewRenderPass("output", nil),
		),
	)

	regOptions := []antialias.RegistryBuilderOption{
		antialias.WithPass(antialias.TRAA, passes[antialias.TRAA.String()]),
		antialias.WithPass(antialias.FXAA, passes[antialias.FXAA.String()]),
		antialias.WithPass(antialias.SMAA, passes[antialias.SMAA.String()]),
		antialias.WithMultisampling(cfg.AntiAlias.MSAASamples),
	}
	for s, label := range cfg.StrategyLabels() {
		regOptions = append(regOptions, antialias.WithLabel(s, label))
	}
	reg, err := antialias.NewRegistry(regOptions...)
	if err != nil {
		return err
	}

	ctrl, err := antialias.NewController(comp, reg, antialias.WithDefault(cfg.AntiAlias.Default))
	if err != nil {
		return err
	}
	ctrl.SetSize(win.Width(), win.Height())

	// ── Input surfaces ──────────────────────────────────────────────
	bindings, err := cfg.Keys.Bindings()
	if err != nil {
		return err
	}
	kb := input.NewKeyboard(ctrl, input.WithBindings(bindings))
	win.SetKeyDownCallback(kb.Callback())

	panel := input.NewPanel(ctrl, input.WithRefreshHook(func(label string) {
		win.SetTitle(fmt.Sprintf("%s | %s", cfg.Window.Title, label))
	}))
	logger.Info("anti-aliasing methods", "options", optionLabels(panel.Options()), "active", panel.Value())

	// ── Engine ──────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithComposer(comp),
		engine.WithController(ctrl),
		engine.WithDirectDraw(drawScene),
		engine.WithProfiling(cfg.Profiling.Enabled),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithInterval(cfg.Profiling.Interval))),
	)

	if configPath != "" {
		watcher, err := config.Watch(configPath, 0)
		if err != nil {
			logger.Warn("configuration reload disabled", "error", err)
		} else {
			defer watcher.Close()
			go forwardReloads(watcher, eng, kb, logger)
		}
	}

	eng.Run()
	return nil
}

// effectPassFactory builds the pass of a discrete-pass strategy from its configured shader,
// falling back to the built-in stand-in when no path is set.
func effectPassFactory(r renderer.Renderer, s antialias.Strategy, path string) postprocess.PassFactory {
	key := strings.ToLower(s.String())
	return func() (postprocess.Pass, error) {
		var (
			effect postprocess.Effect
			err    error
		)
		if path == "" {
			effect, err = renderer.NewShaderEffect(r, key, passthroughShader)
		} else {
			effect, err = renderer.LoadShaderEffect(r, key, path)
		}
		if err != nil {
			return nil, err
		}
		return postprocess.NewEffectPass(key, effect), nil
	}
}

// forwardReloads hands reloaded key bindings and profiling settings to the frame thread.
func forwardReloads(w *config.Watcher, eng engine.Engine, kb input.Keyboard, logger *slog.Logger) {
	for {
		select {
		case cfg, ok := <-w.Events:
			if !ok {
				return
			}
			bindings, err := cfg.Keys.Bindings()
			if err != nil {
				logger.Warn("configuration reload rejected", "error", err)
				continue
			}
			enabled := cfg.Profiling.Enabled
			eng.Post(func() {
				kb.SetBindings(bindings)
				if enabled {
					eng.EnableProfiler()
				} else {
					eng.DisableProfiler()
				}
				logger.Info("configuration reloaded", "path", w.Path())
			})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("configuration reload failed", "error", err)
		case <-eng.Done():
			return
		}
	}
}

func optionLabels(options []input.Option) []string {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	return labels
}
