package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"brdf-viewer/config"
	"brdf-viewer/core"
	"brdf-viewer/opengl"
	"brdf-viewer/scene"
	"brdf-viewer/viewer"
)

// Run loads the configuration and models, opens the window and runs the
// frame loop until the window closes.
func Run(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	windowConfig := core.DefaultWindowConfig()
	windowConfig.Width = cfg.Window.Width
	windowConfig.Height = cfg.Window.Height
	windowConfig.Title = cfg.Window.Title
	windowConfig.VSync = cfg.Window.VSync

	// Models are loaded before the window opens so a bad model directory
	// fails fast.
	params := cfg.Params()
	objects, err := scene.LoadDirectory(cfg.ModelDir, cfg.Extensions, params)
	switch {
	case errors.Is(err, scene.ErrNoModels) && (cfg.Watch || len(cfg.Primitives) > 0):
		logger.Warningf("%v in %s", err, cfg.ModelDir)
	case err != nil:
		return err
	}
	for _, name := range cfg.Primitives {
		obj, err := scene.NewPrimitive(name, params)
		if err != nil {
			return err
		}
		objects = append(objects, obj)
		logger.Noticef("added %s (index %d)", name, len(objects))
	}

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	vc := viewer.NewContext(objects, params, cfg.NewCamera(), cfg.ShadingLights())
	vc.PerObject = !cfg.SharedParameters
	vc.DrawAll = cfg.DrawAll
	vc.Arrange()

	loop := viewer.NewFrameLoop(vc, window, renderer)
	loop.ClearColor = cfg.ClearColor
	cfg.ApplyControls(loop.Controller)

	window.SetKeyHandler(loop.HandleKey)
	aspect := window.Aspect()
	window.SetFramebufferSizeHandler(func(width, height int) {
		vp := viewer.Letterbox(width, height, aspect)
		renderer.SetViewport(vp.X, vp.Y, vp.Width, vp.Height)
	})
	fbW, fbH := window.GetFramebufferSize()
	vp := viewer.Letterbox(fbW, fbH, aspect)
	renderer.SetViewport(vp.X, vp.Y, vp.Width, vp.Height)

	if cfg.Watch {
		watcher, err := viewer.NewWatcher(cfg.ModelDir, cfg.Extensions)
		if err != nil {
			return err
		}
		defer watcher.Close()
		loop.WatchModels(watcher.Events())
		logger.Noticef("watching %s for model changes", cfg.ModelDir)
	}

	logger.Noticef("controls\n%s", viewer.FormatControls())
	logger.Noticef("settings\n%s", viewer.FormatSettings(params))

	loop.Run()
	return nil
}

// loadConfig builds the configuration from defaults, the optional config
// file and the command line, in that order.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
		logger.Infof("loaded config from %s", path)
	}

	overrides := config.Overrides{
		PerObject: ctx.Bool("per-object"),
		DrawAll:   ctx.Bool("all"),
		Watch:     ctx.Bool("watch"),

		Primitives: ctx.StringSlice("primitive"),
	}
	if ctx.IsSet("dir") {
		dir := ctx.String("dir")
		overrides.ModelDir = &dir
	}
	if ctx.IsSet("width") {
		width := ctx.Int("width")
		overrides.Width = &width
	}
	if ctx.IsSet("height") {
		height := ctx.Int("height")
		overrides.Height = &height
	}
	overrides.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
